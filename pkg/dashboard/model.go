package dashboard

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ines/taskdeck/internal/api"
	"github.com/ines/taskdeck/internal/models"
	"github.com/ines/taskdeck/internal/session"
)

// Model is the main Bubble Tea model for the dashboard TUI.
type Model struct {
	Client *api.Client
	Store  *session.Store

	// Window dimensions
	Width  int
	Height int

	Screen Screen

	Spinner spinner.Model

	// Project list state
	Projects     *models.Page[models.Project]
	ProjectsPage int
	Cursor       int
	SearchMode   bool
	SearchInput  textinput.Model
	Search       string // last search string actually sent

	// Project detail state
	Project    *models.Project
	Tasks      *models.Page[models.Task]
	Progress   *models.ProgressSummary
	TaskPage   int
	TaskCursor int
	Filter     models.StatusFilter
	DescRender string

	// Form modal state (login/register screens and create overlays)
	FormState *FormState

	// Delete confirmation state
	ConfirmTarget confirmTarget
	ConfirmID     int64
	ConfirmTitle  string

	// Request bookkeeping. Each counter invalidates in-flight work of its
	// kind: responses and debounce timers carrying an older value are stale.
	projectsGen int
	detailGen   int
	searchGen   int

	Loading bool

	// Transient status line
	StatusMessage string
	StatusIsError bool

	Version string
}

// NewModel creates the dashboard model. The store should not have been
// rehydrated yet; that happens asynchronously in Init.
func NewModel(client *api.Client, store *session.Store, ver string) Model {
	// The TUI surfaces failures on the status line, not stderr.
	store.Logf = func(string, ...any) {}

	searchInput := textinput.New()
	searchInput.Placeholder = "search projects"
	searchInput.Prompt = "/ "
	searchInput.Width = 40
	searchInput.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = subtleStyle

	return Model{
		Client:      client,
		Store:       store,
		Screen:      ScreenLoading,
		SearchInput: searchInput,
		Spinner:     sp,
		Filter:      models.StatusAll,
		Version:     ver,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.restoreSession(), m.Spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case sessionRestoredMsg:
		if !msg.Authenticated {
			return m.gotoLoginWithForm("", false)
		}
		return m.gotoProjects()

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case registerResultMsg:
		return m.handleRegisterResult(msg)

	case projectsLoadedMsg:
		return m.handleProjectsLoaded(msg)

	case detailLoadedMsg:
		return m.handleDetailLoaded(msg)

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case projectDeletedMsg:
		return m.handleProjectDeleted(msg)

	case searchDebounceMsg:
		// Superseded by further typing.
		if msg.Gen != m.searchGen {
			return m, nil
		}
		return m.applySearch()

	case descRenderedMsg:
		if m.Screen == ScreenDetail && m.Project != nil && m.Project.ID == msg.ProjectID {
			m.DescRender = msg.Content
		}
		return m, nil

	case clearStatusMsg:
		m.StatusMessage = ""
		m.StatusIsError = false
		return m, nil

	case spinner.TickMsg:
		// Only keep the spinner ticking while something is loading.
		if !m.Loading && m.Screen != ScreenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// gotoLogin switches to the login screen with a fresh form.
func (m Model) gotoLogin(status string) Model {
	m.Screen = ScreenLogin
	m.FormState = NewLoginForm()
	m.StatusMessage = status
	m.StatusIsError = status != ""
	m.Projects = nil
	m.Project = nil
	return m
}

// gotoRegister switches to the registration screen with a fresh form.
func (m Model) gotoRegister() Model {
	m.Screen = ScreenRegister
	m.FormState = NewRegisterForm()
	m.StatusMessage = ""
	m.StatusIsError = false
	return m
}

// gotoProjects switches to the project list and kicks off a fetch.
func (m Model) gotoProjects() (Model, tea.Cmd) {
	m.Screen = ScreenProjects
	m.FormState = nil
	m.ConfirmTarget = confirmNone
	m.Project = nil
	m.Tasks = nil
	m.Progress = nil
	m.DescRender = ""
	return m.refetchProjects()
}

// gotoDetail switches to the detail screen for a project and fetches its data.
func (m Model) gotoDetail(projectID int64) (Model, tea.Cmd) {
	m.Screen = ScreenDetail
	m.FormState = nil
	m.ConfirmTarget = confirmNone
	m.Project = &models.Project{ID: projectID}
	m.Tasks = nil
	m.Progress = nil
	m.DescRender = ""
	m.TaskPage = 0
	m.TaskCursor = 0
	m.Filter = models.StatusAll
	return m.refetchDetail()
}

// refetchDetail re-requests the three detail resources with a fresh
// generation.
func (m Model) refetchDetail() (Model, tea.Cmd) {
	if m.Project == nil {
		return m, nil
	}
	m.Loading = true
	m.detailGen++
	return m, tea.Batch(m.fetchDetail(m.detailGen, m.Project.ID, m.Filter, m.TaskPage), m.Spinner.Tick)
}

// refetchProjects re-requests the current project list page with a fresh
// generation.
func (m Model) refetchProjects() (Model, tea.Cmd) {
	m.Loading = true
	m.projectsGen++
	return m, tea.Batch(m.fetchProjects(m.projectsGen, m.Search, m.ProjectsPage), m.Spinner.Tick)
}

// applySearch commits the search box contents: reset to the first page and
// fetch.
func (m Model) applySearch() (Model, tea.Cmd) {
	m.Search = m.SearchInput.Value()
	m.ProjectsPage = 0
	m.Cursor = 0
	return m.refetchProjects()
}

func (m Model) handleLoginResult(msg loginResultMsg) (Model, tea.Cmd) {
	if !msg.OK {
		failure := "Invalid credentials"
		if msg.Failure != "" {
			failure = msg.Failure
		}
		m.StatusMessage = failure
		m.StatusIsError = true
		// Rebuild so the password field is cleared.
		m.FormState = NewLoginForm()
		m.FormState.Email = msg.Email
		return m, m.FormState.Form.Init()
	}
	m.Search = ""
	m.SearchInput.SetValue("")
	m.ProjectsPage = 0
	m.Cursor = 0
	m.StatusMessage = ""
	m.StatusIsError = false
	return m.gotoProjects()
}

func (m Model) handleRegisterResult(msg registerResultMsg) (Model, tea.Cmd) {
	if !msg.OK {
		failure := "Registration failed"
		if msg.Failure != "" {
			failure = msg.Failure
		}
		m.StatusMessage = failure
		m.StatusIsError = true
		m.FormState = NewRegisterForm()
		m.FormState.Email = msg.Email
		return m, m.FormState.Form.Init()
	}
	// Registration does not authenticate; hand off to login.
	m = m.gotoLogin("")
	m.FormState.Email = msg.Email
	m.StatusMessage = "Account created. Sign in to continue."
	m.StatusIsError = false
	return m, m.FormState.Form.Init()
}

func (m Model) handleProjectsLoaded(msg projectsLoadedMsg) (Model, tea.Cmd) {
	if msg.Gen != m.projectsGen {
		return m, nil
	}
	m.Loading = false
	if msg.Err != nil {
		return m.handleRequestError(msg.Err)
	}
	m.Projects = msg.Page
	m.ProjectsPage = msg.Page.Number
	if m.Cursor >= len(msg.Page.Content) {
		m.Cursor = len(msg.Page.Content) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	return m, nil
}

func (m Model) handleDetailLoaded(msg detailLoadedMsg) (Model, tea.Cmd) {
	if msg.Gen != m.detailGen || m.Screen != ScreenDetail {
		return m, nil
	}
	m.Loading = false
	if msg.Err != nil {
		return m.handleRequestError(msg.Err)
	}
	m.Project = msg.Project
	m.Tasks = msg.Tasks
	m.Progress = msg.Progress
	if m.TaskCursor >= len(msg.Tasks.Content) {
		m.TaskCursor = len(msg.Tasks.Content) - 1
	}
	if m.TaskCursor < 0 {
		m.TaskCursor = 0
	}
	var cmd tea.Cmd
	if msg.Project.Description != "" {
		cmd = m.renderDescription(msg.Project.ID, msg.Project.Description, m.descWidth())
	}
	return m, cmd
}

func (m Model) handleMutationDone(msg mutationDoneMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		return m.handleRequestError(msg.Err)
	}
	m.StatusMessage = capitalizeAction(msg.Action)
	m.StatusIsError = false
	var next Model
	var cmd tea.Cmd
	switch m.Screen {
	case ScreenDetail:
		next, cmd = m.refetchDetail()
	default:
		next, cmd = m.refetchProjects()
	}
	return next, tea.Batch(cmd, clearStatusAfter(3*time.Second))
}

func (m Model) handleProjectDeleted(msg projectDeletedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		return m.handleRequestError(msg.Err)
	}
	m.StatusMessage = "Project deleted"
	m.StatusIsError = false
	m.Cursor = 0
	next, cmd := m.gotoProjects()
	return next, tea.Batch(cmd, clearStatusAfter(3*time.Second))
}

// handleRequestError applies the shared error policy: expired sessions return
// to the login screen, inaccessible projects return to the list, and
// everything else lands on the status line.
func (m Model) handleRequestError(err error) (Model, tea.Cmd) {
	m.Loading = false
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		m.Store.Logout()
		return m.gotoLoginWithForm("Session expired. Sign in again.", true)
	case errors.Is(err, api.ErrForbidden), errors.Is(err, api.ErrNotFound):
		if m.Screen == ScreenDetail {
			next, cmd := m.gotoProjects()
			next.StatusMessage = "Project is not accessible"
			next.StatusIsError = true
			return next, cmd
		}
		m.StatusMessage = "Not accessible"
		m.StatusIsError = true
		return m, nil
	case errors.Is(err, api.ErrNoResponse):
		m.StatusMessage = "Cannot reach server"
		m.StatusIsError = true
		return m, nil
	default:
		m.StatusMessage = err.Error()
		m.StatusIsError = true
		return m, nil
	}
}

// descWidth returns the word-wrap width for the description panel.
func (m Model) descWidth() int {
	w := m.Width - 6
	if w < 20 {
		w = 20
	}
	if w > 100 {
		w = 100
	}
	return w
}

// selectedProject returns the project under the cursor, or nil.
func (m Model) selectedProject() *models.Project {
	if m.Projects == nil || m.Cursor < 0 || m.Cursor >= len(m.Projects.Content) {
		return nil
	}
	return &m.Projects.Content[m.Cursor]
}

// selectedTask returns the task under the cursor, or nil.
func (m Model) selectedTask() *models.Task {
	if m.Tasks == nil || m.TaskCursor < 0 || m.TaskCursor >= len(m.Tasks.Content) {
		return nil
	}
	return &m.Tasks.Content[m.TaskCursor]
}

// scheduleSearchDebounce arms the debounce timer for the current search
// generation.
func (m Model) scheduleSearchDebounce() tea.Cmd {
	gen := m.searchGen
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{Gen: gen}
	})
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func capitalizeAction(action string) string {
	switch action {
	case "create project":
		return "Project created"
	case "create task":
		return "Task created"
	case "complete task":
		return "Task completed"
	case "delete task":
		return "Task deleted"
	default:
		return "Done"
	}
}
