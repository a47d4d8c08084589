package dashboard

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// handleKey routes key input by UI mode. Confirmation dialogs and forms
// intercept everything before screen-level bindings apply.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.Screen == ScreenLoading {
		return m, nil
	}
	if m.ConfirmTarget != confirmNone {
		return m.handleConfirmKey(msg)
	}
	if m.FormState != nil {
		return m.handleFormKey(msg)
	}
	if m.SearchMode {
		return m.handleSearchKey(msg)
	}
	switch m.Screen {
	case ScreenProjects:
		return m.handleProjectsKey(msg)
	case ScreenDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

// handleFormKey drives the active huh form.
func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		switch m.FormState.Kind {
		case FormLogin:
			// Nothing behind the login screen.
			return m, tea.Quit
		case FormRegister:
			m = m.gotoLogin("")
			return m, m.FormState.Form.Init()
		default:
			// Cancel a create overlay.
			m.FormState = nil
			return m, nil
		}
	case tea.KeyCtrlR:
		if m.FormState.Kind == FormLogin {
			m = m.gotoRegister()
			return m, m.FormState.Form.Init()
		}
	}

	form, cmd := m.FormState.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.FormState.Form = f
	}

	if m.FormState.Form.State == huh.StateCompleted {
		return m.submitForm()
	}
	return m, cmd
}

// submitForm dispatches a completed form to the matching request.
func (m Model) submitForm() (Model, tea.Cmd) {
	fs := m.FormState
	switch fs.Kind {
	case FormLogin:
		m.StatusMessage = "Signing in..."
		m.StatusIsError = false
		return m, m.submitLogin(fs.Email, fs.Password)
	case FormRegister:
		m.StatusMessage = "Creating account..."
		m.StatusIsError = false
		return m, m.submitRegister(fs.Email, fs.Password)
	case FormNewProject:
		m.FormState = nil
		return m, m.createProject(fs.Title, fs.Description)
	case FormNewTask:
		m.FormState = nil
		return m, m.createTask(fs)
	}
	return m, nil
}

// handleSearchKey drives the search box. Every edit re-arms the debounce
// timer; enter commits immediately.
func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.SearchMode = false
		m.SearchInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.SearchMode = false
		m.SearchInput.Blur()
		m.searchGen++
		return m.applySearch()
	}

	before := m.SearchInput.Value()
	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	if m.SearchInput.Value() != before {
		m.searchGen++
		return m, tea.Batch(cmd, m.scheduleSearchDebounce())
	}
	return m, cmd
}

func (m Model) handleProjectsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.SearchMode = true
		m.SearchInput.Focus()
		return m, textinput.Blink
	case "left", "h":
		if m.Projects != nil && m.Projects.HasPrev() {
			m.ProjectsPage--
			m.Cursor = 0
			return m.refetchProjects()
		}
	case "right", "l":
		if m.Projects != nil && m.Projects.HasNext() {
			m.ProjectsPage++
			m.Cursor = 0
			return m.refetchProjects()
		}
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Projects != nil && m.Cursor < len(m.Projects.Content)-1 {
			m.Cursor++
		}
	case "enter":
		if p := m.selectedProject(); p != nil {
			return m.gotoDetail(p.ID)
		}
	case "n":
		m.FormState = NewProjectForm()
		return m, m.FormState.Form.Init()
	case "d":
		if p := m.selectedProject(); p != nil {
			m.ConfirmTarget = confirmProject
			m.ConfirmID = p.ID
			m.ConfirmTitle = p.Title
		}
	case "r":
		return m.refetchProjects()
	case "ctrl+l":
		m.Store.Logout()
		return m.gotoLoginWithForm("Signed out.", false)
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "b":
		return m.gotoProjects()
	case "f":
		m.Filter = m.Filter.Next()
		m.TaskPage = 0
		m.TaskCursor = 0
		return m.refetchDetail()
	case "left", "h":
		if m.Tasks != nil && m.Tasks.HasPrev() {
			m.TaskPage--
			m.TaskCursor = 0
			return m.refetchDetail()
		}
	case "right", "l":
		if m.Tasks != nil && m.Tasks.HasNext() {
			m.TaskPage++
			m.TaskCursor = 0
			return m.refetchDetail()
		}
	case "up", "k":
		if m.TaskCursor > 0 {
			m.TaskCursor--
		}
	case "down", "j":
		if m.Tasks != nil && m.TaskCursor < len(m.Tasks.Content)-1 {
			m.TaskCursor++
		}
	case "enter", "c":
		// Completion is one-way: a completed task issues no request.
		if t := m.selectedTask(); t != nil && !t.Completed {
			return m, m.completeTask(t.ID)
		}
	case "n":
		if m.Project != nil {
			m.FormState = NewTaskForm(m.Project.ID)
			return m, m.FormState.Form.Init()
		}
	case "d":
		if t := m.selectedTask(); t != nil {
			m.ConfirmTarget = confirmTask
			m.ConfirmID = t.ID
			m.ConfirmTitle = t.Title
		}
	case "D":
		if m.Project != nil {
			m.ConfirmTarget = confirmProject
			m.ConfirmID = m.Project.ID
			m.ConfirmTitle = m.Project.Title
		}
	case "r":
		return m.refetchDetail()
	}
	return m, nil
}

// handleConfirmKey resolves a pending delete confirmation. Only an explicit
// yes issues the request.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		target, id := m.ConfirmTarget, m.ConfirmID
		m.ConfirmTarget = confirmNone
		m.ConfirmID = 0
		m.ConfirmTitle = ""
		switch target {
		case confirmProject:
			return m, m.deleteProject(id)
		case confirmTask:
			return m, m.deleteTask(id)
		}
	case "n", "esc":
		m.ConfirmTarget = confirmNone
		m.ConfirmID = 0
		m.ConfirmTitle = ""
	}
	return m, nil
}

// gotoLoginWithForm is gotoLogin plus the form init command.
func (m Model) gotoLoginWithForm(status string, isErr bool) (Model, tea.Cmd) {
	m = m.gotoLogin(status)
	m.StatusIsError = isErr
	return m, m.FormState.Form.Init()
}
