package dashboard

import (
	"time"

	"github.com/ines/taskdeck/internal/models"
)

// Screen identifies which full-screen view is active.
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenLogin
	ScreenRegister
	ScreenProjects
	ScreenDetail
)

// confirmTarget identifies what a pending delete confirmation applies to.
type confirmTarget int

const (
	confirmNone confirmTarget = iota
	confirmProject
	confirmTask
)

// Minimum dimensions for the dashboard
const (
	MinWidth  = 50
	MinHeight = 12
)

// searchDebounce is how long typing in the search box must pause before a
// request is issued.
const searchDebounce = 300 * time.Millisecond

// sessionRestoredMsg reports the result of loading persisted credentials.
type sessionRestoredMsg struct {
	Authenticated bool
	Email         string
}

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	OK      bool
	Email   string
	Failure string
}

// registerResultMsg carries the outcome of a registration attempt.
type registerResultMsg struct {
	OK      bool
	Email   string
	Failure string
}

// projectsLoadedMsg carries one page of the project list. Gen is the fetch
// generation at request time; stale generations are discarded.
type projectsLoadedMsg struct {
	Gen  int
	Page *models.Page[models.Project]
	Err  error
}

// detailLoadedMsg carries the joined project detail data: the project record,
// one task page, and the progress summary.
type detailLoadedMsg struct {
	Gen       int
	ProjectID int64
	Project   *models.Project
	Tasks     *models.Page[models.Task]
	Progress  *models.ProgressSummary
	Err       error
}

// mutationDoneMsg reports completion of a create/complete/delete request.
type mutationDoneMsg struct {
	Action string
	Err    error
}

// projectDeletedMsg reports completion of a project delete.
type projectDeletedMsg struct {
	Err error
}

// searchDebounceMsg fires when the search debounce timer elapses. Gen must
// match the current search generation or the timer is ignored (superseded by
// further typing).
type searchDebounceMsg struct {
	Gen int
}

// descRenderedMsg carries the glamour-rendered project description.
type descRenderedMsg struct {
	ProjectID int64
	Content   string
}

// clearStatusMsg clears the transient status line.
type clearStatusMsg struct{}
