package dashboard

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ines/taskdeck/internal/models"
)

// restoreSession loads persisted credentials before the first screen is shown.
func (m Model) restoreSession() tea.Cmd {
	store := m.Store
	return func() tea.Msg {
		if err := store.Rehydrate(); err != nil {
			return sessionRestoredMsg{}
		}
		return sessionRestoredMsg{
			Authenticated: store.Authenticated(),
			Email:         store.Email(),
		}
	}
}

// submitLogin exchanges credentials for a token. Store.Login reports failure
// detail through Logf, so the command captures it into the result message.
func (m Model) submitLogin(email, password string) tea.Cmd {
	store := m.Store
	return func() tea.Msg {
		var failure string
		store.Logf = func(format string, args ...any) {
			failure = fmt.Sprintf(format, args...)
		}
		ok := store.Login(email, password)
		store.Logf = func(string, ...any) {}
		return loginResultMsg{OK: ok, Email: email, Failure: failure}
	}
}

// submitRegister creates an account. Registration does not log in.
func (m Model) submitRegister(email, password string) tea.Cmd {
	store := m.Store
	return func() tea.Msg {
		var failure string
		store.Logf = func(format string, args ...any) {
			failure = fmt.Sprintf(format, args...)
		}
		ok := store.Register(email, password)
		store.Logf = func(string, ...any) {}
		return registerResultMsg{OK: ok, Email: email, Failure: failure}
	}
}

// fetchProjects requests one page of the project list. The generation is
// echoed back so responses from superseded requests can be discarded.
func (m Model) fetchProjects(gen int, search string, page int) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		result, err := client.ListProjects(search, page, models.DefaultPageSize)
		return projectsLoadedMsg{Gen: gen, Page: result, Err: err}
	}
}

// fetchDetail requests the project record, one task page, and the progress
// summary concurrently, joining all three into a single message.
func (m Model) fetchDetail(gen int, projectID int64, filter models.StatusFilter, taskPage int) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		msg := detailLoadedMsg{Gen: gen, ProjectID: projectID}

		var wg sync.WaitGroup
		var projErr, tasksErr, progErr error
		wg.Add(3)
		go func() {
			defer wg.Done()
			msg.Project, projErr = client.GetProject(projectID)
		}()
		go func() {
			defer wg.Done()
			msg.Tasks, tasksErr = client.ListTasks(projectID, taskPage, models.DefaultPageSize, filter)
		}()
		go func() {
			defer wg.Done()
			msg.Progress, progErr = client.GetProgress(projectID)
		}()
		wg.Wait()

		// The project fetch carries the authoritative error: a 403/404 on it
		// means the whole view is inaccessible.
		switch {
		case projErr != nil:
			msg.Err = projErr
		case tasksErr != nil:
			msg.Err = tasksErr
		case progErr != nil:
			msg.Err = progErr
		}
		return msg
	}
}

// createProject posts a new project.
func (m Model) createProject(title, description string) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		_, err := client.CreateProject(title, description)
		return mutationDoneMsg{Action: "create project", Err: err}
	}
}

// createTask posts a new task to a project.
func (m Model) createTask(fs *FormState) tea.Cmd {
	client := m.Client
	req := fs.ToCreateTaskRequest()
	projectID := fs.ProjectID
	return func() tea.Msg {
		_, err := client.CreateTask(projectID, req)
		return mutationDoneMsg{Action: "create task", Err: err}
	}
}

// completeTask marks a task done on the server.
func (m Model) completeTask(taskID int64) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		return mutationDoneMsg{Action: "complete task", Err: client.CompleteTask(taskID)}
	}
}

// deleteTask removes a task.
func (m Model) deleteTask(taskID int64) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		return mutationDoneMsg{Action: "delete task", Err: client.DeleteTask(taskID)}
	}
}

// deleteProject removes a project and all its tasks.
func (m Model) deleteProject(projectID int64) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		return projectDeletedMsg{Err: client.DeleteProject(projectID)}
	}
}

// renderDescription renders a project description as markdown off the update
// loop.
func (m Model) renderDescription(projectID int64, description string, width int) tea.Cmd {
	return func() tea.Msg {
		return descRenderedMsg{
			ProjectID: projectID,
			Content:   renderMarkdown(description, width),
		}
	}
}
