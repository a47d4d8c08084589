package dashboard

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/ines/taskdeck/internal/api"
	"github.com/ines/taskdeck/internal/dateparse"
)

var (
	errEmailRequired    = errors.New("email is required")
	errPasswordRequired = errors.New("password is required")
	errTitleRequired    = errors.New("title is required")
	errPasswordMismatch = errors.New("passwords do not match")
)

// FormKind identifies which form a FormState holds.
type FormKind int

const (
	FormLogin FormKind = iota
	FormRegister
	FormNewProject
	FormNewTask
)

// FormState holds a huh form plus its bound values.
type FormState struct {
	Kind FormKind
	Form *huh.Form

	// Auth fields
	Email    string
	Password string
	Confirm  string

	// Project / task fields
	Title       string
	Description string
	DueDate     string

	// For FormNewTask: the project receiving the task
	ProjectID int64
}

// NewLoginForm builds the credentials form for the login screen.
func NewLoginForm() *FormState {
	fs := &FormState{Kind: FormLogin}
	fs.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&fs.Email).
				Placeholder("you@example.com").
				Validate(requiredField(errEmailRequired)),
			huh.NewInput().
				Title("Password").
				Value(&fs.Password).
				EchoMode(huh.EchoModePassword).
				Validate(requiredField(errPasswordRequired)),
		).Title("Sign In"),
	).WithTheme(huh.ThemeDracula())
	return fs
}

// NewRegisterForm builds the registration form. The password mismatch check
// runs on the confirmation field so the form cannot submit with differing
// passwords.
func NewRegisterForm() *FormState {
	fs := &FormState{Kind: FormRegister}
	fs.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&fs.Email).
				Placeholder("you@example.com").
				Validate(requiredField(errEmailRequired)),
			huh.NewInput().
				Title("Password").
				Value(&fs.Password).
				EchoMode(huh.EchoModePassword).
				Validate(requiredField(errPasswordRequired)),
			huh.NewInput().
				Title("Confirm Password").
				Value(&fs.Confirm).
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if s != fs.Password {
						return errPasswordMismatch
					}
					return nil
				}),
		).Title("Create Account"),
	).WithTheme(huh.ThemeDracula())
	return fs
}

// NewProjectForm builds the new-project form modal.
func NewProjectForm() *FormState {
	fs := &FormState{Kind: FormNewProject}
	fs.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fs.Title).
				Placeholder("Project title...").
				Validate(requiredField(errTitleRequired)),
			huh.NewText().
				Title("Description").
				Value(&fs.Description).
				Placeholder("Optional description...").
				Lines(3),
		).Title("New Project"),
	).WithTheme(huh.ThemeDracula())
	return fs
}

// NewTaskForm builds the new-task form modal for the given project.
func NewTaskForm(projectID int64) *FormState {
	fs := &FormState{Kind: FormNewTask, ProjectID: projectID}
	fs.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fs.Title).
				Placeholder("Task title...").
				Validate(requiredField(errTitleRequired)),
			huh.NewText().
				Title("Description").
				Value(&fs.Description).
				Placeholder("Optional description...").
				Lines(3),
			huh.NewInput().
				Title("Due Date").
				Value(&fs.DueDate).
				Placeholder("2026-09-15, tomorrow, fri, +2w").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := dateparse.ParseDue(s)
					return err
				}),
		).Title("New Task"),
	).WithTheme(huh.ThemeDracula())
	return fs
}

// ToCreateTaskRequest converts the bound values into the create-task payload.
func (fs *FormState) ToCreateTaskRequest() api.CreateTaskRequest {
	return api.CreateTaskRequest{
		Title:       strings.TrimSpace(fs.Title),
		Description: fs.Description,
		DueDate:     fs.DueDateISO(),
	}
}

// DueDateISO returns the due date normalized to YYYY-MM-DD, or empty when the
// field was left blank.
func (fs *FormState) DueDateISO() string {
	s := strings.TrimSpace(fs.DueDate)
	if s == "" {
		return ""
	}
	iso, err := dateparse.ParseDue(s)
	if err != nil {
		return ""
	}
	return iso
}

func requiredField(failure error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return failure
		}
		return nil
	}
}
