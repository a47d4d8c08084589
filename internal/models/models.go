package models

// DefaultPageSize is the page size the server uses for both project and
// task listings.
const DefaultPageSize = 6

// StatusFilter narrows task listings by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// Valid reports whether f is one of the recognized filter values.
func (f StatusFilter) Valid() bool {
	switch f {
	case StatusAll, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// Next cycles all -> active -> completed -> all.
func (f StatusFilter) Next() StatusFilter {
	switch f {
	case StatusAll:
		return StatusActive
	case StatusActive:
		return StatusCompleted
	default:
		return StatusAll
	}
}

// Task represents a single task belonging to a project.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate,omitempty"` // YYYY-MM-DD, empty when unset
	Completed   bool   `json:"completed"`
}

// Project represents a project as returned by the server. Tasks may be
// partially populated or absent depending on the endpoint.
type Project struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Tasks       []Task `json:"tasks,omitempty"`
}

// IsCompleted reports whether the project has at least one task and every
// task is completed. Projects whose task list is absent count as active.
func (p Project) IsCompleted() bool {
	if len(p.Tasks) == 0 {
		return false
	}
	for _, t := range p.Tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// ProgressSummary is the server-computed completion ratio for a project.
type ProgressSummary struct {
	TotalTasks         int     `json:"totalTasks"`
	CompletedTasks     int     `json:"completedTasks"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

// Page is one slice of a paged server listing. Number is zero-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"number"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool {
	return p.Number > 0
}

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages-1
}

// DisplayPage returns the one-based page number for display.
func (p Page[T]) DisplayPage() int {
	return p.Number + 1
}

// DisplayTotal returns the page count for display, treating an empty
// result set as a single empty page.
func (p Page[T]) DisplayTotal() int {
	if p.TotalPages == 0 {
		return 1
	}
	return p.TotalPages
}
