// Package output provides styled terminal output helpers (success, error,
// project/task formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ines/taskdeck/internal/models"
)

var (
	// Styles
	titleStyle     = lipgloss.NewStyle().Bold(true)
	subtleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	activeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	doneTextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// StatusBadge returns the dashboard status badge for a project:
// "Completed" when every task is done, "Active" otherwise.
func StatusBadge(p models.Project) string {
	if p.IsCompleted() {
		return completedStyle.Render("[Completed]")
	}
	return activeStyle.Render("[Active]")
}

// FormatProjectShort formats a project in one line:
//
//	12  Site Redesign  [Active]  3 tasks
func FormatProjectShort(p models.Project) string {
	parts := []string{
		titleStyle.Render(fmt.Sprintf("%d", p.ID)),
		p.Title,
		StatusBadge(p),
	}
	if n := len(p.Tasks); n == 1 {
		parts = append(parts, subtleStyle.Render("1 task"))
	} else if n > 1 {
		parts = append(parts, subtleStyle.Render(fmt.Sprintf("%d tasks", n)))
	}
	return strings.Join(parts, "  ")
}

// FormatTaskShort formats a task in one line. Completed tasks render
// dimmed with a strike-through title.
func FormatTaskShort(t models.Task) string {
	mark := "○"
	title := t.Title
	if t.Completed {
		mark = successStyle.Render("✓")
		title = doneTextStyle.Render(title)
	}
	parts := []string{mark, titleStyle.Render(fmt.Sprintf("%d", t.ID)), title}
	if t.DueDate != "" {
		parts = append(parts, subtleStyle.Render("due "+t.DueDate))
	}
	return strings.Join(parts, "  ")
}

// ProgressBar renders a fixed-width completion bar with the rounded
// percentage, e.g. "████████░░░░░░░░░░░░ 40% (2/5)".
func ProgressBar(p models.ProgressSummary, width int) string {
	if width < 1 {
		width = 20
	}
	pct := p.ProgressPercentage
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(math.Round(pct / 100 * float64(width)))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %d%% (%d/%d)", bar, int(math.Round(pct)), p.CompletedTasks, p.TotalTasks)
}

// PageFooter renders the "Page X of Y" line with pagination hints.
func PageFooter[T any](p models.Page[T]) string {
	return subtleStyle.Render(fmt.Sprintf("Page %d of %d", p.DisplayPage(), p.DisplayTotal()))
}
