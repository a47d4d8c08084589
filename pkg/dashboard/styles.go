package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ines/taskdeck/internal/models"
)

var (
	// Base colors
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	successColor = lipgloss.Color("42")
	warningColor = lipgloss.Color("214")
	errorColor   = lipgloss.Color("196")
	cyanColor    = lipgloss.Color("45")

	// Panel styles
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	// Text styles
	titleStyle  = lipgloss.NewStyle().Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle   = lipgloss.NewStyle().Foreground(mutedColor)

	// Status line styles
	statusOKStyle  = lipgloss.NewStyle().Foreground(successColor)
	statusErrStyle = lipgloss.NewStyle().Foreground(errorColor)

	// Selected row style - inverted colors for visibility
	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255"))

	// Badges
	activeBadge    = lipgloss.NewStyle().Foreground(cyanColor)
	completedBadge = lipgloss.NewStyle().Foreground(successColor)

	// Task rendering
	doneMarkStyle  = lipgloss.NewStyle().Foreground(successColor)
	openMarkStyle  = lipgloss.NewStyle().Foreground(cyanColor)
	doneTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)
	dueStyle       = lipgloss.NewStyle().Foreground(warningColor)

	// Progress bar glyphs
	barFilled = "█"
	barEmpty  = "░"

	// Filter pill shown in the detail header
	filterStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)
)

// formatBadge renders a colored [Active]/[Completed] badge for a project.
func formatBadge(p models.Project) string {
	if p.IsCompleted() {
		return completedBadge.Render("[Completed]")
	}
	return activeBadge.Render("[Active]")
}

// formatTaskMark renders the completion mark for a task row.
func formatTaskMark(t models.Task) string {
	if t.Completed {
		return doneMarkStyle.Render("✓")
	}
	return openMarkStyle.Render("○")
}
