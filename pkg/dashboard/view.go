package dashboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ines/taskdeck/internal/models"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width > 0 && (m.Width < MinWidth || m.Height < MinHeight) {
		return subtleStyle.Render(fmt.Sprintf("Terminal too small (need %dx%d)", MinWidth, MinHeight))
	}

	switch m.Screen {
	case ScreenLoading:
		return m.viewLoading()
	case ScreenLogin, ScreenRegister:
		return m.viewAuth()
	case ScreenProjects:
		return m.viewProjects()
	case ScreenDetail:
		return m.viewDetail()
	}
	return ""
}

func (m Model) viewLoading() string {
	content := titleStyle.Render("taskdeck") + "\n\n" + m.Spinner.View() + " " + subtleStyle.Render("Restoring session...")
	return m.center(content)
}

func (m Model) viewAuth() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("taskdeck"))
	b.WriteString("\n\n")
	if m.FormState != nil && m.FormState.Form != nil {
		b.WriteString(m.FormState.Form.View())
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	if m.Screen == ScreenLogin {
		b.WriteString(helpStyle.Render("enter submit · ctrl+r register · esc quit"))
	} else {
		b.WriteString(helpStyle.Render("enter submit · esc back to sign in"))
	}
	return m.center(b.String())
}

func (m Model) viewProjects() string {
	var b strings.Builder

	// Header: title, identity, search box.
	header := panelTitleStyle.Render(" Projects ")
	if email := m.Store.Email(); email != "" {
		header += "  " + subtleStyle.Render(email)
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	if m.SearchMode {
		b.WriteString(m.SearchInput.View())
		b.WriteString("\n\n")
	} else if m.Search != "" {
		b.WriteString(subtleStyle.Render("/ " + m.Search))
		b.WriteString("\n\n")
	}

	switch {
	case m.Loading && m.Projects == nil:
		b.WriteString(m.Spinner.View() + " " + subtleStyle.Render("Loading projects..."))
		b.WriteString("\n")
	case m.Projects == nil || len(m.Projects.Content) == 0:
		b.WriteString(subtleStyle.Render("No projects found. Start by creating one!"))
		b.WriteString("\n")
	default:
		for i, p := range m.Projects.Content {
			row := fmt.Sprintf("#%-4d %s %s %s",
				p.ID,
				padRight(p.Title, 32),
				formatBadge(p),
				subtleStyle.Render(fmt.Sprintf("%d tasks", len(p.Tasks))))
			if i == m.Cursor {
				row = selectedRowStyle.Render("> " + row)
			} else {
				row = "  " + row
			}
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.Projects != nil {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("Page %d of %d", m.Projects.DisplayPage(), m.Projects.DisplayTotal())))
		b.WriteString("\n")
	}

	b.WriteString(m.footer("/ search · ←/→ page · enter open · n new · d delete · ctrl+l sign out · q quit"))
	return b.String()
}

func (m Model) viewDetail() string {
	var b strings.Builder

	title := " Project "
	if m.Project != nil && m.Project.Title != "" {
		title = " " + m.Project.Title + " "
	}
	header := panelTitleStyle.Render(title)
	if m.Project != nil && m.Project.Title != "" {
		header += " " + formatBadge(*m.Project)
	}
	header += "  " + filterStyle.Render("filter: "+string(m.Filter))
	b.WriteString(header)
	b.WriteString("\n\n")

	if m.Progress != nil {
		b.WriteString(m.renderProgress(*m.Progress))
		b.WriteString("\n\n")
	}

	if m.DescRender != "" {
		b.WriteString(m.DescRender)
		b.WriteString("\n\n")
	}

	switch {
	case m.Loading && m.Tasks == nil:
		b.WriteString(m.Spinner.View() + " " + subtleStyle.Render("Loading tasks..."))
		b.WriteString("\n")
	case m.Tasks == nil || len(m.Tasks.Content) == 0:
		b.WriteString(subtleStyle.Render("No tasks yet. Add one to get started."))
		b.WriteString("\n")
	default:
		for i, t := range m.Tasks.Content {
			b.WriteString(m.renderTaskRow(t, i == m.TaskCursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.Tasks != nil {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("Page %d of %d", m.Tasks.DisplayPage(), m.Tasks.DisplayTotal())))
		b.WriteString("\n")
	}

	b.WriteString(m.footer("f filter · ←/→ page · enter complete · n new · d delete · D delete project · esc back"))
	return b.String()
}

func (m Model) renderTaskRow(t models.Task, selected bool) string {
	title := t.Title
	if t.Completed {
		title = doneTitleStyle.Render(title)
	}
	row := fmt.Sprintf("%s #%-4d %s", formatTaskMark(t), t.ID, title)
	if t.DueDate != "" {
		row += " " + dueStyle.Render("due "+t.DueDate)
	}
	if selected {
		return selectedRowStyle.Render("> " + row)
	}
	return "  " + row
}

func (m Model) renderProgress(p models.ProgressSummary) string {
	const width = 30
	pct := p.ProgressPercentage
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(math.Round(pct / 100 * width))
	bar := strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled)
	return fmt.Sprintf("%s %3.0f%% %s", completedBadge.Render(bar), pct,
		subtleStyle.Render(fmt.Sprintf("(%d/%d)", p.CompletedTasks, p.TotalTasks)))
}

// footer renders the bottom hint line, replaced by the confirmation prompt or
// the status line when one is active.
func (m Model) footer(hints string) string {
	if m.ConfirmTarget != confirmNone {
		noun := "task"
		if m.ConfirmTarget == confirmProject {
			noun = "project and all its tasks"
		}
		prompt := fmt.Sprintf("Delete %s %q? (y/n)", noun, m.ConfirmTitle)
		return statusErrStyle.Render(prompt)
	}
	if m.StatusMessage != "" {
		return m.statusLine()
	}
	return helpStyle.Render(hints)
}

func (m Model) statusLine() string {
	if m.StatusMessage == "" {
		return ""
	}
	if m.StatusIsError {
		return statusErrStyle.Render(m.StatusMessage)
	}
	return statusOKStyle.Render(m.StatusMessage)
}

// center positions content in the middle of the window when dimensions are
// known.
func (m Model) center(content string) string {
	if m.Width <= 0 || m.Height <= 0 {
		return content
	}
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, content)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
