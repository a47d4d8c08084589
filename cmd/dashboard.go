package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ines/taskdeck/pkg/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive full-screen dashboard",
	Long: `Launch the interactive dashboard. Running taskdeck with no
arguments does the same thing.

Key bindings (project list):
  /              Search projects
  ←/→ or h/l     Previous / next page
  ↑/↓ or j/k     Select project
  Enter          Open project
  n              New project
  d              Delete selected project
  q              Quit

Key bindings (project detail):
  f              Cycle task filter (all → active → completed)
  ←/→ or h/l     Previous / next task page
  ↑/↓ or j/k     Select task
  Enter/c        Complete selected task
  n              New task
  d              Delete selected task
  D              Delete the project
  Esc            Back to project list`,
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func runDashboard() error {
	client, store, err := newSession()
	if err != nil {
		return err
	}

	model := dashboard.NewModel(client, store, version)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
