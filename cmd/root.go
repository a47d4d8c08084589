package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version string

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "Terminal client for the task manager server",
	Long: `taskdeck - A terminal client for a remote task/project management server.

Running taskdeck with no arguments opens the interactive dashboard.
Every dashboard operation is also available as a one-shot command for
scripting: see "taskdeck projects" and "taskdeck tasks".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare invocation opens the dashboard.
		return runDashboard()
	},
}

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print the taskdeck version",
	GroupID: "system",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskdeck %s\n", version)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "auth", Title: "Auth Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)
	rootCmd.SetHelpCommandGroupID("system")
	rootCmd.SetCompletionCommandGroupID("system")
	rootCmd.AddCommand(versionCmd)
}
