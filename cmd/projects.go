package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ines/taskdeck/internal/models"
	"github.com/ines/taskdeck/internal/output"
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Short:   "Manage projects",
	GroupID: "core",
	Aliases: []string{"p"},
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with search and pagination",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		search, _ := cmd.Flags().GetString("search")
		page, _ := cmd.Flags().GetInt("page")
		asJSON, _ := cmd.Flags().GetBool("json")

		result, err := client.ListProjects(search, page, models.DefaultPageSize)
		if err != nil {
			output.Error("list projects: %v", err)
			return err
		}

		if asJSON {
			return output.JSON(result)
		}

		if len(result.Content) == 0 {
			output.Info("No projects found. Start by creating one!")
			return nil
		}
		for _, p := range result.Content {
			fmt.Println(output.FormatProjectShort(p))
		}
		fmt.Println(output.PageFooter(*result))
		return nil
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new project",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		title := strings.Join(args, " ")
		desc, _ := cmd.Flags().GetString("desc")

		project, err := client.CreateProject(title, desc)
		if err != nil {
			output.Error("create project: %v", err)
			return err
		}
		output.Success("Created project %d: %s", project.ID, project.Title)
		return nil
	},
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show a project with its progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		project, err := client.GetProject(id)
		if err != nil {
			output.Error("get project: %v", err)
			return err
		}
		progress, err := client.GetProgress(id)
		if err != nil {
			output.Error("get progress: %v", err)
			return err
		}

		if asJSON {
			return output.JSON(map[string]any{"project": project, "progress": progress})
		}

		fmt.Println(output.FormatProjectShort(*project))
		if project.Description != "" {
			fmt.Println(project.Description)
		}
		fmt.Println(output.ProgressBar(*progress, 20))
		return nil
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project and all its tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(fmt.Sprintf("Delete project %d and all its tasks?", id)) {
			fmt.Println("Aborted.")
			return nil
		}

		if err := client.DeleteProject(id); err != nil {
			output.Error("delete project: %v", err)
			return err
		}
		output.Success("Deleted project %d", id)
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// confirmPrompt asks a y/N question and returns true only on an explicit yes.
func confirmPrompt(question string) bool {
	answer, err := promptLine(question + " [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func init() {
	projectsListCmd.Flags().String("search", "", "Filter projects by title")
	projectsListCmd.Flags().Int("page", 0, "Zero-based page index")
	projectsListCmd.Flags().Bool("json", false, "Output JSON")

	projectsCreateCmd.Flags().String("desc", "", "Project description")

	projectsShowCmd.Flags().Bool("json", false, "Output JSON")

	projectsDeleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsShowCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	rootCmd.AddCommand(projectsCmd)
}
