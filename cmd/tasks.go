package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ines/taskdeck/internal/api"
	"github.com/ines/taskdeck/internal/dateparse"
	"github.com/ines/taskdeck/internal/models"
	"github.com/ines/taskdeck/internal/output"
)

var tasksCmd = &cobra.Command{
	Use:     "tasks",
	Short:   "Manage tasks within a project",
	GroupID: "core",
	Aliases: []string{"t"},
}

var tasksListCmd = &cobra.Command{
	Use:   "list <project-id>",
	Short: "List a project's tasks, filtered and paged",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		projectID, err := parseID(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		statusStr, _ := cmd.Flags().GetString("status")
		page, _ := cmd.Flags().GetInt("page")
		asJSON, _ := cmd.Flags().GetBool("json")

		status := models.StatusFilter(statusStr)
		if !status.Valid() {
			err := fmt.Errorf("invalid status %q (use all, active or completed)", statusStr)
			output.Error("%v", err)
			return err
		}

		result, err := client.ListTasks(projectID, page, models.DefaultPageSize, status)
		if err != nil {
			output.Error("list tasks: %v", err)
			return err
		}

		if asJSON {
			return output.JSON(result)
		}

		if len(result.Content) == 0 {
			output.Info("No tasks yet. Add one to get started.")
			return nil
		}
		for _, t := range result.Content {
			fmt.Println(output.FormatTaskShort(t))
		}
		fmt.Println(output.PageFooter(*result))
		return nil
	},
}

var tasksAddCmd = &cobra.Command{
	Use:   "add <project-id> <title>",
	Short: "Add a task to a project",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		projectID, err := parseID(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		desc, _ := cmd.Flags().GetString("desc")
		due, _ := cmd.Flags().GetString("due")
		if due != "" {
			due, err = dateparse.ParseDue(due)
			if err != nil {
				output.Error("%v", err)
				return err
			}
		}

		title := args[1]
		for _, part := range args[2:] {
			title += " " + part
		}

		task, err := client.CreateTask(projectID, api.CreateTaskRequest{
			Title:       title,
			Description: desc,
			DueDate:     due,
		})
		if err != nil {
			output.Error("create task: %v", err)
			return err
		}
		output.Success("Created task %d: %s", task.ID, task.Title)
		return nil
	},
}

var tasksDoneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		taskID, err := parseID(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if err := client.CompleteTask(taskID); err != nil {
			output.Error("complete task: %v", err)
			return err
		}
		output.Success("Completed task %d", taskID)
		return nil
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := requireAuth()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		taskID, err := parseID(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(fmt.Sprintf("Delete task %d?", taskID)) {
			fmt.Println("Aborted.")
			return nil
		}

		if err := client.DeleteTask(taskID); err != nil {
			output.Error("delete task: %v", err)
			return err
		}
		output.Success("Deleted task %d", taskID)
		return nil
	},
}

func init() {
	tasksListCmd.Flags().String("status", "all", "Status filter: all, active or completed")
	tasksListCmd.Flags().Int("page", 0, "Zero-based page index")
	tasksListCmd.Flags().Bool("json", false, "Output JSON")

	tasksAddCmd.Flags().String("desc", "", "Task description")
	tasksAddCmd.Flags().String("due", "", `Due date ("2026-09-15", "tomorrow", "fri", "+2w")`)

	tasksDeleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksAddCmd)
	tasksCmd.AddCommand(tasksDoneCmd)
	tasksCmd.AddCommand(tasksDeleteCmd)
	rootCmd.AddCommand(tasksCmd)
}
