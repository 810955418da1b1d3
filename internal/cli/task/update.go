package task

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/4wadia/focusflow/internal/cli"
	"github.com/4wadia/focusflow/internal/models"
	taskservice "github.com/4wadia/focusflow/internal/services/task"
	"github.com/spf13/cobra"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a task",
		Long: `Update task fields. Only the flags that are given change.

Raising a task to high priority checks the daily limit and time conflicts
on the task's (possibly new) date.

Examples:
  focusflow task update --id=<task-id> --title="New title"
  focusflow task update --id=<task-id> --priority=high --due="9:00 AM" --duration=1h
  focusflow task update --id=<task-id> --tag=home --tag=weekly
`,
		RunE: runUpdate,
	}

	cmd.Flags().String("id", "", "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("date", "", "New day (YYYY-MM-DD)")
	cmd.Flags().String("due", "", `New due time, e.g. "2:30 PM" ("" clears it)`)
	cmd.Flags().String("duration", "", `New duration, e.g. "45m" ("" clears it)`)
	cmd.Flags().String("priority", "", "New priority: high, medium, low, completed")
	cmd.Flags().StringSlice("tag", nil, "Replace tags (repeatable)")

	addOutputFlags(cmd)

	return cmd
}

// changesFromFlags builds TaskChanges from the flags the user actually set
func changesFromFlags(cmd *cobra.Command) (taskservice.TaskChanges, error) {
	var changes taskservice.TaskChanges
	flags := cmd.Flags()

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	changes.Title = stringFlag("title")
	changes.Date = stringFlag("date")
	changes.DueTime = stringFlag("due")
	changes.Duration = stringFlag("duration")

	if raw := stringFlag("priority"); raw != nil {
		p, err := cli.ParsePriority(*raw)
		if err != nil {
			return changes, err
		}
		changes.Priority = &p
	}
	if flags.Changed("tag") {
		tags, _ := flags.GetStringSlice("tag")
		changes.Tags = &tags
	}
	return changes, nil
}

func hasChanges(c taskservice.TaskChanges) bool {
	return c.Title != nil || c.Date != nil || c.DueTime != nil || c.Duration != nil ||
		c.Priority != nil || c.Tags != nil || c.Subtasks != nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	taskID, _ := cmd.Flags().GetString("id")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	changes, err := changesFromFlags(cmd)
	if err != nil {
		return formatter.FailWith("INVALID_PRIORITY", cli.ExitValidation, err,
			"Valid priorities are: high, medium, low, completed")
	}
	if !hasChanges(changes) {
		return formatter.FailWith("NO_UPDATES", cli.ExitUsage,
			fmt.Errorf("no updates specified"),
			"Specify at least one of: --title, --date, --due, --duration, --priority, --tag")
	}

	cliInstance, err := cli.Open(ctx, formatter)
	if err != nil {
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	task, err := cliInstance.App.TaskService.UpdateTask(ctx, taskservice.UpdateTaskRequest{
		OwnerID:     cliInstance.Owner,
		TaskID:      taskID,
		TaskChanges: changes,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	if quietMode {
		fmt.Println(task.ID)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"task":    task,
		})
	}

	fmt.Printf("✓ Task '%s' updated successfully\n", task.Title)
	if task.Priority == models.PriorityHigh {
		if s := schedule(task); s != "" {
			fmt.Printf("  High priority slot: %s on %s\n", s, task.Date)
		}
	}
	return nil
}
