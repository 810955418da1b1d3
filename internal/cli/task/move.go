package task

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/4wadia/focusflow/internal/cli"
	taskservice "github.com/4wadia/focusflow/internal/services/task"
	"github.com/spf13/cobra"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a task within or between columns",
		Long: `Move a task to a position in a column. Positions start at 0; a
position past the end of the column appends.

Examples:
  # Move to the top of its current column
  focusflow task move --id=<task-id> --order=0

  # Move to the end of another column
  focusflow task move --id=<task-id> --column=Done

  # Move and raise priority in one step
  focusflow task move --id=<task-id> --column=Work --order=1 --priority=high
`,
		RunE: runMove,
	}

	cmd.Flags().String("id", "", "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().String("column", "", "Destination column ID or title (defaults to the current column)")
	cmd.Flags().Int("order", 0, "Destination position (defaults to the end)")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("date", "", "New day (YYYY-MM-DD)")
	cmd.Flags().String("due", "", "New due time")
	cmd.Flags().String("duration", "", "New duration")
	cmd.Flags().String("priority", "", "New priority: high, medium, low, completed")
	cmd.Flags().StringSlice("tag", nil, "Replace tags (repeatable)")

	addOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	taskID, _ := cmd.Flags().GetString("id")
	columnRef, _ := cmd.Flags().GetString("column")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	order := math.MaxInt32
	if cmd.Flags().Changed("order") {
		order, _ = cmd.Flags().GetInt("order")
	}

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	changes, err := changesFromFlags(cmd)
	if err != nil {
		return formatter.FailWith("INVALID_PRIORITY", cli.ExitValidation, err,
			"Valid priorities are: high, medium, low, completed")
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

	current, err := cliInstance.App.TaskService.GetTask(ctx, cliInstance.Owner, taskID)
	if err != nil {
		return formatter.FailWith("TASK_NOT_FOUND", cli.ExitNotFound, err,
			"Use 'focusflow task list' to see available tasks")
	}

	columns, err := cliInstance.App.ColumnService.ListColumns(ctx, cliInstance.Owner)
	if err != nil {
		return formatter.Fail(err)
	}
	fromColumn := cli.GetCurrentColumnName(columns, current.ColumnID)

	var targetID string
	if columnRef != "" {
		target, err := cli.FindColumnByName(columns, columnRef)
		if err != nil {
			return formatter.FailWith("COLUMN_NOT_FOUND", cli.ExitNotFound, err,
				fmt.Sprintf("Task is currently in: %s\nAvailable columns: %s",
					fromColumn, cli.FormatAvailableColumns(columns)))
		}
		targetID = target.ID
	}

	task, err := cliInstance.App.TaskService.MoveTask(ctx, taskservice.MoveTaskRequest{
		OwnerID:     cliInstance.Owner,
		TaskID:      taskID,
		ColumnID:    targetID,
		Order:       order,
		TaskChanges: changes,
	})
	if err != nil {
		return formatter.Fail(err)
	}
	toColumn := cli.GetCurrentColumnName(columns, task.ColumnID)

	if quietMode {
		fmt.Println(task.ID)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":     true,
			"task":        task,
			"from_column": fromColumn,
			"to_column":   toColumn,
		})
	}

	fmt.Printf("Task '%s' moved to '%s' at position %d\n", task.Title, toColumn, task.Order)
	return nil
}
