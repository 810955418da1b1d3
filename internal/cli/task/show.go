package task

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/4wadia/focusflow/internal/cli"
	"github.com/spf13/cobra"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a task",
		Long: `Show all fields of a single task.

Examples:
  focusflow task show --id=<task-id>
  focusflow task show --id=<task-id> --json
`,
		RunE: runShow,
	}

	cmd.Flags().String("id", "", "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	addOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	taskID, _ := cmd.Flags().GetString("id")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	cliInstance, err := cli.Open(ctx, formatter)
	if err != nil {
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	task, err := cliInstance.App.TaskService.GetTask(ctx, cliInstance.Owner, taskID)
	if err != nil {
		return formatter.FailWith("TASK_NOT_FOUND", cli.ExitNotFound, err,
			"Use 'focusflow task list' to see available tasks")
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

	column, err := cliInstance.App.ColumnService.GetColumn(ctx, cliInstance.Owner, task.ColumnID)
	if err != nil {
		return formatter.Fail(err)
	}

	status := "open"
	if task.IsCompleted {
		status = "done"
	}
	fmt.Printf("%s (%s)\n", task.Title, status)
	fmt.Printf("  ID: %s\n", task.ID)
	printTask(task, column.Title)
	return nil
}
