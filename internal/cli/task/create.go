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

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task at the end of a column.

High priority tasks are limited to 5 per day and may not overlap in time.

Examples:
  # Simple task in the first column, due today
  focusflow task create --title="Buy milk"

  # Scheduled high priority task
  focusflow task create --title="Write report" --column=Work \
    --date=2024-03-15 --due="2:00 PM" --duration="1h 30m" --priority=high

  # Quiet mode for bash capture
  TASK_ID=$(focusflow task create --title="Call mom" --quiet)
`,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("title", "", "Task title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	// Optional flags
	cmd.Flags().String("column", "", "Column ID or title (defaults to first column)")
	cmd.Flags().String("date", "", "Day of the task, YYYY-MM-DD (defaults to today)")
	cmd.Flags().String("due", "", `Due time, e.g. "2:30 PM"`)
	cmd.Flags().String("duration", "", `Duration, e.g. "1h 30m" or "45m"`)
	cmd.Flags().String("priority", "medium", "Priority: high, medium, low, completed")
	cmd.Flags().StringSlice("tag", nil, "Tag (repeatable)")
	cmd.Flags().StringArray("subtask", nil, "Subtask text (repeatable)")

	addOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	title, _ := cmd.Flags().GetString("title")
	columnRef, _ := cmd.Flags().GetString("column")
	date, _ := cmd.Flags().GetString("date")
	dueTime, _ := cmd.Flags().GetString("due")
	duration, _ := cmd.Flags().GetString("duration")
	priorityFlag, _ := cmd.Flags().GetString("priority")
	tags, _ := cmd.Flags().GetStringSlice("tag")
	subtaskTexts, _ := cmd.Flags().GetStringArray("subtask")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	priority, err := cli.ParsePriority(priorityFlag)
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

	// Determine target column
	columns, err := cliInstance.App.ColumnService.ListColumns(ctx, cliInstance.Owner)
	if err != nil {
		return formatter.Fail(err)
	}
	if len(columns) == 0 {
		return formatter.FailWith("NO_COLUMNS", cli.ExitNotFound,
			fmt.Errorf("board has no columns"),
			"Create one with 'focusflow column create --title=<title>'")
	}
	column := columns[0]
	if columnRef != "" {
		if column, err = cli.FindColumnByName(columns, columnRef); err != nil {
			return formatter.FailWith("COLUMN_NOT_FOUND", cli.ExitNotFound, err,
				fmt.Sprintf("Available columns: %s", cli.FormatAvailableColumns(columns)))
		}
	}

	subtasks := make([]models.Subtask, len(subtaskTexts))
	for i, text := range subtaskTexts {
		subtasks[i] = models.Subtask{Text: text}
	}

	task, err := cliInstance.App.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		OwnerID:  cliInstance.Owner,
		ColumnID: column.ID,
		Title:    title,
		Date:     date,
		DueTime:  dueTime,
		Duration: duration,
		Priority: priority,
		Subtasks: subtasks,
		Tags:     tags,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	// Output based on mode (JSON/Quiet/Human)
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

	fmt.Printf("✓ Task '%s' created successfully (ID: %s)\n", task.Title, task.ID)
	printTask(task, column.Title)
	return nil
}
