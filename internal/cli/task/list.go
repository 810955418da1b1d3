package task

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/4wadia/focusflow/internal/cli"
	"github.com/4wadia/focusflow/internal/cli/styles"
	taskservice "github.com/4wadia/focusflow/internal/services/task"
	"github.com/spf13/cobra"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks in board order, optionally limited to one day or column.

Examples:
  focusflow task list
  focusflow task list --date=2024-03-15 --column=Work
  focusflow task list --json
`,
		RunE: runList,
	}

	cmd.Flags().String("date", "", "Only tasks on this day (YYYY-MM-DD)")
	cmd.Flags().String("column", "", "Only tasks in this column (ID or title)")

	addOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	date, _ := cmd.Flags().GetString("date")
	columnRef, _ := cmd.Flags().GetString("column")
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

	columns, err := cliInstance.App.ColumnService.ListColumns(ctx, cliInstance.Owner)
	if err != nil {
		return formatter.Fail(err)
	}

	filter := taskservice.ListFilter{Date: date}
	if columnRef != "" {
		column, err := cli.FindColumnByName(columns, columnRef)
		if err != nil {
			return formatter.FailWith("COLUMN_NOT_FOUND", cli.ExitNotFound, err,
				fmt.Sprintf("Available columns: %s", cli.FormatAvailableColumns(columns)))
		}
		filter.ColumnID = column.ID
	}

	tasks, err := cliInstance.App.TaskService.ListTasks(ctx, cliInstance.Owner, filter)
	if err != nil {
		return formatter.Fail(err)
	}

	// Output based on mode
	if quietMode {
		for _, t := range tasks {
			fmt.Println(t.ID)
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"tasks":   tasks,
		})
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Printf("Found %d tasks:\n", len(tasks))
	for _, t := range tasks {
		line := fmt.Sprintf("  %s %s", styles.RenderPriority(t.Priority), t.Title)
		if s := schedule(t); s != "" {
			line += " (" + s + ")"
		}
		fmt.Printf("%s [%s #%d] %s ID: %s\n", line,
			cli.GetCurrentColumnName(columns, t.ColumnID), t.Order, t.Date, t.ID)
	}
	return nil
}
