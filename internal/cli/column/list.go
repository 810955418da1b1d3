package column

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/4wadia/focusflow/internal/cli"
	"github.com/spf13/cobra"
)

// ListCmd returns the column list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List columns",
		Long: `List all columns on the board (in order).

Examples:
  # Human-readable list
  focusflow column list

  # Columns with their tasks for one day
  focusflow column list --tasks --date=2024-03-15 --json

  # Quiet mode (one ID per line)
  focusflow column list --quiet
`,
		RunE: runList,
	}

	cmd.Flags().Bool("tasks", false, "Include each column's tasks")
	cmd.Flags().String("date", "", "With --tasks, only tasks on this day (YYYY-MM-DD)")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	includeTasks, _ := cmd.Flags().GetBool("tasks")
	date, _ := cmd.Flags().GetString("date")
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

	if includeTasks {
		board, err := cliInstance.App.ColumnService.GetBoard(ctx, cliInstance.Owner, date)
		if err != nil {
			return formatter.Fail(err)
		}
		if quietMode {
			for _, col := range board {
				fmt.Println(col.ID)
			}
			return nil
		}
		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"success": true,
				"columns": board,
			})
		}
		for _, col := range board {
			fmt.Printf("%d. %s (%d tasks)\n", col.Order+1, col.Title, len(col.Tasks))
			for _, t := range col.Tasks {
				fmt.Printf("   - [%s] %s (ID: %s)\n", t.Priority, t.Title, t.ID)
			}
		}
		return nil
	}

	columns, err := cliInstance.App.ColumnService.ListColumns(ctx, cliInstance.Owner)
	if err != nil {
		return formatter.Fail(err)
	}

	if quietMode {
		for _, col := range columns {
			fmt.Println(col.ID)
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"columns": columns,
		})
	}

	if len(columns) == 0 {
		fmt.Println("No columns found")
		return nil
	}

	fmt.Println("Columns:")
	for _, col := range columns {
		fmt.Printf("  %d. %s (ID: %s)\n", col.Order+1, col.Title, col.ID)
	}
	return nil
}
