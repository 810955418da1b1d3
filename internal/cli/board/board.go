// Package board renders the owner's board as side-by-side columns.
package board

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/4wadia/focusflow/internal/cli"
	"github.com/4wadia/focusflow/internal/cli/styles"
	"github.com/4wadia/focusflow/internal/models"
	"github.com/spf13/cobra"
)

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the board for a day",
		Long: `Show every column with its tasks for one day.

Examples:
  focusflow board
  focusflow board --date=2024-03-15
  focusflow board --all --json
`,
		RunE: runBoard,
	}

	cmd.Flags().String("date", "", "Day to show (YYYY-MM-DD, defaults to today)")
	cmd.Flags().Bool("all", false, "Show tasks of every day")
	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

func runBoard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	date, _ := cmd.Flags().GetString("date")
	all, _ := cmd.Flags().GetBool("all")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	formatter := &cli.OutputFormatter{JSON: jsonOutput}

	switch {
	case all:
		date = ""
	case date == "":
		date = time.Now().Format(models.DateLayout)
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

	board, err := cliInstance.App.ColumnService.GetBoard(ctx, cliInstance.Owner, date)
	if err != nil {
		return formatter.Fail(err)
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"date":    date,
			"columns": board,
		})
	}

	if date != "" {
		fmt.Println(styles.TitleStyle.Render(date))
	}
	fmt.Println(styles.RenderBoard(board))
	return nil
}
