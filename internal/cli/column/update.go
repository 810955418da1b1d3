package column

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/4wadia/focusflow/internal/cli"
	columnservice "github.com/4wadia/focusflow/internal/services/column"
	"github.com/spf13/cobra"
)

// UpdateCmd returns the column update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Rename or reorder a column",
		Long: `Rename a column and/or move it to a new position on the board.
Positions start at 0; a position past the end moves the column last.

Examples:
  focusflow column update --id=Work --title="Deep Work"
  focusflow column update --id=<column-id> --order=0
`,
		RunE: runUpdate,
	}

	cmd.Flags().String("id", "", "Column ID or title (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().Int("order", 0, "New position")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ref, _ := cmd.Flags().GetString("id")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	req := columnservice.UpdateColumnRequest{}
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		req.Title = &title
	}
	if cmd.Flags().Changed("order") {
		order, _ := cmd.Flags().GetInt("order")
		req.Order = &order
	}
	if req.Title == nil && req.Order == nil {
		return formatter.FailWith("NO_UPDATES", cli.ExitUsage,
			fmt.Errorf("no updates specified"),
			"Specify at least one of: --title, --order")
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

	columnID, _, err := resolve(cmd, cliInstance, formatter, ref)
	if err != nil {
		return err
	}
	req.OwnerID = cliInstance.Owner
	req.ColumnID = columnID

	column, err := cliInstance.App.ColumnService.UpdateColumn(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	if quietMode {
		fmt.Println(column.ID)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"column":  column,
		})
	}

	fmt.Printf("✓ Column '%s' updated (position %d)\n", column.Title, column.Order)
	return nil
}
