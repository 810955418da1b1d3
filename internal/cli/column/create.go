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

// CreateCmd returns the column create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new column",
		Long: `Create a new column at the right end of the board.

Examples:
  focusflow column create --title="Work"
  COL_ID=$(focusflow column create --title="Errands" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Column title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	title, _ := cmd.Flags().GetString("title")
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

	column, err := cliInstance.App.ColumnService.CreateColumn(ctx, columnservice.CreateColumnRequest{
		OwnerID: cliInstance.Owner,
		Title:   title,
	})
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

	fmt.Printf("✓ Column '%s' created successfully (ID: %s, position %d)\n", column.Title, column.ID, column.Order)
	return nil
}
