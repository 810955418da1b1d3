package column

import (
	"fmt"

	"github.com/4wadia/focusflow/internal/cli"
	"github.com/spf13/cobra"
)

// ColumnCmd returns the column parent command
func ColumnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage columns",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// resolve finds the column named by ref, reporting a miss with the
// available titles as a suggestion
func resolve(cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter, ref string) (string, string, error) {
	col, columns, err := cli.ResolveColumn(cmd.Context(), c, ref)
	if err != nil {
		if columns == nil {
			return "", "", f.Fail(err)
		}
		return "", "", f.FailWith("COLUMN_NOT_FOUND", cli.ExitNotFound, err,
			fmt.Sprintf("Available columns: %s", cli.FormatAvailableColumns(columns)))
	}
	return col.ID, col.Title, nil
}
