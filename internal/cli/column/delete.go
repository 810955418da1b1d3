package column

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/4wadia/focusflow/internal/cli"
	taskservice "github.com/4wadia/focusflow/internal/services/task"
	"github.com/spf13/cobra"
)

// DeleteCmd returns the column delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a column and its tasks",
		Long:  "Delete a column by ID or title together with all of its tasks (requires confirmation unless --force or --quiet).",
		RunE:  runDelete,
	}

	cmd.Flags().String("id", "", "Column ID or title (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ref, _ := cmd.Flags().GetString("id")
	force, _ := cmd.Flags().GetBool("force")
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

	columnID, title, err := resolve(cmd, cliInstance, formatter, ref)
	if err != nil {
		return err
	}

	// Ask for confirmation unless force or quiet mode
	if !force && !quietMode && !jsonOutput {
		tasks, err := cliInstance.App.TaskService.ListTasks(ctx, cliInstance.Owner, taskservice.ListFilter{ColumnID: columnID})
		if err != nil {
			return formatter.Fail(err)
		}
		fmt.Printf("Delete column '%s' and its %d tasks? (y/N): ", title, len(tasks))
		var response string
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &response); err != nil {
			slog.Debug("failed to read confirmation", "error", err)
		}
		if r := strings.ToLower(response); r != "y" && r != "yes" {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cliInstance.App.ColumnService.DeleteColumn(ctx, cliInstance.Owner, columnID); err != nil {
		return formatter.Fail(err)
	}

	if quietMode {
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":   true,
			"column_id": columnID,
		})
	}

	fmt.Printf("✓ Column '%s' and its tasks deleted\n", title)
	return nil
}
