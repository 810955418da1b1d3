package cmd

import (
	"errors"
	"log/slog"

	"github.com/4wadia/focusflow/internal/cli"
	"github.com/4wadia/focusflow/internal/cli/board"
	"github.com/4wadia/focusflow/internal/cli/column"
	"github.com/4wadia/focusflow/internal/cli/styles"
	"github.com/4wadia/focusflow/internal/cli/task"
	"github.com/4wadia/focusflow/internal/config"
	"github.com/4wadia/focusflow/internal/logging"
	"github.com/spf13/cobra"
)

// closeLog closes the log file opened in PersistentPreRunE
var closeLog = func() error { return nil }

var rootCmd = &cobra.Command{
	Use:   "focusflow",
	Short: "FocusFlow - a personal kanban board",
	Long: `FocusFlow is a personal kanban board with columns of dated tasks.
At most 5 high priority tasks fit in a day, and their time slots may not overlap.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/focusflow/config.yaml)")

	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(column.ColumnCmd())
	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(serveCmd())
}

// setup loads the configuration, then configures logging and colors
func setup(cmd *cobra.Command, args []string) error {
	var (
		cfg *config.Config
		err error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return usageError(cmd, err)
	}

	if closeLog, err = logging.Init(cfg.Log); err != nil {
		return usageError(cmd, err)
	}
	styles.Init(cfg.ColorScheme)

	cmd.SetContext(cli.WithConfig(cmd.Context(), cfg))
	slog.Debug("config loaded", "db", cfg.Database.Path, "lock", cfg.Lock.Backend)
	return nil
}

// usageError reports a configuration problem and exits with ExitUsage
func usageError(cmd *cobra.Command, err error) error {
	cmd.PrintErrln("Error:", err)
	return &cli.StatusError{Code: cli.ExitUsage, Err: err}
}

// Execute runs the root command. Errors that were not already reported by a
// command are printed here.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		var reported *cli.StatusError
		if !errors.As(err, &reported) {
			rootCmd.PrintErrln("Error:", err)
		}
	}
	return err
}
