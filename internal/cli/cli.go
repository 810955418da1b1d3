package cli

import (
	"context"

	"github.com/4wadia/focusflow/internal/app"
	"github.com/4wadia/focusflow/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App   *app.App // Application container with services
	Owner string   // Owner the local commands act as
	owned bool     // App was opened here and must be closed here
}

// NewCLI opens the configured database and builds the services.
func NewCLI(ctx context.Context, cfg *config.Config) (*CLI, error) {
	application, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &CLI{
		App:   application,
		Owner: cfg.CLI.Owner,
		owned: true,
	}, nil
}

// Open returns the CLI for a command, reporting initialization failures
// through f
func Open(ctx context.Context, f *OutputFormatter) (*CLI, error) {
	c, err := GetCLIFromContext(ctx)
	if err != nil {
		return nil, f.FailWith("INITIALIZATION_ERROR", ExitError, err, "")
	}
	return c, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
