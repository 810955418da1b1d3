package cli

import (
	"context"

	"github.com/4wadia/focusflow/internal/app"
	"github.com/4wadia/focusflow/internal/config"
)

type contextKey string

const (
	appKey    contextKey = "app"
	ownerKey  contextKey = "owner"
	configKey contextKey = "config"
)

// WithApp makes commands run against an existing App instead of opening the
// configured database. The App stays open after the command.
func WithApp(ctx context.Context, a *app.App, owner string) context.Context {
	ctx = context.WithValue(ctx, appKey, a)
	return context.WithValue(ctx, ownerKey, owner)
}

// WithConfig stores the loaded configuration for GetCLIFromContext.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// ConfigFromContext returns the configuration stored by WithConfig, falling
// back to loading it.
func ConfigFromContext(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok && cfg != nil {
		return cfg, nil
	}
	return config.Load()
}

// GetCLIFromContext returns the CLI for a command: the App injected with
// WithApp if there is one, otherwise a fresh one over the configured database.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		owner, _ := ctx.Value(ownerKey).(string)
		return &CLI{App: a, Owner: owner}, nil
	}

	cfg, err := ConfigFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return NewCLI(ctx, cfg)
}
