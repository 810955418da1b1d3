package cmd

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/4wadia/focusflow/internal/api"
	"github.com/4wadia/focusflow/internal/app"
	"github.com/4wadia/focusflow/internal/cli"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the board over HTTP. Every /api route requires an HS256 bearer
token whose userId (or sub) claim names the owner.

Examples:
  FOCUSFLOW_JWT_SECRET=... focusflow serve
  focusflow serve --listen=:8080
`,
		RunE: runServe,
	}

	cmd.Flags().String("listen", "", "Listen address (overrides server.listen)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := cli.ConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Server.Listen = listen
	}
	if cfg.Auth.JWTSecret == "" {
		return usageError(cmd, errors.New("auth.jwt_secret (or FOCUSFLOW_JWT_SECRET) is required to serve the API"))
	}

	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Error("failed to close app", "error", err)
		}
	}()

	slog.Info("focusflow api starting", "listen", cfg.Server.Listen, "lock", cfg.Lock.Backend, "pid", os.Getpid())

	server := api.NewServer(application, api.NewAuth(cfg.Auth.JWTSecret), cfg.Server)
	if err := server.Start(ctx); err != nil {
		return err
	}

	slog.Info("focusflow api stopped")
	return nil
}
