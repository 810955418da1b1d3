// Package api exposes the board over a JSON REST API. Every /api route
// requires an HS256 bearer token whose subject is the board owner.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/4wadia/focusflow/internal/app"
	"github.com/4wadia/focusflow/internal/config"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP front end of an App
type Server struct {
	echo *echo.Echo
	addr string
}

// NewServer builds an echo instance with CORS, panic recovery and every
// route registered.
func NewServer(a *app.App, auth Authenticator, cfg config.ServerConfig) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handleError

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	Register(e, a, auth)
	return &Server{echo: e, addr: cfg.Listen}
}

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, a *app.App, auth Authenticator) {
	e.GET("/", healthz)

	g := e.Group("/api", RequireAuth(auth))

	tasks := &taskHandlers{svc: a.TaskService}
	g.GET("/tasks", tasks.list)
	g.POST("/tasks", tasks.create)
	g.GET("/tasks/:id", tasks.get)
	g.PUT("/tasks/:id", tasks.update)
	g.DELETE("/tasks/:id", tasks.delete)
	g.PATCH("/tasks/:id/toggle", tasks.toggle)
	g.PATCH("/tasks/:id/move", tasks.move)

	columns := &columnHandlers{svc: a.ColumnService}
	g.GET("/columns", columns.list)
	g.POST("/columns", columns.create)
	g.GET("/columns/:id", columns.get)
	g.PUT("/columns/:id", columns.update)
	g.DELETE("/columns/:id", columns.delete)

	g.GET("/metrics", func(c echo.Context) error {
		return c.JSON(http.StatusOK, a.Metrics().GetSnapshot())
	})
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("api listening", "addr", s.addr)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.echo.Start(s.addr)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	slog.Info("api shutting down")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down api server: %w", err)
	}
	return nil
}

func healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "focusflow"})
}
