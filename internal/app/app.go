package app

import (
	"database/sql"
	"errors"

	"github.com/4wadia/focusflow/internal/database"
	"github.com/4wadia/focusflow/internal/metrics"
	"github.com/4wadia/focusflow/internal/ownerlock"
	columnservice "github.com/4wadia/focusflow/internal/services/column"
	"github.com/4wadia/focusflow/internal/services/mutation"
	taskservice "github.com/4wadia/focusflow/internal/services/task"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	db      *sql.DB
	repo    database.DataStore
	metrics *metrics.Metrics
	closers []func() error

	// Service layer (business logic)
	TaskService   taskservice.Service
	ColumnService columnservice.Service
}

// New creates a new App with all services initialized.
// Without options, mutations are serialized with an in-process owner lock.
func New(db *sql.DB, opts ...Option) *App {
	cfg := &appConfig{maxAttempts: mutation.DefaultMaxAttempts}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.locker == nil {
		cfg.locker = ownerlock.NewMemory()
	}
	if cfg.metrics == nil {
		cfg.metrics = metrics.NewMetrics()
	}

	repo := database.NewStore(db)
	runner := mutation.NewRunner(repo, cfg.locker, cfg.metrics, cfg.maxAttempts)

	return &App{
		db:            db,
		repo:          repo,
		metrics:       cfg.metrics,
		closers:       cfg.closers,
		TaskService:   taskservice.NewService(repo, runner),
		ColumnService: columnservice.NewService(repo, runner),
	}
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Metrics returns the mutation counters shared by all services.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// Close releases resources registered with WithCloser and then the database.
func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
