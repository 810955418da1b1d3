package database

import (
	"context"

	"github.com/4wadia/focusflow/internal/models"
)

// TaskFilter narrows FindTasks. Zero fields do not filter.
type TaskFilter struct {
	Date      string
	ColumnID  string
	Priority  models.Priority
	ExcludeID string
}

// TaskRepository defines task data access, always scoped to one owner
type TaskRepository interface {
	GetTask(ctx context.Context, ownerID, id string) (*models.Task, error)
	FindTasks(ctx context.Context, ownerID string, filter TaskFilter) ([]*models.Task, error)
	CountTasks(ctx context.Context, ownerID, columnID string) (int, error)
	TaskOrders(ctx context.Context, ownerID, columnID string) ([]int, error)
	InsertTask(ctx context.Context, task *models.Task) error
	WriteTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, ownerID, id string) error
	ShiftTaskOrders(ctx context.Context, ownerID, columnID string, from, to, delta int) error
}

// ColumnRepository defines column data access, always scoped to one owner
type ColumnRepository interface {
	GetColumn(ctx context.Context, ownerID, id string) (*models.Column, error)
	ListColumns(ctx context.Context, ownerID string) ([]*models.Column, error)
	CountColumns(ctx context.Context, ownerID string) (int, error)
	ColumnOrders(ctx context.Context, ownerID string) ([]int, error)
	InsertColumn(ctx context.Context, column *models.Column) error
	WriteColumn(ctx context.Context, column *models.Column) error
	DeleteColumn(ctx context.Context, ownerID, id string) error
	ShiftColumnOrders(ctx context.Context, ownerID string, from, to, delta int) error
}

// Querier is every query available inside or outside a transaction
type Querier interface {
	TaskRepository
	ColumnRepository
}

// DataStore is the unified data access interface used by the services.
type DataStore interface {
	Querier

	// InTx runs fn inside a single transaction. Every write made through
	// the Querier passed to fn commits or rolls back together.
	InTx(ctx context.Context, fn func(Querier) error) error
}
