// Package column manages an owner's board columns. Columns keep their own
// dense order among the owner's columns; deleting one removes its tasks.
package column

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/4wadia/focusflow/internal/database"
	"github.com/4wadia/focusflow/internal/models"
	"github.com/4wadia/focusflow/internal/ordering"
	"github.com/4wadia/focusflow/internal/services/mutation"
	"github.com/google/uuid"
)

const maxTitleLength = 50

// columnScope is the single ordering scope of an owner's columns
const columnScope = "columns"

// Service defines all column-related business operations
type Service interface {
	// Read operations
	ListColumns(ctx context.Context, ownerID string) ([]*models.Column, error)
	GetBoard(ctx context.Context, ownerID, date string) ([]*models.ColumnWithTasks, error)
	GetColumn(ctx context.Context, ownerID, columnID string) (*models.Column, error)

	// Write operations
	CreateColumn(ctx context.Context, req CreateColumnRequest) (*models.Column, error)
	UpdateColumn(ctx context.Context, req UpdateColumnRequest) (*models.Column, error)
	DeleteColumn(ctx context.Context, ownerID, columnID string) error
}

// CreateColumnRequest encapsulates data for creating a column
type CreateColumnRequest struct {
	OwnerID string
	Title   string
}

// UpdateColumnRequest renames and/or reorders a column.
// Fields with pointers are optional - nil means don't update
type UpdateColumnRequest struct {
	OwnerID  string
	ColumnID string
	Title    *string
	Order    *int
}

// service implements Service interface
type service struct {
	repo   database.DataStore
	runner *mutation.Runner
	now    func() time.Time
}

// NewService creates a new column service
func NewService(repo database.DataStore, runner *mutation.Runner) Service {
	return &service{
		repo:   repo,
		runner: runner,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ListColumns retrieves the owner's columns in board order
func (s *service) ListColumns(ctx context.Context, ownerID string) ([]*models.Column, error) {
	columns, err := s.repo.ListColumns(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	return columns, nil
}

// GetBoard returns every column with its tasks, optionally limited to one date
func (s *service) GetBoard(ctx context.Context, ownerID, date string) ([]*models.ColumnWithTasks, error) {
	if date != "" && !models.ValidDate(date) {
		return nil, ErrInvalidDate
	}

	columns, err := s.ListColumns(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.FindTasks(ctx, ownerID, database.TaskFilter{Date: date})
	if err != nil {
		return nil, fmt.Errorf("failed to load board tasks: %w", err)
	}

	byColumn := make(map[string][]*models.Task, len(columns))
	for _, t := range tasks {
		byColumn[t.ColumnID] = append(byColumn[t.ColumnID], t)
	}

	board := make([]*models.ColumnWithTasks, 0, len(columns))
	for _, c := range columns {
		columnTasks := byColumn[c.ID]
		if columnTasks == nil {
			columnTasks = []*models.Task{}
		}
		board = append(board, &models.ColumnWithTasks{Column: *c, Tasks: columnTasks})
	}
	return board, nil
}

// GetColumn retrieves a specific column
func (s *service) GetColumn(ctx context.Context, ownerID, columnID string) (*models.Column, error) {
	column, err := s.repo.GetColumn(ctx, ownerID, columnID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return column, nil
}

// CreateColumn appends a new column to the owner's board
func (s *service) CreateColumn(ctx context.Context, req CreateColumnRequest) (*models.Column, error) {
	title, err := normalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}

	now := s.now()
	column := &models.Column{
		ID:        uuid.NewString(),
		OwnerID:   req.OwnerID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.runner.Run(ctx, req.OwnerID, "column.create", func(q database.Querier) error {
		size, err := q.CountColumns(ctx, req.OwnerID)
		if err != nil {
			return fmt.Errorf("failed to count columns: %w", err)
		}
		column.Order = ordering.PlanInsert(columnScope, size).Target.Order

		if err := q.InsertColumn(ctx, column); err != nil {
			return fmt.Errorf("failed to create column: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return column, nil
}

// UpdateColumn renames a column and/or moves it to a new board position
func (s *service) UpdateColumn(ctx context.Context, req UpdateColumnRequest) (*models.Column, error) {
	if req.Title == nil && req.Order == nil {
		return nil, ErrNoChanges
	}
	var title string
	if req.Title != nil {
		var err error
		if title, err = normalizeTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Order != nil && *req.Order < 0 {
		return nil, ErrInvalidOrder
	}

	var updated *models.Column
	err := s.runner.Run(ctx, req.OwnerID, "column.update", func(q database.Querier) error {
		column, err := q.GetColumn(ctx, req.OwnerID, req.ColumnID)
		if err != nil {
			return mapNotFound(err)
		}

		if req.Title != nil {
			column.Title = title
		}

		if req.Order != nil {
			size, err := q.CountColumns(ctx, req.OwnerID)
			if err != nil {
				return fmt.Errorf("failed to count columns: %w", err)
			}
			target, err := ordering.ClampTarget(*req.Order, size-1)
			if err != nil {
				return mutation.Expected(ErrInvalidOrder)
			}

			plan := ordering.PlanMove(
				ordering.Placement{Scope: columnScope, Order: column.Order},
				ordering.Placement{Scope: columnScope, Order: target},
			)
			if err := ordering.Apply(ctx, database.ColumnShifter(q, req.OwnerID), plan.Shifts); err != nil {
				return err
			}
			column.Order = plan.Target.Order
		}

		column.UpdatedAt = s.now()
		if err := q.WriteColumn(ctx, column); err != nil {
			return fmt.Errorf("failed to update column: %w", err)
		}
		if err := verifyDense(ctx, q, req.OwnerID); err != nil {
			return err
		}
		updated = column
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteColumn deletes a column together with all of its tasks
func (s *service) DeleteColumn(ctx context.Context, ownerID, columnID string) error {
	return s.runner.Run(ctx, ownerID, "column.delete", func(q database.Querier) error {
		column, err := q.GetColumn(ctx, ownerID, columnID)
		if err != nil {
			return mapNotFound(err)
		}

		if err := q.DeleteColumn(ctx, ownerID, columnID); err != nil {
			return fmt.Errorf("failed to delete column: %w", err)
		}
		shifts := ordering.PlanDelete(columnScope, column.Order)
		if err := ordering.Apply(ctx, database.ColumnShifter(q, ownerID), shifts); err != nil {
			return err
		}
		return verifyDense(ctx, q, ownerID)
	})
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

func verifyDense(ctx context.Context, q database.Querier, ownerID string) error {
	orders, err := q.ColumnOrders(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to read column orders: %w", err)
	}
	if !ordering.IsDense(orders) {
		return fmt.Errorf("columns of %s: %w", ownerID, ordering.ErrNotDense)
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return mutation.Expected(ErrColumnNotFound)
	}
	return err
}
