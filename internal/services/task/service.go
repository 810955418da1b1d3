// Package task implements task mutations on an owner's board: creation,
// edits, completion toggles, moves and deletion. Every write runs under the
// owner's lock in a single transaction that re-checks High priority
// admission and keeps column orders dense.
package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/4wadia/focusflow/internal/admission"
	"github.com/4wadia/focusflow/internal/database"
	"github.com/4wadia/focusflow/internal/models"
	"github.com/4wadia/focusflow/internal/ordering"
	"github.com/4wadia/focusflow/internal/services/mutation"
	"github.com/google/uuid"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetTask(ctx context.Context, ownerID, taskID string) (*models.Task, error)
	ListTasks(ctx context.Context, ownerID string, filter ListFilter) ([]*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	ToggleTask(ctx context.Context, ownerID, taskID string) (*models.Task, error)
	MoveTask(ctx context.Context, req MoveTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
}

// ListFilter narrows ListTasks. Empty fields do not filter.
type ListFilter struct {
	Date     string
	ColumnID string
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	OwnerID  string
	ColumnID string
	Title    string
	Date     string // Optional: empty means today
	DueTime  string
	Duration string
	Priority models.Priority // Optional: empty means Medium
	Subtasks []models.Subtask
	Tags     []string
}

// TaskChanges holds optional field edits.
// Fields with pointers are optional - nil means don't update
type TaskChanges struct {
	Title    *string
	Date     *string
	DueTime  *string
	Duration *string
	Priority *models.Priority
	Subtasks *[]models.Subtask
	Tags     *[]string

	// Completed is consulted only when Priority is nil. True completes the
	// task; false reopens a completed task to Medium and leaves an open one
	// alone. It is resolved against the task read inside the mutation.
	Completed *bool
}

// UpdateTaskRequest edits a task in place without changing its column or order
type UpdateTaskRequest struct {
	OwnerID string
	TaskID  string
	TaskChanges
}

// MoveTaskRequest places a task at Order within ColumnID, which may be its
// current column. An empty ColumnID keeps the task in whatever column it is
// in when the move runs. Orders past the end of the column append.
type MoveTaskRequest struct {
	OwnerID  string
	TaskID   string
	ColumnID string
	Order    int
	TaskChanges
}

// service implements Service interface
type service struct {
	repo   database.DataStore
	runner *mutation.Runner
	now    func() time.Time
}

// NewService creates a new task service
func NewService(repo database.DataStore, runner *mutation.Runner) Service {
	return &service{
		repo:   repo,
		runner: runner,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// GetTask retrieves a single task of the owner
func (s *service) GetTask(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	task, err := s.repo.GetTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, mapNotFound(err, ErrTaskNotFound)
	}
	return task, nil
}

// ListTasks returns the owner's tasks ordered by position, newest first on ties
func (s *service) ListTasks(ctx context.Context, ownerID string, filter ListFilter) ([]*models.Task, error) {
	if filter.Date != "" {
		if err := validateDate(filter.Date); err != nil {
			return nil, err
		}
	}
	tasks, err := s.repo.FindTasks(ctx, ownerID, database.TaskFilter{
		Date:     filter.Date,
		ColumnID: filter.ColumnID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask appends a new task to the end of its column
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	task, err := s.newTask(req)
	if err != nil {
		return nil, err
	}

	err = s.runner.Run(ctx, req.OwnerID, "task.create", func(q database.Querier) error {
		if _, err := q.GetColumn(ctx, req.OwnerID, task.ColumnID); err != nil {
			return mapNotFound(err, ErrColumnNotFound)
		}

		if task.Priority == models.PriorityHigh {
			if err := admission.AdmitHighPriority(ctx, q, req.OwnerID, admission.CandidateOf(task)); err != nil {
				return err
			}
		}

		size, err := q.CountTasks(ctx, req.OwnerID, task.ColumnID)
		if err != nil {
			return fmt.Errorf("failed to count column tasks: %w", err)
		}
		task.Order = ordering.PlanInsert(task.ColumnID, size).Target.Order

		if err := q.InsertTask(ctx, task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask edits a task; raising it to, or keeping it at, High priority
// re-runs admission against the effective date
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	if err := req.normalize(); err != nil {
		return nil, err
	}

	var updated *models.Task
	err := s.runner.Run(ctx, req.OwnerID, "task.update", func(q database.Querier) error {
		current, err := q.GetTask(ctx, req.OwnerID, req.TaskID)
		if err != nil {
			return mapNotFound(err, ErrTaskNotFound)
		}

		next := current.Clone()
		req.apply(next)
		if next.Priority == models.PriorityHigh {
			if err := admission.AdmitHighPriority(ctx, q, req.OwnerID, admission.CandidateOf(next)); err != nil {
				return err
			}
		}

		next.UpdatedAt = s.now()
		if err := q.WriteTask(ctx, next); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ToggleTask flips completion. Completing forces Completed; reopening always
// lands on Medium. Order is left untouched.
func (s *service) ToggleTask(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	var toggled *models.Task
	err := s.runner.Run(ctx, ownerID, "task.toggle", func(q database.Querier) error {
		task, err := q.GetTask(ctx, ownerID, taskID)
		if err != nil {
			return mapNotFound(err, ErrTaskNotFound)
		}

		if task.IsCompleted {
			task.SetPriority(models.PriorityMedium)
		} else {
			task.SetPriority(models.PriorityCompleted)
		}

		task.UpdatedAt = s.now()
		if err := q.WriteTask(ctx, task); err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}
		toggled = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

// MoveTask repositions a task within or across columns, persisting any
// accompanying field edits in the same transaction
func (s *service) MoveTask(ctx context.Context, req MoveTaskRequest) (*models.Task, error) {
	if req.Order < 0 {
		return nil, ErrInvalidOrder
	}
	if err := req.normalize(); err != nil {
		return nil, err
	}

	var moved *models.Task
	err := s.runner.Run(ctx, req.OwnerID, "task.move", func(q database.Querier) error {
		current, err := q.GetTask(ctx, req.OwnerID, req.TaskID)
		if err != nil {
			return mapNotFound(err, ErrTaskNotFound)
		}

		columnID := req.ColumnID
		if columnID == "" {
			columnID = current.ColumnID
		} else if _, err := q.GetColumn(ctx, req.OwnerID, columnID); err != nil {
			return mapNotFound(err, ErrColumnNotFound)
		}

		next := current.Clone()
		req.apply(next)
		if next.Priority == models.PriorityHigh {
			if err := admission.AdmitHighPriority(ctx, q, req.OwnerID, admission.CandidateOf(next)); err != nil {
				return err
			}
		}

		size, err := q.CountTasks(ctx, req.OwnerID, columnID)
		if err != nil {
			return fmt.Errorf("failed to count column tasks: %w", err)
		}
		if columnID == current.ColumnID {
			size--
		}
		target, err := ordering.ClampTarget(req.Order, size)
		if err != nil {
			return mutation.Expected(ErrInvalidOrder)
		}

		plan := ordering.PlanMove(
			ordering.Placement{Scope: current.ColumnID, Order: current.Order},
			ordering.Placement{Scope: columnID, Order: target},
		)
		if err := ordering.Apply(ctx, database.TaskShifter(q, req.OwnerID), plan.Shifts); err != nil {
			return err
		}

		next.ColumnID = plan.Target.Scope
		next.Order = plan.Target.Order
		next.UpdatedAt = s.now()
		if err := q.WriteTask(ctx, next); err != nil {
			return fmt.Errorf("failed to move task: %w", err)
		}

		if err := verifyDense(ctx, q, req.OwnerID, current.ColumnID, next.ColumnID); err != nil {
			return err
		}
		moved = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// DeleteTask removes a task and closes the gap it leaves in its column
func (s *service) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	return s.runner.Run(ctx, ownerID, "task.delete", func(q database.Querier) error {
		task, err := q.GetTask(ctx, ownerID, taskID)
		if err != nil {
			return mapNotFound(err, ErrTaskNotFound)
		}

		if err := q.DeleteTask(ctx, ownerID, taskID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		shifts := ordering.PlanDelete(task.ColumnID, task.Order)
		if err := ordering.Apply(ctx, database.TaskShifter(q, ownerID), shifts); err != nil {
			return err
		}
		return verifyDense(ctx, q, ownerID, task.ColumnID)
	})
}

// newTask validates a create request and builds the task to insert
func (s *service) newTask(req CreateTaskRequest) (*models.Task, error) {
	if strings.TrimSpace(req.ColumnID) == "" {
		return nil, ErrMissingColumn
	}

	title, err := normalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}

	now := s.now()
	date := req.Date
	if date == "" {
		date = now.Local().Format(models.DateLayout)
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = models.DefaultPriority
	}
	if err := validatePriority(priority); err != nil {
		return nil, err
	}

	tags, err := normalizeTags(req.Tags)
	if err != nil {
		return nil, err
	}
	subtasks, err := normalizeSubtasks(req.Subtasks)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:        uuid.NewString(),
		OwnerID:   req.OwnerID,
		ColumnID:  req.ColumnID,
		Title:     title,
		Date:      date,
		DueTime:   strings.TrimSpace(req.DueTime),
		Duration:  strings.TrimSpace(req.Duration),
		Subtasks:  subtasks,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	task.SetPriority(priority)
	return task, nil
}

// verifyDense aborts the transaction if any touched column lost density
func verifyDense(ctx context.Context, q database.Querier, ownerID string, columnIDs ...string) error {
	for _, columnID := range columnIDs {
		orders, err := q.TaskOrders(ctx, ownerID, columnID)
		if err != nil {
			return fmt.Errorf("failed to read column orders: %w", err)
		}
		if !ordering.IsDense(orders) {
			return fmt.Errorf("column %s: %w", columnID, ordering.ErrNotDense)
		}
	}
	return nil
}

// mapNotFound converts a storage miss into the service's sentinel, marked as
// an expected refusal
func mapNotFound(err, notFound error) error {
	if errors.Is(err, database.ErrNotFound) {
		return mutation.Expected(notFound)
	}
	return err
}
