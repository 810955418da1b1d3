package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/4wadia/focusflow/internal/models"
	"github.com/4wadia/focusflow/internal/ordering"
)

const taskColumns = `id, owner_id, column_id, title, date, due_time, duration,
	priority, is_completed, position, subtasks, tags, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		t                    models.Task
		priority             string
		subtasks, tags       string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.ColumnID, &t.Title, &t.Date, &t.DueTime, &t.Duration,
		&priority, &t.IsCompleted, &t.Order, &subtasks, &tags, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Priority = models.Priority(priority)
	if t.Subtasks, err = decodeJSON[models.Subtask](subtasks); err != nil {
		return nil, fmt.Errorf("failed to decode subtasks of task %s: %w", t.ID, err)
	}
	if t.Tags, err = decodeJSON[string](tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags of task %s: %w", t.ID, err)
	}
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return &t, nil
}

// GetTask retrieves a task of the owner by ID
func (q *Queries) GetTask(ctx context.Context, ownerID, id string) (*models.Task, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// FindTasks lists the owner's tasks matching filter, ordered by column
// position and then newest first
func (q *Queries) FindTasks(ctx context.Context, ownerID string, filter TaskFilter) ([]*models.Task, error) {
	var (
		where = []string{"owner_id = ?"}
		args  = []any{ownerID}
	)
	if filter.Date != "" {
		where = append(where, "date = ?")
		args = append(args, filter.Date)
	}
	if filter.ColumnID != "" {
		where = append(where, "column_id = ?")
		args = append(args, filter.ColumnID)
	}
	if filter.Priority != "" {
		where = append(where, "priority = ?")
		args = append(args, string(filter.Priority))
	}
	if filter.ExcludeID != "" {
		where = append(where, "id <> ?")
		args = append(args, filter.ExcludeID)
	}

	rows, err := q.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE `+strings.Join(where, " AND ")+`
		 ORDER BY position ASC, created_at DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// CountTasks returns the number of tasks in a column
func (q *Queries) CountTasks(ctx context.Context, ownerID, columnID string) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE owner_id = ? AND column_id = ?`,
		ownerID, columnID,
	).Scan(&n)
	return n, err
}

// TaskOrders returns every order value held in a column
func (q *Queries) TaskOrders(ctx context.Context, ownerID, columnID string) ([]int, error) {
	return q.orders(ctx,
		`SELECT position FROM tasks WHERE owner_id = ? AND column_id = ?`,
		ownerID, columnID,
	)
}

// InsertTask stores a new task
func (q *Queries) InsertTask(ctx context.Context, t *models.Task) error {
	subtasks, tags, err := encodeTaskLists(t)
	if err != nil {
		return err
	}
	_, err = q.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, t.ColumnID, t.Title, t.Date, t.DueTime, t.Duration,
		string(t.Priority), t.IsCompleted, t.Order, subtasks, tags,
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	return err
}

// WriteTask overwrites every mutable field of an existing task
func (q *Queries) WriteTask(ctx context.Context, t *models.Task) error {
	subtasks, tags, err := encodeTaskLists(t)
	if err != nil {
		return err
	}
	result, err := q.db.ExecContext(ctx,
		`UPDATE tasks SET
			column_id = ?, title = ?, date = ?, due_time = ?, duration = ?,
			priority = ?, is_completed = ?, position = ?, subtasks = ?, tags = ?,
			updated_at = ?
		 WHERE owner_id = ? AND id = ?`,
		t.ColumnID, t.Title, t.Date, t.DueTime, t.Duration,
		string(t.Priority), t.IsCompleted, t.Order, subtasks, tags,
		formatTime(t.UpdatedAt),
		t.OwnerID, t.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteTask removes a task
func (q *Queries) DeleteTask(ctx context.Context, ownerID, id string) error {
	result, err := q.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// ShiftTaskOrders adds delta to every task position of a column inside
// [from, to]; to == ordering.Unbounded leaves the range open ended
func (q *Queries) ShiftTaskOrders(ctx context.Context, ownerID, columnID string, from, to, delta int) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE tasks SET position = position + ?
		 WHERE owner_id = ? AND column_id = ?
		   AND position >= ? AND (? = ? OR position <= ?)`,
		delta, ownerID, columnID, from, to, ordering.Unbounded, to,
	)
	return err
}

func encodeTaskLists(t *models.Task) (string, string, error) {
	subtasks, err := encodeJSON(t.Subtasks)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode subtasks: %w", err)
	}
	tags, err := encodeJSON(t.Tags)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return subtasks, tags, nil
}

func (q *Queries) orders(ctx context.Context, query string, args ...any) ([]int, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var o int
		if err := rows.Scan(&o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
