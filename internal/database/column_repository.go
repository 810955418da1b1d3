package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/4wadia/focusflow/internal/models"
	"github.com/4wadia/focusflow/internal/ordering"
)

const columnColumns = `id, owner_id, title, position, created_at, updated_at`

func scanColumn(row rowScanner) (*models.Column, error) {
	var (
		c                    models.Column
		createdAt, updatedAt string
	)
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Title, &c.Order, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return &c, nil
}

// GetColumn retrieves a column of the owner by ID
func (q *Queries) GetColumn(ctx context.Context, ownerID, id string) (*models.Column, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+columnColumns+` FROM columns WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	column, err := scanColumn(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return column, nil
}

// ListColumns returns the owner's columns in board order
func (q *Queries) ListColumns(ctx context.Context, ownerID string) ([]*models.Column, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+columnColumns+` FROM columns
		 WHERE owner_id = ?
		 ORDER BY position ASC, created_at ASC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := make([]*models.Column, 0)
	for rows.Next() {
		column, err := scanColumn(rows)
		if err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}
	return columns, rows.Err()
}

// CountColumns returns the number of columns the owner has
func (q *Queries) CountColumns(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM columns WHERE owner_id = ?`,
		ownerID,
	).Scan(&n)
	return n, err
}

// ColumnOrders returns every order value held by the owner's columns
func (q *Queries) ColumnOrders(ctx context.Context, ownerID string) ([]int, error) {
	return q.orders(ctx, `SELECT position FROM columns WHERE owner_id = ?`, ownerID)
}

// InsertColumn stores a new column
func (q *Queries) InsertColumn(ctx context.Context, c *models.Column) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO columns (`+columnColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.OwnerID, c.Title, c.Order, formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	return err
}

// WriteColumn overwrites the title and position of an existing column
func (q *Queries) WriteColumn(ctx context.Context, c *models.Column) error {
	result, err := q.db.ExecContext(ctx,
		`UPDATE columns SET title = ?, position = ?, updated_at = ?
		 WHERE owner_id = ? AND id = ?`,
		c.Title, c.Order, formatTime(c.UpdatedAt), c.OwnerID, c.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// DeleteColumn removes a column together with its tasks
func (q *Queries) DeleteColumn(ctx context.Context, ownerID, id string) error {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE owner_id = ? AND column_id = ?`,
		ownerID, id,
	); err != nil {
		return err
	}
	result, err := q.db.ExecContext(ctx,
		`DELETE FROM columns WHERE owner_id = ? AND id = ?`,
		ownerID, id,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// ShiftColumnOrders adds delta to every column position of the owner inside
// [from, to]; to == ordering.Unbounded leaves the range open ended
func (q *Queries) ShiftColumnOrders(ctx context.Context, ownerID string, from, to, delta int) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE columns SET position = position + ?
		 WHERE owner_id = ? AND position >= ? AND (? = ? OR position <= ?)`,
		delta, ownerID, from, to, ordering.Unbounded, to,
	)
	return err
}
