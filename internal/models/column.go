package models

import "time"

// Column is a named bucket of tasks owned by a user, e.g. "Work" or "Errands".
// Order ranks the column among the owner's columns.
type Column struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ColumnWithTasks is a column together with its tasks in display order
type ColumnWithTasks struct {
	Column
	Tasks []*Task `json:"tasks"`
}
