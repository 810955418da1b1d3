package models

import (
	"slices"
	"time"

	"github.com/4wadia/focusflow/internal/timeslot"
)

// DateLayout is the calendar-day format used for Task.Date.
const DateLayout = "2006-01-02"

// Subtask is a checklist entry on a task. Subtasks do not take part in
// ordering or priority rules.
type Subtask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task represents a single card on an owner's board
type Task struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	ColumnID    string    `json:"columnId"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	DueTime     string    `json:"dueTime,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Priority    Priority  `json:"priority"`
	IsCompleted bool      `json:"isCompleted"`
	Order       int       `json:"order"`
	Subtasks    []Subtask `json:"subtasks"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Slot returns the scheduled interval of the task for overlap checks.
func (t *Task) Slot() timeslot.Slot {
	return timeslot.SlotOf(t.DueTime, t.Duration)
}

// SetPriority assigns p and keeps IsCompleted in step with it.
func (t *Task) SetPriority(p Priority) {
	t.Priority = p
	t.IsCompleted = p == PriorityCompleted
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.Subtasks = slices.Clone(t.Subtasks)
	c.Tags = slices.Clone(t.Tags)
	return &c
}

// ValidDate reports whether s is a calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
