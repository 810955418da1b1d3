// Package admission decides whether a task may hold High priority on a given
// day. An owner gets at most DailyHighPriorityLimit High tasks per date, and
// the scheduled slots of those tasks must not overlap.
package admission

import (
	"context"
	"fmt"

	"github.com/4wadia/focusflow/internal/database"
	"github.com/4wadia/focusflow/internal/models"
	"github.com/4wadia/focusflow/internal/timeslot"
)

// DailyHighPriorityLimit is the number of High tasks an owner may have per date.
const DailyHighPriorityLimit = 5

// TaskFinder is the read access the controller needs. Passing the querier of
// the current transaction makes the check see the same snapshot as the write.
type TaskFinder interface {
	FindTasks(ctx context.Context, ownerID string, filter database.TaskFilter) ([]*models.Task, error)
}

// Candidate is the proposed state of a task that wants High priority.
type Candidate struct {
	Date     string
	DueTime  string
	Duration string
	// ExcludeID is the task being edited, so it does not compete with its
	// own stored state. Empty for new tasks.
	ExcludeID string
}

// CandidateOf builds the admission candidate for a task's proposed state.
func CandidateOf(t *models.Task) Candidate {
	return Candidate{Date: t.Date, DueTime: t.DueTime, Duration: t.Duration, ExcludeID: t.ID}
}

// AdmitHighPriority returns nil when the candidate may be stored as High, a
// *Rejection when a rule forbids it, or a wrapped storage error.
func AdmitHighPriority(ctx context.Context, finder TaskFinder, ownerID string, c Candidate) error {
	existing, err := finder.FindTasks(ctx, ownerID, database.TaskFilter{
		Date:      c.Date,
		Priority:  models.PriorityHigh,
		ExcludeID: c.ExcludeID,
	})
	if err != nil {
		return fmt.Errorf("failed to load high priority tasks: %w", err)
	}

	if len(existing) >= DailyHighPriorityLimit {
		return &Rejection{
			Reason:  ReasonDailyLimitReached,
			Message: fmt.Sprintf("Daily Limit Reached: You can only have %d high priority tasks per day.", DailyHighPriorityLimit),
		}
	}

	slot := timeslot.SlotOf(c.DueTime, c.Duration)
	for _, other := range existing {
		if slot.Overlaps(other.Slot()) {
			return &Rejection{
				Reason:     ReasonTimeConflict,
				Message:    "Time Conflict: Another High priority task is scheduled during this time.",
				ConflictID: other.ID,
			}
		}
	}

	return nil
}
