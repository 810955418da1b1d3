// Package ordering keeps a dense, zero-based order sequence within a scope
// (the tasks of one column, or the columns of one owner).
//
// Planning is pure: every transition produces the list of range shifts that
// must be applied, together with the target placement, in one transaction.
// Apply runs those shifts against any storage that implements Shifter.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Unbounded marks a Shift range that extends to the end of the scope.
const Unbounded = -1

var (
	// ErrNegativeOrder is returned when a caller asks for a position below zero
	ErrNegativeOrder = errors.New("order must be >= 0")

	// ErrNotDense indicates the order values of a scope have gaps or duplicates
	ErrNotDense = errors.New("order sequence is not dense")
)

// Shift adds Delta to every order in the inclusive range [From, To] of Scope.
// To == Unbounded means every order >= From.
type Shift struct {
	Scope string
	From  int
	To    int
	Delta int
}

// Contains reports whether order falls inside the shift range.
func (s Shift) Contains(order int) bool {
	if order < s.From {
		return false
	}
	return s.To == Unbounded || order <= s.To
}

// Placement is a position within a scope.
type Placement struct {
	Scope string
	Order int
}

// Plan is the outcome of a transition: the shifts to apply to the other
// members of the affected scopes, and where the subject ends up.
type Plan struct {
	Shifts []Shift
	Target Placement
}

// PlanInsert appends a new member to a scope currently holding size members.
// No other member moves.
func PlanInsert(scope string, size int) Plan {
	return Plan{Target: Placement{Scope: scope, Order: size}}
}

// PlanDelete closes the gap left by removing the member at order.
func PlanDelete(scope string, order int) []Shift {
	return []Shift{{Scope: scope, From: order + 1, To: Unbounded, Delta: -1}}
}

// PlanMove computes the shifts for moving a member from one placement to
// another. The subject itself is never inside a shifted range, so the shifts
// can be applied before or after the subject is written.
//
// The target order must already be valid for the destination, see ClampTarget.
func PlanMove(from, to Placement) Plan {
	plan := Plan{Target: to}

	if from.Scope != to.Scope {
		plan.Shifts = []Shift{
			// close the gap in the source scope
			{Scope: from.Scope, From: from.Order + 1, To: Unbounded, Delta: -1},
			// open a slot in the destination scope
			{Scope: to.Scope, From: to.Order, To: Unbounded, Delta: 1},
		}
		return plan
	}

	switch {
	case from.Order < to.Order:
		plan.Shifts = []Shift{{Scope: from.Scope, From: from.Order + 1, To: to.Order, Delta: -1}}
	case from.Order > to.Order:
		plan.Shifts = []Shift{{Scope: from.Scope, From: to.Order, To: from.Order - 1, Delta: 1}}
	}

	return plan
}

// ClampTarget validates a requested order against a destination that holds
// size members once the subject has been removed from it. Orders past the end
// are clamped to an append; negative orders are rejected.
func ClampTarget(order, size int) (int, error) {
	if order < 0 {
		return 0, ErrNegativeOrder
	}
	if order > size {
		return size, nil
	}
	return order, nil
}

// Shifter applies a bulk order delta to a range of a scope.
type Shifter interface {
	ShiftOrders(ctx context.Context, scope string, from, to, delta int) error
}

// Apply runs every shift in order, stopping at the first failure. Callers run
// it inside the same transaction as the subject's own write.
func Apply(ctx context.Context, s Shifter, shifts []Shift) error {
	for _, sh := range shifts {
		if sh.Delta == 0 {
			continue
		}
		if err := s.ShiftOrders(ctx, sh.Scope, sh.From, sh.To, sh.Delta); err != nil {
			return fmt.Errorf("failed to shift orders of %s: %w", sh.Scope, err)
		}
	}
	return nil
}

// IsDense reports whether orders is exactly {0, 1, ..., n-1} in any order.
func IsDense(orders []int) bool {
	sorted := slices.Clone(orders)
	slices.Sort(sorted)
	for i, o := range sorted {
		if o != i {
			return false
		}
	}
	return true
}
