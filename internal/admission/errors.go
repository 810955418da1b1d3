package admission

import "errors"

// Reason identifies which admission rule rejected a candidate
type Reason string

const (
	ReasonDailyLimitReached Reason = "DAILY_LIMIT_REACHED"
	ReasonTimeConflict      Reason = "TIME_CONFLICT"
)

var (
	ErrDailyLimitReached = errors.New("daily high priority limit reached")
	ErrTimeConflict      = errors.New("high priority time conflict")
)

// Rejection is returned when a candidate may not hold High priority.
// Message is meant to be shown to the user verbatim.
type Rejection struct {
	Reason  Reason
	Message string
	// ConflictID is the overlapping task for ReasonTimeConflict
	ConflictID string
}

func (r *Rejection) Error() string {
	return r.Message
}

// Is lets errors.Is match a Rejection against ErrDailyLimitReached or
// ErrTimeConflict.
func (r *Rejection) Is(target error) bool {
	switch target {
	case ErrDailyLimitReached:
		return r.Reason == ReasonDailyLimitReached
	case ErrTimeConflict:
		return r.Reason == ReasonTimeConflict
	}
	return false
}
