// Package mutation runs owner-scoped writes: one owner at a time, inside one
// transaction, retrying the whole unit on transient storage contention.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/4wadia/focusflow/internal/admission"
	"github.com/4wadia/focusflow/internal/database"
	"github.com/4wadia/focusflow/internal/metrics"
	"github.com/4wadia/focusflow/internal/ownerlock"
)

// DefaultMaxAttempts is used when the configured attempt count is below 1
const DefaultMaxAttempts = 3

const retryBackoff = 20 * time.Millisecond

// Runner serializes mutations per owner and executes each as a transaction
type Runner struct {
	store       database.DataStore
	locker      ownerlock.Locker
	metrics     *metrics.Metrics
	maxAttempts int
	retryable   func(error) bool
}

// NewRunner creates a Runner. A nil metrics disables counting.
func NewRunner(store database.DataStore, locker ownerlock.Locker, m *metrics.Metrics, maxAttempts int) *Runner {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	if m == nil {
		m = metrics.NewMetrics()
	}
	return &Runner{
		store:       store,
		locker:      locker,
		metrics:     m,
		maxAttempts: maxAttempts,
		retryable:   database.IsRetryable,
	}
}

// Run executes fn under the owner's lock inside a transaction. fn must read
// all state it depends on through q, since it may run more than once.
func (r *Runner) Run(ctx context.Context, ownerID, op string, fn func(q database.Querier) error) error {
	defer r.metrics.Begin()()

	unlock, err := r.locker.Lock(ctx, ownerID)
	if err != nil {
		r.metrics.IncMutationsFailed()
		slog.Error("failed to acquire owner lock", "owner", ownerID, "op", op, "error", err)
		return fmt.Errorf("failed to acquire owner lock: %w", err)
	}
	defer func() {
		if err := unlock(); err != nil {
			slog.Error("failed to release owner lock", "owner", ownerID, "op", op, "error", err)
		}
	}()

	for attempt := 1; ; attempt++ {
		err = r.store.InTx(ctx, fn)
		if err == nil || !r.retryable(err) || attempt >= r.maxAttempts {
			break
		}

		r.metrics.IncRetries()
		slog.Warn("retrying mutation after transient storage error",
			"owner", ownerID, "op", op, "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}

	r.record(ownerID, op, err)
	return err
}

func (r *Runner) record(ownerID, op string, err error) {
	var rej *admission.Rejection
	switch {
	case err == nil:
		r.metrics.IncMutations()
	case errors.As(err, &rej):
		if rej.Reason == admission.ReasonDailyLimitReached {
			r.metrics.IncDailyLimitRejects()
		} else {
			r.metrics.IncTimeConflicts()
		}
		slog.Info("high priority admission rejected", "owner", ownerID, "op", op, "reason", rej.Reason)
	case IsExpected(err):
		slog.Debug("mutation refused", "owner", ownerID, "op", op, "error", err)
	default:
		r.metrics.IncMutationsFailed()
		slog.Error("mutation failed", "owner", ownerID, "op", op, "error", err)
	}
}

// Metrics returns the counters the runner records into
func (r *Runner) Metrics() *metrics.Metrics {
	return r.metrics
}
