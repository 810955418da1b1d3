// Package metrics tracks mutation statistics using atomic counters
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics tracks mutation statistics using atomic operations for thread-safety
type Metrics struct {
	Mutations         atomic.Int64
	MutationsFailed   atomic.Int64
	Retries           atomic.Int64
	DailyLimitRejects atomic.Int64
	TimeConflicts     atomic.Int64
	InFlight          atomic.Int32
	StartTime         time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncMutations counts a committed mutation
func (m *Metrics) IncMutations() {
	m.Mutations.Add(1)
}

// IncMutationsFailed counts a mutation that failed for infrastructure reasons
func (m *Metrics) IncMutationsFailed() {
	m.MutationsFailed.Add(1)
}

// IncRetries counts a transaction retried after a transient storage error
func (m *Metrics) IncRetries() {
	m.Retries.Add(1)
}

// IncDailyLimitRejects counts an admission rejected by the daily cap
func (m *Metrics) IncDailyLimitRejects() {
	m.DailyLimitRejects.Add(1)
}

// IncTimeConflicts counts an admission rejected by an overlapping slot
func (m *Metrics) IncTimeConflicts() {
	m.TimeConflicts.Add(1)
}

// Begin marks a mutation as in flight and returns the matching end func
func (m *Metrics) Begin() func() {
	m.InFlight.Add(1)
	return func() { m.InFlight.Add(-1) }
}

// Snapshot represents a point-in-time snapshot of metrics
type Snapshot struct {
	Mutations         int64     `json:"mutations"`
	MutationsFailed   int64     `json:"mutations_failed"`
	Retries           int64     `json:"retries"`
	DailyLimitRejects int64     `json:"daily_limit_rejects"`
	TimeConflicts     int64     `json:"time_conflicts"`
	InFlight          int32     `json:"in_flight"`
	StartTime         time.Time `json:"start_time"`
	Uptime            string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() Snapshot {
	return Snapshot{
		Mutations:         m.Mutations.Load(),
		MutationsFailed:   m.MutationsFailed.Load(),
		Retries:           m.Retries.Load(),
		DailyLimitRejects: m.DailyLimitRejects.Load(),
		TimeConflicts:     m.TimeConflicts.Load(),
		InFlight:          m.InFlight.Load(),
		StartTime:         m.StartTime,
		Uptime:            time.Since(m.StartTime).Round(time.Second).String(),
	}
}
