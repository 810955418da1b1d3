package app

import (
	"github.com/4wadia/focusflow/internal/metrics"
	"github.com/4wadia/focusflow/internal/ownerlock"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	locker      ownerlock.Locker
	metrics     *metrics.Metrics
	maxAttempts int
	closers     []func() error
}

// WithLocker sets the per-owner lock used to serialize mutations
func WithLocker(l ownerlock.Locker) Option {
	return func(cfg *appConfig) {
		cfg.locker = l
	}
}

// WithMetrics shares an existing metrics instance with the services
func WithMetrics(m *metrics.Metrics) Option {
	return func(cfg *appConfig) {
		cfg.metrics = m
	}
}

// WithMaxAttempts bounds how often a mutation is retried on transient errors
func WithMaxAttempts(n int) Option {
	return func(cfg *appConfig) {
		cfg.maxAttempts = n
	}
}

// WithCloser registers a cleanup func run by App.Close, e.g. a Redis client
func WithCloser(fn func() error) Option {
	return func(cfg *appConfig) {
		cfg.closers = append(cfg.closers, fn)
	}
}
