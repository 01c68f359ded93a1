// Package metrics provides application-level metrics collection.
// This is a lightweight metrics foundation using atomic counters.
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics holds application metrics using atomic counters for thread safety.
type Metrics struct {
	// API metrics
	apiCallsTotal   atomic.Int64
	apiErrorsTotal  atomic.Int64
	apiLatencyNanos atomic.Int64

	// Confirmation pipeline metrics
	confirmationsTotal  atomic.Int64
	confirmationsFailed atomic.Int64
	balanceCreates      atomic.Int64
}

// Global is the global metrics instance.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordAPICall records an API call with its duration and success status.
func (m *Metrics) RecordAPICall(duration time.Duration, err error) {
	m.apiCallsTotal.Add(1)
	m.apiLatencyNanos.Add(duration.Nanoseconds())

	if err != nil {
		m.apiErrorsTotal.Add(1)
	}
}

// RecordConfirmation records one confirmation attempt.
func (m *Metrics) RecordConfirmation(err error) {
	m.confirmationsTotal.Add(1)
	if err != nil {
		m.confirmationsFailed.Add(1)
	}
}

// RecordBalanceCreate records a lazily created balance.
func (m *Metrics) RecordBalanceCreate() {
	m.balanceCreates.Add(1)
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	APICallsTotal       int64
	APIErrorsTotal      int64
	APILatencyNanos     int64
	ConfirmationsTotal  int64
	ConfirmationsFailed int64
	BalanceCreates      int64
}

// GetSnapshot returns a consistent snapshot of all metrics.
func (m *Metrics) GetSnapshot() Snapshot {
	return Snapshot{
		APICallsTotal:       m.apiCallsTotal.Load(),
		APIErrorsTotal:      m.apiErrorsTotal.Load(),
		APILatencyNanos:     m.apiLatencyNanos.Load(),
		ConfirmationsTotal:  m.confirmationsTotal.Load(),
		ConfirmationsFailed: m.confirmationsFailed.Load(),
		BalanceCreates:      m.balanceCreates.Load(),
	}
}

// Reset zeroes all counters. Intended for tests.
func (m *Metrics) Reset() {
	m.apiCallsTotal.Store(0)
	m.apiErrorsTotal.Store(0)
	m.apiLatencyNanos.Store(0)
	m.confirmationsTotal.Store(0)
	m.confirmationsFailed.Store(0)
	m.balanceCreates.Store(0)
}
