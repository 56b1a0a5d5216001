// Package metrics provides application-level metrics collection.
// This is a lightweight metrics foundation using atomic counters.
// For production observability, consider integrating with Prometheus or similar.
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics holds application metrics using atomic counters for thread safety.
type Metrics struct {
	// Node client metrics
	nodeCallsTotal  atomic.Int64
	nodeErrorsTotal atomic.Int64
	nodeLatencyNano atomic.Int64

	// Submission metrics
	submissionsTotal    atomic.Int64
	submissionsRejected atomic.Int64

	// Confirmation metrics
	confirmationsTotal   atomic.Int64
	confirmationTimeouts atomic.Int64

	// decimalFallbacks counts asset-precision lookups that failed and fell
	// back to the configured default. A rising count means amounts may be
	// normalized with the wrong precision.
	decimalFallbacks atomic.Int64
}

// Global is the global metrics instance.
// Use this for recording metrics throughout the application.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordNodeCall records a ledger node call with its duration and outcome.
func (m *Metrics) RecordNodeCall(duration time.Duration, err error) {
	m.nodeCallsTotal.Add(1)
	m.nodeLatencyNano.Add(duration.Nanoseconds())
	if err != nil {
		m.nodeErrorsTotal.Add(1)
	}
}

// RecordSubmission records a raw transaction submission.
func (m *Metrics) RecordSubmission(err error) {
	m.submissionsTotal.Add(1)
	if err != nil {
		m.submissionsRejected.Add(1)
	}
}

// RecordConfirmation records a confirmation wait outcome.
func (m *Metrics) RecordConfirmation(timedOut bool) {
	m.confirmationsTotal.Add(1)
	if timedOut {
		m.confirmationTimeouts.Add(1)
	}
}

// RecordDecimalFallback records an asset-precision lookup that used the
// fallback default.
func (m *Metrics) RecordDecimalFallback() {
	m.decimalFallbacks.Add(1)
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	NodeCallsTotal       int64
	NodeErrorsTotal      int64
	NodeLatencyNanos     int64
	SubmissionsTotal     int64
	SubmissionsRejected  int64
	ConfirmationsTotal   int64
	ConfirmationTimeouts int64
	DecimalFallbacks     int64
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		NodeCallsTotal:       m.nodeCallsTotal.Load(),
		NodeErrorsTotal:      m.nodeErrorsTotal.Load(),
		NodeLatencyNanos:     m.nodeLatencyNano.Load(),
		SubmissionsTotal:     m.submissionsTotal.Load(),
		SubmissionsRejected:  m.submissionsRejected.Load(),
		ConfirmationsTotal:   m.confirmationsTotal.Load(),
		ConfirmationTimeouts: m.confirmationTimeouts.Load(),
		DecimalFallbacks:     m.decimalFallbacks.Load(),
	}
}

// NodeLatencyAvgMs returns the average node call latency in milliseconds.
// Returns 0 if no calls have been made.
func (m *Metrics) NodeLatencyAvgMs() float64 {
	calls := m.nodeCallsTotal.Load()
	if calls == 0 {
		return 0
	}
	nanos := m.nodeLatencyNano.Load()
	return float64(nanos) / float64(calls) / 1e6
}

// Reset resets all metrics to zero.
// Useful for testing.
func (m *Metrics) Reset() {
	m.nodeCallsTotal.Store(0)
	m.nodeErrorsTotal.Store(0)
	m.nodeLatencyNano.Store(0)
	m.submissionsTotal.Store(0)
	m.submissionsRejected.Store(0)
	m.confirmationsTotal.Store(0)
	m.confirmationTimeouts.Store(0)
	m.decimalFallbacks.Store(0)
}
