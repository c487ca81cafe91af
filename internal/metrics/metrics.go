// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus or keep them in memory.
type Recorder interface {
	// HTTP metrics, labelled by route pattern ("unmatched" for unknown routes)
	ObserveRequest(route, method string, status int, duration time.Duration)

	// Auth metrics
	IncAuthFailure(reason string) // reason: "missing_token" or "invalid_token"

	// Tree metrics
	IncTreeCreated()
	IncRandomServed()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
