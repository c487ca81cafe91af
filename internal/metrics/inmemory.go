package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Requests               uint64
	ClientErrors           uint64
	ServerErrors           uint64
	RequestDurationTotalNs int64
	AuthFailures           uint64
	TreesCreated           uint64
	RandomServed           uint64
}

var _ Snapshotter = (*InMemoryRecorder)(nil)

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	requests               uint64
	clientErrors           uint64
	serverErrors           uint64
	requestDurationTotalNs int64
	authFailures           uint64
	treesCreated           uint64
	randomServed           uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Requests:               atomic.LoadUint64(&m.requests),
		ClientErrors:           atomic.LoadUint64(&m.clientErrors),
		ServerErrors:           atomic.LoadUint64(&m.serverErrors),
		RequestDurationTotalNs: atomic.LoadInt64(&m.requestDurationTotalNs),
		AuthFailures:           atomic.LoadUint64(&m.authFailures),
		TreesCreated:           atomic.LoadUint64(&m.treesCreated),
		RandomServed:           atomic.LoadUint64(&m.randomServed),
	}
}

// ObserveRequest counts the request and its status class.
func (m *InMemoryRecorder) ObserveRequest(route, method string, status int, duration time.Duration) {
	atomic.AddUint64(&m.requests, 1)
	atomic.AddInt64(&m.requestDurationTotalNs, duration.Nanoseconds())
	switch {
	case status >= 500:
		atomic.AddUint64(&m.serverErrors, 1)
	case status >= 400:
		atomic.AddUint64(&m.clientErrors, 1)
	}
}

// IncAuthFailure increments the auth failure counter.
func (m *InMemoryRecorder) IncAuthFailure(reason string) {
	atomic.AddUint64(&m.authFailures, 1)
}

// IncTreeCreated increments the tree created counter.
func (m *InMemoryRecorder) IncTreeCreated() {
	atomic.AddUint64(&m.treesCreated, 1)
}

// IncRandomServed increments the random number counter.
func (m *InMemoryRecorder) IncRandomServed() {
	atomic.AddUint64(&m.randomServed, 1)
}
