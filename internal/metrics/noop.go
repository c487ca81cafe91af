package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// ObserveRequest is a no-op.
func (n *NoopRecorder) ObserveRequest(route, method string, status int, duration time.Duration) {}

// IncAuthFailure is a no-op.
func (n *NoopRecorder) IncAuthFailure(reason string) {}

// IncTreeCreated is a no-op.
func (n *NoopRecorder) IncTreeCreated() {}

// IncRandomServed is a no-op.
func (n *NoopRecorder) IncRandomServed() {}
