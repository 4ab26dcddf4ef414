package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncGroupMessage is a no-op.
func (n *NoopRecorder) IncGroupMessage(status string) {}

// IncDirectMessage is a no-op.
func (n *NoopRecorder) IncDirectMessage(status string) {}

// IncRecipientSkipped is a no-op.
func (n *NoopRecorder) IncRecipientSkipped(reason string) {}

// ObserveAPIRequest is a no-op.
func (n *NoopRecorder) ObserveAPIRequest(endpoint string, statusCode int, duration time.Duration) {}
