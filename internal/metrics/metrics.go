// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Delivery statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Skip reasons for recipients left out of a fan-out.
const (
	SkipSelf = "self"
	SkipBot  = "bot"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Message delivery metrics
	IncGroupMessage(status string)  // status: "success" or "failed"
	IncDirectMessage(status string) // status: "success" or "failed"
	IncRecipientSkipped(reason string)

	// Webex API metrics; statusCode is 0 on transport failure
	ObserveAPIRequest(endpoint string, statusCode int, duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
