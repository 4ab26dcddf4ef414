package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	GroupMessagesSent    uint64
	GroupMessagesFailed  uint64
	DirectMessagesSent   uint64
	DirectMessagesFailed uint64
	SkippedSelf          uint64
	SkippedBot           uint64
	APIRequests          map[string]uint64 // keyed by endpoint
	APIErrors            uint64            // transport failures and non-2xx responses
	APIDurationTotalNs   int64
}

// InMemoryRecorder stores metrics in memory for tests and run summaries.
type InMemoryRecorder struct {
	groupSent          uint64
	groupFailed        uint64
	directSent         uint64
	directFailed       uint64
	skippedSelf        uint64
	skippedBot         uint64
	apiErrors          uint64
	apiDurationTotalNs int64

	mu          sync.Mutex
	apiRequests map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{apiRequests: make(map[string]uint64)}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	requests := make(map[string]uint64, len(m.apiRequests))
	for k, v := range m.apiRequests {
		requests[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		GroupMessagesSent:    atomic.LoadUint64(&m.groupSent),
		GroupMessagesFailed:  atomic.LoadUint64(&m.groupFailed),
		DirectMessagesSent:   atomic.LoadUint64(&m.directSent),
		DirectMessagesFailed: atomic.LoadUint64(&m.directFailed),
		SkippedSelf:          atomic.LoadUint64(&m.skippedSelf),
		SkippedBot:           atomic.LoadUint64(&m.skippedBot),
		APIRequests:          requests,
		APIErrors:            atomic.LoadUint64(&m.apiErrors),
		APIDurationTotalNs:   atomic.LoadInt64(&m.apiDurationTotalNs),
	}
}

// IncGroupMessage increments the group message counter for status.
func (m *InMemoryRecorder) IncGroupMessage(status string) {
	if status == StatusSuccess {
		atomic.AddUint64(&m.groupSent, 1)
		return
	}
	atomic.AddUint64(&m.groupFailed, 1)
}

// IncDirectMessage increments the direct message counter for status.
func (m *InMemoryRecorder) IncDirectMessage(status string) {
	if status == StatusSuccess {
		atomic.AddUint64(&m.directSent, 1)
		return
	}
	atomic.AddUint64(&m.directFailed, 1)
}

// IncRecipientSkipped increments the skip counter for reason.
func (m *InMemoryRecorder) IncRecipientSkipped(reason string) {
	switch reason {
	case SkipSelf:
		atomic.AddUint64(&m.skippedSelf, 1)
	case SkipBot:
		atomic.AddUint64(&m.skippedBot, 1)
	}
}

// ObserveAPIRequest records one API call.
func (m *InMemoryRecorder) ObserveAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	m.mu.Lock()
	m.apiRequests[endpoint]++
	m.mu.Unlock()

	if statusCode < 200 || statusCode >= 300 {
		atomic.AddUint64(&m.apiErrors, 1)
	}
	atomic.AddInt64(&m.apiDurationTotalNs, duration.Nanoseconds())
}
