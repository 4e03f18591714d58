package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	FeedbackCreated   uint64
	FeedbackUpvoted   uint64
	FeedbackDownvoted uint64
	FeedbackDeleted   uint64
	StoreLoadFailures uint64
	StoreSaveFailures uint64
	StoreOpCount      uint64
	StoreOpTotalNs    int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	feedbackCreated   uint64
	feedbackUpvoted   uint64
	feedbackDownvoted uint64
	feedbackDeleted   uint64
	storeLoadFailures uint64
	storeSaveFailures uint64
	storeOpCount      uint64
	storeOpTotalNs    int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		FeedbackCreated:   atomic.LoadUint64(&m.feedbackCreated),
		FeedbackUpvoted:   atomic.LoadUint64(&m.feedbackUpvoted),
		FeedbackDownvoted: atomic.LoadUint64(&m.feedbackDownvoted),
		FeedbackDeleted:   atomic.LoadUint64(&m.feedbackDeleted),
		StoreLoadFailures: atomic.LoadUint64(&m.storeLoadFailures),
		StoreSaveFailures: atomic.LoadUint64(&m.storeSaveFailures),
		StoreOpCount:      atomic.LoadUint64(&m.storeOpCount),
		StoreOpTotalNs:    atomic.LoadInt64(&m.storeOpTotalNs),
	}
}

// IncFeedbackCreated increments the created counter.
func (m *InMemoryRecorder) IncFeedbackCreated() {
	atomic.AddUint64(&m.feedbackCreated, 1)
}

// IncFeedbackVoted increments the counter for the given direction.
func (m *InMemoryRecorder) IncFeedbackVoted(direction string) {
	switch direction {
	case "up":
		atomic.AddUint64(&m.feedbackUpvoted, 1)
	case "down":
		atomic.AddUint64(&m.feedbackDownvoted, 1)
	}
}

// IncFeedbackDeleted increments the deleted counter.
func (m *InMemoryRecorder) IncFeedbackDeleted() {
	atomic.AddUint64(&m.feedbackDeleted, 1)
}

// IncStoreFailure increments the failure counter for a store operation.
func (m *InMemoryRecorder) IncStoreFailure(op string) {
	switch op {
	case OpLoad:
		atomic.AddUint64(&m.storeLoadFailures, 1)
	case OpSave:
		atomic.AddUint64(&m.storeSaveFailures, 1)
	}
}

// ObserveStoreDuration records the duration of a store operation.
func (m *InMemoryRecorder) ObserveStoreDuration(op string, duration time.Duration) {
	atomic.AddUint64(&m.storeOpCount, 1)
	atomic.AddInt64(&m.storeOpTotalNs, duration.Nanoseconds())
}
