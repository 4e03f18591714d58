package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncFeedbackCreated is a no-op.
func (n *NoopRecorder) IncFeedbackCreated() {}

// IncFeedbackVoted is a no-op.
func (n *NoopRecorder) IncFeedbackVoted(direction string) {}

// IncFeedbackDeleted is a no-op.
func (n *NoopRecorder) IncFeedbackDeleted() {}

// IncStoreFailure is a no-op.
func (n *NoopRecorder) IncStoreFailure(op string) {}

// ObserveStoreDuration is a no-op.
func (n *NoopRecorder) ObserveStoreDuration(op string, duration time.Duration) {}
