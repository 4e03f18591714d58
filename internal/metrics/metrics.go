// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Store operation labels.
const (
	OpLoad = "load"
	OpSave = "save"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus or keep them in memory.
type Recorder interface {
	// Feedback mutations
	IncFeedbackCreated()
	IncFeedbackVoted(direction string)
	IncFeedbackDeleted()

	// Persistence
	IncStoreFailure(op string)
	ObserveStoreDuration(op string, duration time.Duration)
}
