// Package metrics provides operational observability hooks for the
// extraction service. These are process metrics (counters, histograms), not
// the extraction history itself — that lives in the store.
package metrics

import "time"

// Recorder defines observability hooks for extraction operations.
// Implementations may forward to Prometheus, OpenTelemetry, etc. All methods
// must be safe on the NoopRecorder (allowing optional injection).
type Recorder interface {
	IncExtraction(quality string)
	IncValidationFailure(field string)
	ObserveSimulateDuration(d time.Duration)
	SetHistorySize(n int)
	IncAlert(severity string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncExtraction(string)                  {}
func (NoopRecorder) IncValidationFailure(string)           {}
func (NoopRecorder) ObserveSimulateDuration(time.Duration) {}
func (NoopRecorder) SetHistorySize(int)                    {}
func (NoopRecorder) IncAlert(string)                       {}
