package metrics

import "time"

// Outcome is the final status of one pipeline run.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Recorder defines observability hooks for the site pipeline.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome Outcome)
	SetDocuments(n int)
	AddIndexChanges(indexed, unchanged, removed int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are off).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncBuildOutcome(Outcome)                    {}
func (NoopRecorder) SetDocuments(int)                           {}
func (NoopRecorder) AddIndexChanges(int, int, int)              {}
