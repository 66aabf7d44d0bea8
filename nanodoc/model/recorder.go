package model

// Recorder is notified once per model operation. Implementations must not
// block and must swallow their own failures: the model never waits on or
// inspects the outcome.
type Recorder interface {
	RecordInteraction()
}

// NopRecorder ignores every notification.
type NopRecorder struct{}

// RecordInteraction implements Recorder
func (NopRecorder) RecordInteraction() {}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func()

// RecordInteraction implements Recorder
func (f RecorderFunc) RecordInteraction() { f() }
