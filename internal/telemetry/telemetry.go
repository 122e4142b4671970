// Package telemetry forwards notable events and failures to an external
// error-tracking service.
package telemetry

import (
	"time"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Event carries the context attached to a captured message or error.
type Event struct {
	Tags      map[string]string
	Extra     map[string]interface{}
	UserEmail string
}

// Reporter is implemented by every telemetry backend.
type Reporter interface {
	CaptureMessage(message string, level Level, ev Event)
	CaptureError(err error, level Level, ev Event)
	Flush(timeout time.Duration) bool
}

// Nop discards everything. It is used when no DSN is configured.
type Nop struct{}

func (Nop) CaptureMessage(string, Level, Event) {}
func (Nop) CaptureError(error, Level, Event)    {}
func (Nop) Flush(time.Duration) bool            { return true }
