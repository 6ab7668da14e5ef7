package plan

import (
	"fmt"
	"time"
)

// EventType represents the outcome of one watched plan run.
type EventType string

const (
	EventRun   EventType = "RUN"
	EventError EventType = "ERROR"
)

// Event reports one re-execution of a watched plan.
type Event struct {
	Type      EventType
	Path      string
	Steps     int
	Err       string
	Timestamp int64 // Unix timestamp
}

// NewRunEvent builds a successful run event.
func NewRunEvent(path string, steps int) Event {
	return Event{Type: EventRun, Path: path, Steps: steps, Timestamp: time.Now().Unix()}
}

// NewErrorEvent builds a failed run event.
func NewErrorEvent(path string, err error) Event {
	return Event{Type: EventError, Path: path, Err: err.Error(), Timestamp: time.Now().Unix()}
}

// String implements fmt.Stringer (and thereby lifecycle.Event).
func (e Event) String() string {
	if e.Type == EventError {
		return fmt.Sprintf("%s %s: %s", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: %d steps", e.Type, e.Path, e.Steps)
}
