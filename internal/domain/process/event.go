package process

import "time"

// EventType categorizes a worker lifecycle transition for the
// notification sink.
type EventType int

// Event type constants.
const (
	// EventStart indicates a successful start.
	EventStart EventType = iota
	// EventStop indicates a successful stop.
	EventStop
	// EventRestart indicates a successful restart.
	EventRestart
)

// String returns the wire-format action label for the event type, matching
// the notification sink's action enumeration: {"start","stop","restart"}.
func (e EventType) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Event is what a Worker hands to the notification sink.
type Event struct {
	// Type is the lifecycle action this event reports.
	Type EventType
	// Program is the worker's program name.
	Program string
	// Success reports whether the action succeeded.
	Success bool
	// Error is the failure reason; empty on success.
	Error string
	// At is when the event occurred.
	At time.Time
}

// NewEvent builds an Event stamped with the current time.
func NewEvent(eventType EventType, program string, success bool, errText string) Event {
	return Event{
		Type:    eventType,
		Program: program,
		Success: success,
		Error:   errText,
		At:      time.Now(),
	}
}
