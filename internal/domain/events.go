package domain

import (
	"time"
)

// Event is the base interface for all events published on the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Visualizer lifecycle and frame events.
const (
	EventVisualStarted     EventType = "visual.started"
	EventVisualStopped     EventType = "visual.stopped"
	EventVisualCleared     EventType = "visual.cleared"
	EventVisualResized     EventType = "visual.resized"
	EventVisualFrame       EventType = "visual.frame"
	EventVisualSourceEnded EventType = "visual.source_ended"
	EventVisualError       EventType = "visual.error"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent carries the timestamp shared by all events.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// VisualStartedEvent is published when the visualizer starts ticking.
type VisualStartedEvent struct {
	baseEvent
	Interval time.Duration
}

// Type implements Event.
func (e VisualStartedEvent) Type() EventType { return EventVisualStarted }

// NewVisualStartedEvent creates a new VisualStartedEvent.
func NewVisualStartedEvent(interval time.Duration) VisualStartedEvent {
	return VisualStartedEvent{baseEvent: newBaseEvent(), Interval: interval}
}

// VisualStoppedEvent is published when the visualizer stops.
type VisualStoppedEvent struct {
	baseEvent
}

// Type implements Event.
func (e VisualStoppedEvent) Type() EventType { return EventVisualStopped }

// NewVisualStoppedEvent creates a new VisualStoppedEvent.
func NewVisualStoppedEvent() VisualStoppedEvent {
	return VisualStoppedEvent{baseEvent: newBaseEvent()}
}

// VisualClearedEvent is published when column state is reset.
type VisualClearedEvent struct {
	baseEvent
}

// Type implements Event.
func (e VisualClearedEvent) Type() EventType { return EventVisualCleared }

// NewVisualClearedEvent creates a new VisualClearedEvent.
func NewVisualClearedEvent() VisualClearedEvent {
	return VisualClearedEvent{baseEvent: newBaseEvent()}
}

// VisualResizedEvent is published when the derived grid changes size.
type VisualResizedEvent struct {
	baseEvent
	Viewport Viewport
	Cols     int
	Rows     int
}

// Type implements Event.
func (e VisualResizedEvent) Type() EventType { return EventVisualResized }

// NewVisualResizedEvent creates a new VisualResizedEvent.
func NewVisualResizedEvent(vp Viewport, cols, rows int) VisualResizedEvent {
	return VisualResizedEvent{baseEvent: newBaseEvent(), Viewport: vp, Cols: cols, Rows: rows}
}

// VisualFrameEvent is published after every processed tick.
// Seq increases by one per frame and restarts at zero on clear.
type VisualFrameEvent struct {
	baseEvent
	Seq uint64
}

// Type implements Event.
func (e VisualFrameEvent) Type() EventType { return EventVisualFrame }

// NewVisualFrameEvent creates a new VisualFrameEvent.
func NewVisualFrameEvent(seq uint64) VisualFrameEvent {
	return VisualFrameEvent{baseEvent: newBaseEvent(), Seq: seq}
}

// VisualSourceEndedEvent is published when a finite source runs out of samples.
type VisualSourceEndedEvent struct {
	baseEvent
	Source string
}

// Type implements Event.
func (e VisualSourceEndedEvent) Type() EventType { return EventVisualSourceEnded }

// NewVisualSourceEndedEvent creates a new VisualSourceEndedEvent.
func NewVisualSourceEndedEvent(source string) VisualSourceEndedEvent {
	return VisualSourceEndedEvent{baseEvent: newBaseEvent(), Source: source}
}

// VisualErrorEvent is published when a tick fails; the tick is skipped.
type VisualErrorEvent struct {
	baseEvent
	Err error
}

// Type implements Event.
func (e VisualErrorEvent) Type() EventType { return EventVisualError }

// NewVisualErrorEvent creates a new VisualErrorEvent.
func NewVisualErrorEvent(err error) VisualErrorEvent {
	return VisualErrorEvent{baseEvent: newBaseEvent(), Err: err}
}
