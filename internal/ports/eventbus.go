package ports

import (
	"github.com/tejashwikalptaru/spacewave/internal/domain"
)

// EventBus publishes visualizer events to interested subscribers.
// The visualizer service publishes; the UI presenter and loggers subscribe.
//
// Thread-safety: implementations must be safe for concurrent use, since the
// tick goroutine publishes while the UI goroutine subscribes and unsubscribes.
//
// Example usage:
//
//	subID := bus.Subscribe(domain.EventVisualFrame, func(event domain.Event) {
//	    widget.Refresh()
//	})
//	defer bus.Unsubscribe(subID)
type EventBus interface {
	// Publish delivers an event to all subscribers of its type.
	// Handlers run on the publisher's goroutine and must return quickly.
	Publish(event domain.Event)

	// Subscribe registers a handler for one event type.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a subscription. Unknown IDs are ignored.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler that receives every event.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers reports whether anyone listens for the event type.
	// Publishers use it to skip building high-frequency events.
	HasSubscribers(eventType domain.EventType) bool

	// Close drops all subscriptions. Publishing afterwards is a no-op.
	Close() error
}
