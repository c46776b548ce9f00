// Package eventbus carries trialkit events over watermill publishers and subscribers.
package eventbus

import (
	"context"

	"github.com/dukex/trialkit/pkg/events"
)

// Event is a message the bus can route: plugin.event.received or workflow.triggered.
type Event interface {
	GetType() events.EventType
}

// EventPublisher sends events. key orders delivery: plugin events are keyed by plugin id,
// workflow.triggered events by workflow id.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event Event) error
}

// EventSubscriber delivers decoded events to one handler per event type.
type EventSubscriber interface {
	Handle(eventType events.EventType, handler EventHandler) error
	Subscribe(ctx context.Context) error
}

// EventHandler receives a pointer to the decoded event, e.g. *events.PluginEventReceived.
// A returned error nacks the message so it is redelivered.
type EventHandler func(ctx context.Context, event any) error

type EventBus interface {
	EventPublisher
	EventSubscriber
	Close() error
	GenerateID() string
}
