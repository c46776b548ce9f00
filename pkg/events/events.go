// Package events defines the messages exchanged between trialkit services.
package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const Topic = "trialkit.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	PluginEventReceivedEvent EventType = "plugin.event.received"
	WorkflowTriggeredEvent   EventType = "workflow.triggered"
)

type BaseEvent struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	Timestamp  time.Time      `json:"timestamp"`
	WorkflowID string         `json:"workflow_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

func NewBaseEvent(eventType EventType, workflowID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		WorkflowID: workflowID,
		Metadata:   make(map[string]any),
	}
}
