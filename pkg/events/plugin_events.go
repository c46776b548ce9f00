package events

import "errors"

// ErrInvalidEventData is returned by Validate for events missing required fields.
var ErrInvalidEventData = errors.New("invalid event data")

// PluginEventReceived is published when a plugin reports an event, for example a GitHub
// plugin reporting "issue_opened". Enabled plugin trigger nodes subscribed to the same
// plugin and event name start their workflows from it.
type PluginEventReceived struct {
	BaseEvent

	PluginID  string         `json:"plugin_id"`
	EventName string         `json:"event_name"`
	Payload   map[string]any `json:"payload"`
}

func NewPluginEventReceived(pluginID, eventName string, payload map[string]any) *PluginEventReceived {
	if payload == nil {
		payload = make(map[string]any)
	}

	return &PluginEventReceived{
		BaseEvent: NewBaseEvent(PluginEventReceivedEvent, ""),
		PluginID:  pluginID,
		EventName: eventName,
		Payload:   payload,
	}
}

func (e PluginEventReceived) GetType() EventType {
	return PluginEventReceivedEvent
}

func (e *PluginEventReceived) Validate() error {
	if e.PluginID == "" {
		return errors.Join(ErrInvalidEventData, errors.New("plugin_id is required"))
	}

	if e.EventName == "" {
		return errors.Join(ErrInvalidEventData, errors.New("event_name is required"))
	}

	return nil
}
