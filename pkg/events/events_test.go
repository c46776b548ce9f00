package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPluginEventReceived_JSONSerialization(t *testing.T) {
	original := NewPluginEventReceived("langgenius/github", "issue_opened", map[string]any{"number": float64(7)})

	jsonData, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"plugin_id":"langgenius/github"`)
	assert.Contains(t, string(jsonData), `"type":"plugin.event.received"`)

	var deserialized PluginEventReceived

	require.NoError(t, json.Unmarshal(jsonData, &deserialized))
	assert.Equal(t, original.ID, deserialized.ID)
	assert.Equal(t, original.EventName, deserialized.EventName)
	assert.Equal(t, original.Payload, deserialized.Payload)
	assert.Equal(t, PluginEventReceivedEvent, deserialized.GetType())
}

func TestPluginEventReceived_NilPayload(t *testing.T) {
	event := NewPluginEventReceived("p", "e", nil)

	assert.NotNil(t, event.Payload)
	assert.Empty(t, event.Payload)
}

func TestPluginEventReceived_Validate(t *testing.T) {
	tests := []struct {
		name        string
		event       *PluginEventReceived
		expectedErr string
	}{
		{name: "valid", event: NewPluginEventReceived("p", "e", nil)},
		{name: "missing plugin", event: NewPluginEventReceived("", "e", nil), expectedErr: "plugin_id is required"},
		{name: "missing event", event: NewPluginEventReceived("p", "", nil), expectedErr: "event_name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.expectedErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidEventData)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestWorkflowTriggered(t *testing.T) {
	event := NewWorkflowTriggered("wf-1", "app-1", "node-1", map[string]any{"k": "v"})

	assert.Equal(t, "wf-1", event.WorkflowID)
	assert.Equal(t, WorkflowTriggeredEvent, event.Type)
	assert.Equal(t, WorkflowTriggeredEvent, event.GetType())
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
}
