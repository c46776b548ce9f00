package dispatcher

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dukex/trialkit/pkg/channels/gochannel"
	"github.com/dukex/trialkit/pkg/eventbus"
	"github.com/dukex/trialkit/pkg/events"
	"github.com/dukex/trialkit/pkg/mocks"
	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/persistence/file"
	"github.com/dukex/trialkit/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func pluginNode(id, pluginID, eventName string, enabled bool, config map[string]any) *models.WorkflowNode {
	return testutil.CreateTestNode(
		testutil.WithID(id),
		testutil.WithPluginTrigger(pluginID, eventName, config),
		testutil.WithEnabled(enabled),
	)
}

func TestDispatcher_PublishesOnePerMatch(t *testing.T) {
	match := &models.TriggerNodeMatch{
		WorkflowID: "wf-1",
		AppID:      "app-1",
		Node:       pluginNode("node-1", "github", "push", true, map[string]any{"repo": "trialkit"}),
	}

	mockPersistence := &mocks.MockPersistence{}
	mockPersistence.On("FindPluginTriggerNodes", mock.Anything, "github", "push").
		Return([]*models.TriggerNodeMatch{match}, nil)

	mockBus := &mocks.MockEventBus{}
	mockBus.On("GenerateID").Return("evt-1")
	mockBus.On("Publish", mock.Anything, "wf-1", mock.MatchedBy(func(event *events.WorkflowTriggered) bool {
		return event.ID == "evt-1" &&
			event.WorkflowID == "wf-1" &&
			event.AppID == "app-1" &&
			event.TriggerNodeID == "node-1" &&
			event.TriggerData["ref"] == "main"
	})).Return(nil)

	d := New(mockPersistence, mockBus, testLogger(), nil)

	event := events.NewPluginEventReceived("github", "push", map[string]any{"ref": "main"})

	published, err := d.Dispatch(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, 1, published)

	mockPersistence.AssertExpectations(t)
	mockBus.AssertExpectations(t)
}

func TestDispatcher_InvalidEvent(t *testing.T) {
	mockPersistence := &mocks.MockPersistence{}
	mockBus := &mocks.MockEventBus{}

	d := New(mockPersistence, mockBus, testLogger(), nil)

	_, err := d.Dispatch(context.Background(), events.NewPluginEventReceived("", "push", nil))
	assert.ErrorIs(t, err, events.ErrInvalidEventData)

	mockPersistence.AssertNotCalled(t, "FindPluginTriggerNodes", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_LookupError(t *testing.T) {
	storageErr := errors.New("connection refused")

	mockPersistence := &mocks.MockPersistence{}
	mockPersistence.On("FindPluginTriggerNodes", mock.Anything, "github", "push").Return(nil, storageErr)

	d := New(mockPersistence, &mocks.MockEventBus{}, testLogger(), nil)

	_, err := d.Dispatch(context.Background(), events.NewPluginEventReceived("github", "push", nil))
	assert.ErrorIs(t, err, storageErr)
}

func TestDispatcher_PublishErrorsAreJoined(t *testing.T) {
	matches := []*models.TriggerNodeMatch{
		{WorkflowID: "wf-1", AppID: "app", Node: pluginNode("n1", "p", "e", true, nil)},
		{WorkflowID: "wf-2", AppID: "app", Node: pluginNode("n2", "p", "e", true, nil)},
	}
	busErr := errors.New("broker down")

	mockPersistence := &mocks.MockPersistence{}
	mockPersistence.On("FindPluginTriggerNodes", mock.Anything, "p", "e").Return(matches, nil)

	mockBus := &mocks.MockEventBus{}
	mockBus.On("GenerateID").Return("id")
	mockBus.On("Publish", mock.Anything, "wf-1", mock.Anything).Return(busErr)
	mockBus.On("Publish", mock.Anything, "wf-2", mock.Anything).Return(nil)

	d := New(mockPersistence, mockBus, testLogger(), nil)

	published, err := d.Dispatch(context.Background(), events.NewPluginEventReceived("p", "e", nil))
	assert.ErrorIs(t, err, busErr)
	assert.Equal(t, 1, published)
}

func TestTriggerData(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		config  map[string]any
		want    map[string]any
	}{
		{
			name:    "node config under config key",
			payload: map[string]any{"ref": "main"},
			config:  map[string]any{"repo": "trialkit"},
			want:    map[string]any{"ref": "main", "config": map[string]any{"repo": "trialkit"}},
		},
		{
			name:    "merged with payload config",
			payload: map[string]any{"config": map[string]any{"branch": "dev", "repo": "other"}},
			config:  map[string]any{"repo": "trialkit"},
			want:    map[string]any{"config": map[string]any{"branch": "dev", "repo": "trialkit"}},
		},
		{
			name:    "non map payload config is replaced",
			payload: map[string]any{"config": "raw"},
			config:  map[string]any{},
			want:    map[string]any{"config": map[string]any{}},
		},
		{
			name: "empty",
			want: map[string]any{"config": map[string]any{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := events.NewPluginEventReceived("p", "e", tt.payload)
			got := TriggerData(event, pluginNode("n", "p", "e", true, tt.config))

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTriggerData_DoesNotMutatePayload(t *testing.T) {
	payload := map[string]any{"config": map[string]any{"branch": "dev"}}
	event := events.NewPluginEventReceived("p", "e", payload)

	TriggerData(event, pluginNode("n", "p", "e", true, map[string]any{"repo": "trialkit"}))

	assert.Equal(t, map[string]any{"config": map[string]any{"branch": "dev"}}, payload)
}

func TestDispatcher_EndToEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := file.NewPersistence(t.TempDir())

	workflow := testutil.CreateTestWorkflow("app-1",
		pluginNode("listening", "github", "issue_opened", true, map[string]any{"label": "bug"}),
		pluginNode("disabled", "github", "issue_opened", false, nil),
		pluginNode("other-event", "github", "push", true, nil),
	)
	require.NoError(t, store.SaveWorkflow(ctx, workflow))

	pub, sub, err := gochannel.CreateChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub, testLogger())
	defer func() {
		assert.NoError(t, bus.Close())
	}()

	triggered := make(chan *events.WorkflowTriggered, 10)

	require.NoError(t, bus.Handle(events.WorkflowTriggeredEvent, func(_ context.Context, event any) error {
		triggered <- event.(*events.WorkflowTriggered)

		return nil
	}))

	d := New(store, bus, testLogger(), nil)
	require.NoError(t, d.Start(ctx))

	source := events.NewPluginEventReceived("github", "issue_opened", map[string]any{"number": float64(42)})
	require.NoError(t, bus.Publish(ctx, source.PluginID, source))

	select {
	case got := <-triggered:
		assert.Equal(t, workflow.ID, got.WorkflowID)
		assert.Equal(t, "app-1", got.AppID)
		assert.Equal(t, "listening", got.TriggerNodeID)
		assert.Equal(t, source.ID, got.Metadata[PluginEventIDKey])
		assert.Equal(t, map[string]any{"number": float64(42), "config": map[string]any{"label": "bug"}}, got.TriggerData)
	case <-time.After(5 * time.Second):
		t.Fatal("workflow.triggered was not published")
	}

	select {
	case extra := <-triggered:
		t.Fatalf("unexpected workflow.triggered for node %s", extra.TriggerNodeID)
	case <-time.After(200 * time.Millisecond):
	}
}
