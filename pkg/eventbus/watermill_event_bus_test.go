package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dukex/trialkit/pkg/channels/gochannel"
	"github.com/dukex/trialkit/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) *WatermillEventBus {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	pub, sub, err := gochannel.CreateChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub, logger)
	t.Cleanup(func() {
		assert.NoError(t, bus.Close())
	})

	return bus
}

func TestWatermillEventBus_PublishAndHandle(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan *events.PluginEventReceived, 1)

	require.NoError(t, bus.Handle(events.PluginEventReceivedEvent, func(_ context.Context, event any) error {
		received <- event.(*events.PluginEventReceived)

		return nil
	}))
	require.NoError(t, bus.Subscribe(ctx))

	sent := events.NewPluginEventReceived("github", "push", map[string]any{"ref": "main"})
	require.NoError(t, bus.Publish(ctx, sent.PluginID, sent))

	select {
	case got := <-received:
		assert.Equal(t, sent.ID, got.ID)
		assert.Equal(t, "github", got.PluginID)
		assert.Equal(t, "push", got.EventName)
		assert.Equal(t, map[string]any{"ref": "main"}, got.Payload)
	case <-time.After(5 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestWatermillEventBus_UnhandledTypesAreSkipped(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var triggered atomic.Int32

	require.NoError(t, bus.Handle(events.WorkflowTriggeredEvent, func(context.Context, any) error {
		triggered.Add(1)

		return nil
	}))
	require.NoError(t, bus.Subscribe(ctx))

	require.NoError(t, bus.Publish(ctx, "github", events.NewPluginEventReceived("github", "push", nil)))
	require.NoError(t, bus.Publish(ctx, "wf-1", events.NewWorkflowTriggered("wf-1", "app-1", "node-1", nil)))

	assert.Eventually(t, func() bool { return triggered.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return triggered.Load() > 1 }, 200*time.Millisecond, 20*time.Millisecond)
}

func TestWatermillEventBus_HandlerErrorRedelivers(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var attempts atomic.Int32

	require.NoError(t, bus.Handle(events.WorkflowTriggeredEvent, func(context.Context, any) error {
		if attempts.Add(1) == 1 {
			return errors.New("runner unavailable")
		}

		return nil
	}))
	require.NoError(t, bus.Subscribe(ctx))

	require.NoError(t, bus.Publish(ctx, "wf-1", events.NewWorkflowTriggered("wf-1", "app-1", "node-1", nil)))

	assert.Eventually(t, func() bool { return attempts.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	bus := newTestBus(t)

	first := bus.GenerateID()
	second := bus.GenerateID()

	assert.Len(t, first, 26)
	assert.NotEqual(t, first, second)
}
