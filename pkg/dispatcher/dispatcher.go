// Package dispatcher turns plugin events into workflow.triggered events for every enabled
// plugin trigger node listening to them.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/dukex/trialkit/pkg/eventbus"
	"github.com/dukex/trialkit/pkg/events"
	"github.com/dukex/trialkit/pkg/models"
	"github.com/dukex/trialkit/pkg/otelhelper"
	"github.com/dukex/trialkit/pkg/persistence"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ConfigKey is the trigger data key the node configuration is merged under.
const ConfigKey = "config"

// PluginEventIDKey links a WorkflowTriggered event to the plugin event that caused it.
const PluginEventIDKey = "plugin_event_id"

type Dispatcher struct {
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	logger      *slog.Logger
	tracer      trace.Tracer
}

func New(persistence persistence.Persistence, eventBus eventbus.EventBus, logger *slog.Logger, tracer trace.Tracer) *Dispatcher {
	if tracer == nil {
		tracer = otelhelper.NoopTracer()
	}

	return &Dispatcher{
		persistence: persistence,
		eventBus:    eventBus,
		logger:      logger.With("module", "dispatcher"),
		tracer:      tracer,
	}
}

// Start registers the plugin event handler and subscribes to the bus. Delivery runs in the
// background until ctx is done.
func (d *Dispatcher) Start(ctx context.Context) error {
	err := d.eventBus.Handle(events.PluginEventReceivedEvent, func(ctx context.Context, event any) error {
		pluginEvent, ok := event.(*events.PluginEventReceived)
		if !ok {
			return fmt.Errorf("%w: unexpected %T", events.ErrInvalidEventData, event)
		}

		_, err := d.Dispatch(ctx, pluginEvent)

		return err
	})
	if err != nil {
		return fmt.Errorf("failed to register plugin event handler: %w", err)
	}

	if err := d.eventBus.Subscribe(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to events: %w", err)
	}

	d.logger.InfoContext(ctx, "Dispatcher subscribed to plugin events")

	return nil
}

// Dispatch publishes one WorkflowTriggered event per matching trigger node and returns the
// number of events published. Invalid events are rejected before any lookup.
func (d *Dispatcher) Dispatch(ctx context.Context, event *events.PluginEventReceived) (int, error) {
	ctx, span := otelhelper.StartSpan(ctx, d.tracer, "dispatcher.dispatch",
		attribute.String(otelhelper.EventIDKey, event.ID),
		attribute.String(otelhelper.PluginIDKey, event.PluginID),
		attribute.String(otelhelper.PluginEventKey, event.EventName),
	)
	defer span.End()

	logger := d.logger.With("event_id", event.ID, "plugin_id", event.PluginID, "event_name", event.EventName)

	if err := event.Validate(); err != nil {
		otelhelper.SetError(span, err)
		logger.ErrorContext(ctx, "Invalid plugin event", "error", err)

		return 0, err
	}

	matches, err := d.persistence.FindPluginTriggerNodes(ctx, event.PluginID, event.EventName)
	if err != nil {
		otelhelper.SetError(span, err)
		logger.ErrorContext(ctx, "Failed to find plugin trigger nodes", "error", err)

		return 0, fmt.Errorf("failed to find plugin trigger nodes: %w", err)
	}

	span.SetAttributes(attribute.Int(otelhelper.MatchedNodesKey, len(matches)))
	logger.InfoContext(ctx, "Found matching trigger nodes", "count", len(matches))

	published := 0

	var errs []error

	for _, match := range matches {
		if err := d.publish(ctx, event, match); err != nil {
			logger.ErrorContext(ctx, "Failed to publish workflow.triggered",
				"workflow_id", match.WorkflowID,
				"trigger_node_id", match.Node.ID,
				"error", err)

			errs = append(errs, err)

			continue
		}

		published++
	}

	if err := errors.Join(errs...); err != nil {
		otelhelper.SetError(span, err)

		return published, err
	}

	return published, nil
}

func (d *Dispatcher) publish(ctx context.Context, event *events.PluginEventReceived, match *models.TriggerNodeMatch) error {
	triggered := events.NewWorkflowTriggered(match.WorkflowID, match.AppID, match.Node.ID, TriggerData(event, match.Node))
	triggered.ID = d.eventBus.GenerateID()
	triggered.Metadata[PluginEventIDKey] = event.ID

	if err := d.eventBus.Publish(ctx, match.WorkflowID, triggered); err != nil {
		return err
	}

	d.logger.InfoContext(ctx, "Published workflow.triggered",
		"event_id", triggered.ID,
		"workflow_id", match.WorkflowID,
		"trigger_node_id", match.Node.ID)

	return nil
}

// TriggerData is the event payload with the node's plugin config merged into its "config"
// entry. Node config keys win over payload keys of the same name.
func TriggerData(event *events.PluginEventReceived, node *models.WorkflowNode) map[string]any {
	data := models.CloneData(event.Payload)

	config := map[string]any{}
	if payloadConfig, ok := data[ConfigKey].(map[string]any); ok {
		config = payloadConfig
	}

	if cfg, ok := node.PluginTrigger(); ok {
		maps.Copy(config, cfg.Config)
	}

	data[ConfigKey] = config

	return data
}
