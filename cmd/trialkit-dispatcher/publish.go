package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dukex/trialkit/pkg/channels/kafka"
	"github.com/dukex/trialkit/pkg/cmd"
	"github.com/dukex/trialkit/pkg/eventbus"
	"github.com/dukex/trialkit/pkg/events"
	"github.com/dukex/trialkit/pkg/log"
	cli "github.com/urfave/cli/v3"
)

var errMissingArgument = errors.New("missing argument")

// NewPublishCommand publishes one plugin event, for exercising a running dispatcher by hand.
func NewPublishCommand() *cli.Command {
	return &cli.Command{
		Name:      "publish",
		Usage:     "Publish a plugin event",
		ArgsUsage: "<plugin-id> <event-name>",
		Flags: append(eventBusFlags(),
			&cli.StringFlag{
				Name:  "payload",
				Usage: "Event payload as a JSON object",
				Value: "{}",
			},
		),
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule(serviceName)

			event, err := pluginEventFromArgs(command.Args().Get(0), command.Args().Get(1), command.String("payload"))
			if err != nil {
				return err
			}

			eventBus, err := cmd.NewEventBus(command.String("event-bus"), serviceName,
				kafka.ParseBrokers(command.String("kafka-brokers")), logger)
			if err != nil {
				return err
			}

			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			return publish(ctx, eventBus, event, command.Root().Writer)
		},
	}
}

func pluginEventFromArgs(pluginID, eventName, rawPayload string) (*events.PluginEventReceived, error) {
	if pluginID == "" {
		return nil, fmt.Errorf("%w: plugin id", errMissingArgument)
	}

	if eventName == "" {
		return nil, fmt.Errorf("%w: event name", errMissingArgument)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(rawPayload), &payload); err != nil {
		return nil, fmt.Errorf("invalid --payload: %w", err)
	}

	return events.NewPluginEventReceived(pluginID, eventName, payload), nil
}

func publish(ctx context.Context, bus eventbus.EventBus, event *events.PluginEventReceived, out io.Writer) error {
	event.ID = bus.GenerateID()

	if err := bus.Publish(ctx, event.PluginID, event); err != nil {
		return fmt.Errorf("failed to publish plugin event: %w", err)
	}

	_, err := fmt.Fprintln(out, event.ID)

	return err
}
