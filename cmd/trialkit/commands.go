package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dukex/trialkit/pkg/client"
	pkgcmd "github.com/dukex/trialkit/pkg/cmd"
	"github.com/dukex/trialkit/pkg/models"
	cli "github.com/urfave/cli/v3"
)

var errMissingArgument = errors.New("missing argument")

// withClient runs fn with a client configured from the root flags.
func withClient(ctx context.Context, command *cli.Command, fn func(*client.Client) (any, error)) error {
	tracer, shutdown, err := pkgcmd.NewTracer(ctx, command.Bool("otel"), "trialkit-cli")
	if err != nil {
		return fmt.Errorf("failed to initialize tracer: %w", err)
	}

	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	c := client.New(command.String("url"),
		client.WithBearerToken(command.String("token")),
		client.WithLanguage(command.String("language")),
		client.WithTracer(tracer),
	)

	result, err := fn(c)
	if err != nil {
		return err
	}

	return printJSON(command.Root().Writer, result)
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

func NewAppInfoCommand() *cli.Command {
	return &cli.Command{
		Name:      "app-info",
		Usage:     "Print the name, mode and site of a trial app",
		ArgsUsage: "<app-id>",
		Action: func(ctx context.Context, command *cli.Command) error {
			appID := command.Args().First()
			if appID == "" {
				return fmt.Errorf("%w: app id", errMissingArgument)
			}

			return withClient(ctx, command, func(c *client.Client) (any, error) {
				return c.FetchTryAppInfo(ctx, appID)
			})
		},
	}
}

func NewNodeTypesCommand() *cli.Command {
	return &cli.Command{
		Name:    "node-types",
		Aliases: []string{"nt"},
		Usage:   "Inspect workflow node types",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List node type metadata",
				Action: func(ctx context.Context, command *cli.Command) error {
					return withClient(ctx, command, func(c *client.Client) (any, error) {
						return c.ListNodeTypes(ctx)
					})
				},
			},
			{
				Name:      "default",
				Usage:     "Print the metadata and default data of a node type",
				ArgsUsage: "<type>",
				Action: func(ctx context.Context, command *cli.Command) error {
					nodeType := command.Args().First()
					if nodeType == "" {
						return fmt.Errorf("%w: node type", errMissingArgument)
					}

					return withClient(ctx, command, func(c *client.Client) (any, error) {
						return c.NodeDefault(ctx, models.BlockEnum(nodeType))
					})
				},
			},
			{
				Name:      "check",
				Usage:     "Validate node data against a node type",
				ArgsUsage: "<type>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "data",
						Usage: "Node data as a JSON object",
						Value: "{}",
					},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					nodeType := command.Args().First()
					if nodeType == "" {
						return fmt.Errorf("%w: node type", errMissingArgument)
					}

					var data map[string]any
					if err := json.Unmarshal([]byte(command.String("data")), &data); err != nil {
						return fmt.Errorf("invalid --data: %w", err)
					}

					return withClient(ctx, command, func(c *client.Client) (any, error) {
						return c.CheckNode(ctx, models.BlockEnum(nodeType), data)
					})
				},
			},
			{
				Name:  "preview",
				Usage: "List the next fire times of schedule trigger data",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Usage:    "Schedule trigger data as a JSON object",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "count",
						Usage: "Number of fire times to list",
						Value: 5,
					},
					&cli.StringFlag{
						Name:  "from",
						Usage: "RFC 3339 time to start from, defaults to now",
					},
				},
				Action: func(ctx context.Context, command *cli.Command) error {
					var data map[string]any
					if err := json.Unmarshal([]byte(command.String("data")), &data); err != nil {
						return fmt.Errorf("invalid --data: %w", err)
					}

					count := command.Int("count")
					if count < 1 {
						return fmt.Errorf("invalid --count %d: must be at least 1", count)
					}

					var from time.Time
					if raw := command.String("from"); raw != "" {
						parsed, err := time.Parse(time.RFC3339, raw)
						if err != nil {
							return fmt.Errorf("invalid --from: %w", err)
						}

						from = parsed
					}

					return withClient(ctx, command, func(c *client.Client) (any, error) {
						return c.PreviewSchedule(ctx, data, count, from)
					})
				},
			},
		},
	}
}
