// Package main provides the trialkit command line client.
package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
)

func main() {
	command := NewCommand()

	if err := command.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewCommand builds the trialkit CLI.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:                  "trialkit",
		Usage:                 "Query a trialkit API",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Usage:   "Base URL of the trialkit API",
				Value:   "http://localhost:9091",
				Sources: cli.EnvVars("TRIALKIT_URL"),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "Bearer token sent with every request",
				Sources: cli.EnvVars("TRIALKIT_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "Language of validation messages (en, zh)",
				Sources: cli.EnvVars("TRIALKIT_LANGUAGE"),
			},
			&cli.BoolFlag{
				Name:    "otel",
				Usage:   "Export client spans over OTLP",
				Sources: cli.EnvVars("OTEL_ENABLED"),
			},
		},
		Commands: []*cli.Command{
			NewAppInfoCommand(),
			NewNodeTypesCommand(),
		},
	}
}
