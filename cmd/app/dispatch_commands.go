package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/dispatcher/cmd/app/commands"
)

func getDispatchCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "send",
			Usage: "Enqueue a message for delivery",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "recipient",
					Aliases:  []string{"r", "email"},
					Required: true,
					Usage:    "Recipient address (up to 320 characters)",
				},
				&cli.StringFlag{
					Name:     "body",
					Aliases:  []string{"b"},
					Required: true,
					Usage:    "Message body (up to 5000 characters)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   commands.FormatText,
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, err := loadStandaloneContainer()
				if err != nil {
					return err
				}
				defer func() { _ = container.Shutdown(context.Background()) }()

				useCase, err := container.DispatchUseCase()
				if err != nil {
					return err
				}

				return commands.RunSend(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("recipient"),
					cmd.String("body"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "list-dispatches",
			Usage: "List recorded dispatch outcomes",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "recipient",
					Aliases: []string{"r", "email"},
					Usage:   "Only dispatches to this recipient",
				},
				&cli.StringFlag{
					Name:    "status",
					Aliases: []string{"s"},
					Usage:   "Only dispatches with this status: 'success' or 'failure'",
				},
				&cli.StringFlag{
					Name:  "start",
					Usage: "Inclusive lower bound (RFC 3339, YYYY-MM-DD HH:MM:SS or YYYY-MM-DD)",
				},
				&cli.StringFlag{
					Name:  "end",
					Usage: "Inclusive upper bound (RFC 3339, YYYY-MM-DD HH:MM:SS or YYYY-MM-DD)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   commands.FormatText,
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, err := loadContainer()
				if err != nil {
					return err
				}
				defer func() { _ = container.Shutdown(context.Background()) }()

				useCase, err := container.DispatchUseCase()
				if err != nil {
					return err
				}

				return commands.RunListDispatches(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					commands.ListFlags{
						Recipient:      cmd.String("recipient"),
						Status:         cmd.String("status"),
						StartTimestamp: cmd.String("start"),
						EndTimestamp:   cmd.String("end"),
					},
					cmd.String("format"),
				)
			},
		},
	}
}
