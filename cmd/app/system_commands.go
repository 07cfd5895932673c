package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/dispatcher/cmd/app/commands"
	"github.com/allisson/dispatcher/internal/app"
	"github.com/allisson/dispatcher/internal/config"
)

// loadContainer loads and validates the configuration and builds the container.
func loadContainer() (*app.Container, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return app.NewContainer(cfg), nil
}

// loadStandaloneContainer is loadContainer for commands that run outside the
// server process and so cannot reach a process-local queue.
func loadStandaloneContainer() (*app.Container, error) {
	container, err := loadContainer()
	if err != nil {
		return nil, err
	}
	if err := container.Config().ValidateSharedQueue(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return container, nil
}

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP API (and the dispatch workers when WORKER_EMBEDDED is set)",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, err := loadContainer()
				if err != nil {
					return err
				}
				defer func() { _ = container.Shutdown(context.Background()) }()

				return commands.RunServer(ctx, container, version)
			},
		},
		{
			Name:  "worker",
			Usage: "Run the dispatch workers without the HTTP API",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "concurrency",
					Aliases: []string{"c"},
					Usage:   "Number of concurrent workers (overrides WORKER_CONCURRENCY)",
				},
				&cli.BoolFlag{
					Name:  "recover-orphans",
					Value: false,
					Usage: "Re-queue jobs left in progress by a crashed worker before starting (redis queue only)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, err := loadStandaloneContainer()
				if err != nil {
					return err
				}
				defer func() { _ = container.Shutdown(context.Background()) }()

				if concurrency := cmd.Int("concurrency"); concurrency > 0 {
					container.Config().WorkerConcurrency = int(concurrency)
				}

				if cmd.Bool("recover-orphans") {
					q, err := container.Queue()
					if err != nil {
						return err
					}
					if err := commands.RunRecoverOrphans(ctx, q, container.Logger(), commands.DefaultIO().Writer); err != nil {
						return err
					}
				}

				worker, err := container.WorkerUseCase()
				if err != nil {
					return err
				}

				return commands.RunWorker(ctx, worker, container.Logger())
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container, err := loadContainer()
				if err != nil {
					return err
				}
				defer func() { _ = container.Shutdown(context.Background()) }()

				db, err := container.DB()
				if err != nil {
					return err
				}

				return commands.RunMigrations(db, container.Logger(), container.Config().DBDriver)
			},
		},
	}
}
