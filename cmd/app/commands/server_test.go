package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/allisson/dispatcher/internal/app"
	"github.com/allisson/dispatcher/internal/config"
)

func TestRunServer(t *testing.T) {
	tests := []struct {
		name           string
		metricsEnabled bool
		workerEmbedded bool
	}{
		{name: "api-only"},
		{name: "with-metrics", metricsEnabled: true},
		{name: "with-embedded-workers", metricsEnabled: true, workerEmbedded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				ServerHost:             "127.0.0.1",
				ServerPort:             0,
				ShutdownTimeout:        5 * time.Second,
				LogLevel:               "error",
				DBDriver:               "sqlite",
				DBConnectionString:     ":memory:",
				QueueDriver:            "memory",
				QueueName:              "dispatch-jobs",
				QueueVisibilityTimeout: time.Minute,
				WorkerConcurrency:      2,
				WorkerErrorBackoff:     10 * time.Millisecond,
				WorkerEmbedded:         tt.workerEmbedded,
				GatewayDriver:          "log",
				MetricsEnabled:         tt.metricsEnabled,
				MetricsNamespace:       "dispatcher_test",
				MetricsPort:            0,
			}
			container := app.NewContainer(cfg)
			defer closeContainer(container, container.Logger())

			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()

			require.NoError(t, RunServer(ctx, container, "test"))
		})
	}
}

func TestRunServer_InitError(t *testing.T) {
	cfg := &config.Config{
		LogLevel:           "error",
		DBDriver:           "sqlite",
		DBConnectionString: ":memory:",
		QueueDriver:        "kafka",
		GatewayDriver:      "log",
	}
	container := app.NewContainer(cfg)
	defer closeContainer(container, container.Logger())

	err := RunServer(context.Background(), container, "test")

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to initialize HTTP server")
}
