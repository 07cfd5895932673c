package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/allisson/dispatcher/internal/app"
	dispatchUseCase "github.com/allisson/dispatcher/internal/dispatch/usecase"
	"github.com/allisson/dispatcher/internal/http"
)

// RunServer starts the API server, the metrics server when metrics are enabled
// and, with WORKER_EMBEDDED, the dispatch workers in the same process.
// Blocks until SIGINT/SIGTERM, ctx cancellation or a fatal server error. Servers
// are then shut down within SHUTDOWN_TIMEOUT and in-flight jobs are allowed to finish.
func RunServer(ctx context.Context, container *app.Container, version string) error {
	cfg := container.Config()

	gin.SetMode(cfg.GetGinMode())

	logger := container.Logger()
	logger.Info("starting server",
		slog.String("version", version),
		slog.String("queue_driver", cfg.QueueDriver),
		slog.Bool("worker_embedded", cfg.WorkerEmbedded),
	)

	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	var metricsServer *http.MetricsServer
	if cfg.MetricsEnabled {
		metricsServer, err = container.MetricsServer()
		if err != nil {
			return fmt.Errorf("failed to initialize metrics server: %w", err)
		}
	}

	var worker dispatchUseCase.WorkerUseCase
	if cfg.WorkerEmbedded {
		worker, err = container.WorkerUseCase()
		if err != nil {
			return fmt.Errorf("failed to initialize dispatch workers: %w", err)
		}
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serverErr := make(chan error, 2)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErr <- fmt.Errorf("api server error: %w", err)
		}
	}()

	if metricsServer != nil {
		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				serverErr <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	var workerDone chan error
	if worker != nil {
		workerDone = make(chan error, 1)
		go func() {
			workerDone <- worker.Start(ctx)
		}()
	}

	var shutdownErrors []error

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		logger.Error("server error, initiating shutdown", slog.Any("error", err))
		shutdownErrors = append(shutdownErrors, err)
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		shutdownErrors = append(shutdownErrors, fmt.Errorf("api server shutdown: %w", err))
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if workerDone != nil {
		select {
		case err := <-workerDone:
			if err != nil {
				shutdownErrors = append(shutdownErrors, fmt.Errorf("dispatch workers: %w", err))
			}
		case <-shutdownCtx.Done():
			shutdownErrors = append(shutdownErrors, errors.New("dispatch workers did not stop before shutdown timeout"))
		}
	}

	return errors.Join(shutdownErrors...)
}
