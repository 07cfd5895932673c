package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	dispatchUseCase "github.com/allisson/dispatcher/internal/dispatch/usecase"
	"github.com/allisson/dispatcher/internal/queue"
)

// OrphanRecoverer is implemented by queues that can re-queue jobs left
// unacknowledged by a crashed consumer.
type OrphanRecoverer interface {
	Recover(ctx context.Context) (int, error)
}

// RunWorker runs the dispatch workers until SIGINT/SIGTERM or ctx cancellation.
// Each worker finishes its in-flight job before returning.
func RunWorker(ctx context.Context, worker dispatchUseCase.WorkerUseCase, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting worker process")

	if err := worker.Start(ctx); err != nil {
		return fmt.Errorf("dispatch workers failed: %w", err)
	}

	logger.Info("worker process stopped")
	return nil
}

// RunRecoverOrphans moves jobs stranded in the queue's in-progress area back to
// pending. Only the redis driver keeps such an area; the database driver expires
// leases on its own and the broker drivers redeliver unacked messages.
func RunRecoverOrphans(ctx context.Context, q queue.Queue, logger *slog.Logger, writer io.Writer) error {
	recoverer, ok := q.(OrphanRecoverer)
	if !ok {
		return fmt.Errorf("queue driver does not support orphan recovery")
	}

	count, err := recoverer.Recover(ctx)
	if err != nil {
		return fmt.Errorf("failed to recover orphaned jobs: %w", err)
	}

	logger.Info("orphaned jobs recovered", slog.Int("count", count))
	_, err = fmt.Fprintf(writer, "Recovered %d orphaned job(s)\n", count)
	return err
}
