package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	dispatchUseCase "github.com/allisson/dispatcher/internal/dispatch/usecase"
)

// RunSend submits a single message through the same validation and queue
// path as the HTTP API. The outcome is recorded later by a worker.
func RunSend(
	ctx context.Context,
	useCase dispatchUseCase.DispatchUseCase,
	logger *slog.Logger,
	writer io.Writer,
	recipient, body string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	handle, err := useCase.Submit(ctx, recipient, body)
	if err != nil {
		return fmt.Errorf("failed to submit dispatch: %w", err)
	}

	logger.Info("dispatch enqueued",
		slog.String("job_id", handle.String()),
		slog.String("recipient", recipient),
	)

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{
			"job_id":    handle.String(),
			"recipient": recipient,
			"status":    "queued",
		})
	}

	_, err = fmt.Fprintf(writer, "Dispatch to %s enqueued (job %s)\n", recipient, handle.String())
	return err
}
