package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
	"github.com/allisson/dispatcher/internal/metrics"
	"github.com/allisson/dispatcher/internal/queue"
)

// WorkerConfig holds worker pool configuration.
type WorkerConfig struct {
	Concurrency  int
	ErrorBackoff time.Duration
	// ErrorLogInterval throttles "failed to dequeue job" logs across all loops.
	// Zero logs every failure.
	ErrorLogInterval time.Duration
}

// workerUseCase implements WorkerUseCase.
type workerUseCase struct {
	config     WorkerConfig
	queue      queue.Queue
	recordRepo DispatchRecordRepository
	gateway    DeliveryGateway
	metrics    metrics.DeliveryMetrics
	logger     *slog.Logger
	errorLog   *rate.Sometimes
}

// NewWorkerUseCase creates a new WorkerUseCase.
func NewWorkerUseCase(
	config WorkerConfig,
	q queue.Queue,
	recordRepo DispatchRecordRepository,
	gateway DeliveryGateway,
	deliveryMetrics metrics.DeliveryMetrics,
	logger *slog.Logger,
) WorkerUseCase {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	if deliveryMetrics == nil {
		deliveryMetrics = metrics.NewNoOpDeliveryMetrics()
	}
	errorLog := &rate.Sometimes{Every: 1}
	if config.ErrorLogInterval > 0 {
		errorLog = &rate.Sometimes{First: 1, Interval: config.ErrorLogInterval}
	}
	return &workerUseCase{
		config:     config,
		queue:      q,
		recordRepo: recordRepo,
		gateway:    gateway,
		metrics:    deliveryMetrics,
		logger:     logger,
		errorLog:   errorLog,
	}
}

// Start runs Concurrency independent dequeue loops and blocks until all of them
// have returned. Cancelling ctx stops the loops after their in-flight job.
func (w *workerUseCase) Start(ctx context.Context) error {
	w.logger.Info("starting dispatch workers",
		slog.Int("concurrency", w.config.Concurrency),
		slog.Duration("error_backoff", w.config.ErrorBackoff),
	)

	g, gctx := errgroup.WithContext(ctx)
	for i := range w.config.Concurrency {
		g.Go(func() error {
			return w.run(gctx, i)
		})
	}

	err := g.Wait()
	w.logger.Info("dispatch workers stopped")
	return err
}

func (w *workerUseCase) run(ctx context.Context, workerID int) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		delivery, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, queue.ErrClosed) {
				return nil
			}

			w.metrics.RecordDequeueError(ctx)
			w.errorLog.Do(func() {
				w.logger.Error("failed to dequeue job",
					slog.Int("worker_id", workerID),
					slog.Any("error", err),
				)
			})

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(w.config.ErrorBackoff):
			}
			continue
		}

		w.handle(context.WithoutCancel(ctx), workerID, delivery)
	}
}

// handle processes one delivery and acknowledges it whatever the outcome,
// so a job is never sent twice by this worker.
func (w *workerUseCase) handle(ctx context.Context, workerID int, delivery *queue.Delivery) {
	job, err := delivery.Decode()
	if err != nil {
		w.logger.Error("dropping undecodable job",
			slog.Int("worker_id", workerID),
			slog.Any("error", err),
		)
		w.metrics.RecordDropped(ctx, "decode")
	} else {
		w.ProcessJob(ctx, job)
	}

	if err := delivery.Ack(ctx); err != nil {
		w.logger.Warn("failed to acknowledge job",
			slog.Int("worker_id", workerID),
			slog.Any("error", err),
		)
	}
}

// ProcessJob makes exactly one delivery attempt and appends its outcome. A failed
// append is logged and the outcome is lost; the returned status is still the
// outcome of the attempt.
func (w *workerUseCase) ProcessJob(ctx context.Context, job *domain.DispatchJob) domain.DispatchStatus {
	w.metrics.AddInFlight(ctx, 1)
	defer w.metrics.AddInFlight(ctx, -1)

	start := time.Now()
	status := domain.DispatchStatusSuccess
	if err := w.attempt(ctx, job); err != nil {
		status = domain.DispatchStatusFailure
		w.logger.Warn("delivery failed",
			slog.String("job_id", job.ID.String()),
			slog.String("recipient", job.Recipient),
			slog.Any("error", err),
		)
	}
	w.metrics.RecordDelivery(ctx, string(status), time.Since(start))

	record := &domain.DispatchRecord{
		Recipient: job.Recipient,
		Body:      job.Body,
		EventTime: time.Now().UTC(),
		Status:    status,
	}
	if err := w.recordRepo.Append(ctx, record); err != nil {
		w.logger.Error("failed to persist dispatch record",
			slog.String("job_id", job.ID.String()),
			slog.String("recipient", job.Recipient),
			slog.String("status", string(status)),
			slog.Any("error", err),
		)
		w.metrics.RecordDropped(ctx, "persist")
		return status
	}

	w.logger.Info("dispatch completed",
		slog.String("job_id", job.ID.String()),
		slog.Int64("record_id", record.ID),
		slog.String("status", string(status)),
	)
	return status
}

// attempt calls the gateway, converting a panic into an error.
func (w *workerUseCase) attempt(ctx context.Context, job *domain.DispatchJob) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gateway panic: %v", r)
		}
	}()
	return w.gateway.Send(ctx, job.Recipient, job.Body)
}
