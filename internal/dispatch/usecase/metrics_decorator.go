package usecase

import (
	"context"
	"time"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
	apperrors "github.com/allisson/dispatcher/internal/errors"
	"github.com/allisson/dispatcher/internal/metrics"
)

// dispatchUseCaseWithMetrics decorates DispatchUseCase with metrics instrumentation.
type dispatchUseCaseWithMetrics struct {
	next    DispatchUseCase
	metrics metrics.DispatchMetrics
}

// NewDispatchUseCaseWithMetrics wraps a DispatchUseCase with metrics recording.
func NewDispatchUseCaseWithMetrics(useCase DispatchUseCase, m metrics.DispatchMetrics) DispatchUseCase {
	return &dispatchUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (d *dispatchUseCaseWithMetrics) Submit(
	ctx context.Context,
	recipient, body string,
) (domain.JobHandle, error) {
	start := time.Now()
	handle, err := d.next.Submit(ctx, recipient, body)

	d.metrics.RecordSubmit(ctx, submitOutcome(err), time.Since(start))

	return handle, err
}

func (d *dispatchUseCaseWithMetrics) List(
	ctx context.Context,
	filter domain.RecordFilter,
) ([]*domain.DispatchRecord, error) {
	start := time.Now()
	records, err := d.next.List(ctx, filter)

	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		outcome = metrics.OutcomeInvalid
	default:
		outcome = metrics.OutcomeError
	}
	d.metrics.RecordHistoryQuery(ctx, outcome, !filter.IsEmpty(), len(records), time.Since(start))

	return records, err
}

func submitOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeAccepted
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return metrics.OutcomeInvalid
	case apperrors.Is(err, apperrors.ErrUnavailable):
		return metrics.OutcomeUnavailable
	default:
		return metrics.OutcomeError
	}
}
