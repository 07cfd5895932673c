package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
	apperrors "github.com/allisson/dispatcher/internal/errors"
	"github.com/allisson/dispatcher/internal/queue"
)

// dispatchUseCase implements DispatchUseCase.
type dispatchUseCase struct {
	queue      queue.Queue
	recordRepo DispatchRecordRepository
}

// Submit validates recipient and body and enqueues a new job.
func (d *dispatchUseCase) Submit(ctx context.Context, recipient, body string) (domain.JobHandle, error) {
	if err := validateMessage(recipient, body); err != nil {
		return domain.JobHandle{}, err
	}

	handle, err := d.queue.Enqueue(ctx, domain.NewDispatchJob(recipient, body))
	if err != nil {
		return domain.JobHandle{}, err
	}

	return handle, nil
}

// List validates the filter and queries the outcome store.
func (d *dispatchUseCase) List(
	ctx context.Context,
	filter domain.RecordFilter,
) ([]*domain.DispatchRecord, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := d.recordRepo.Query(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list dispatch records")
	}

	return records, nil
}

func validateMessage(recipient, body string) error {
	if strings.TrimSpace(recipient) == "" {
		return domain.ErrMissingRecipient
	}
	if utf8.RuneCountInString(recipient) > domain.MaxRecipientLength {
		return domain.ErrRecipientTooLong
	}
	if strings.TrimSpace(body) == "" {
		return domain.ErrMissingBody
	}
	if utf8.RuneCountInString(body) > domain.MaxBodyLength {
		return domain.ErrBodyTooLong
	}
	return nil
}

// NewDispatchUseCase creates a new DispatchUseCase.
func NewDispatchUseCase(q queue.Queue, recordRepo DispatchRecordRepository) DispatchUseCase {
	return &dispatchUseCase{
		queue:      q,
		recordRepo: recordRepo,
	}
}
