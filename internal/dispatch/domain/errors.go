package domain

import (
	"github.com/allisson/dispatcher/internal/errors"
)

// Dispatch-specific error definitions.
var (
	// ErrMissingRecipient indicates a submit without a recipient.
	ErrMissingRecipient = errors.Wrap(errors.ErrInvalidInput, "recipient is required")

	// ErrRecipientTooLong indicates a recipient above MaxRecipientLength characters.
	ErrRecipientTooLong = errors.Wrap(errors.ErrInvalidInput, "recipient is too long")

	// ErrMissingBody indicates a submit without a body.
	ErrMissingBody = errors.Wrap(errors.ErrInvalidInput, "body is required")

	// ErrBodyTooLong indicates a body above MaxBodyLength characters.
	ErrBodyTooLong = errors.Wrap(errors.ErrInvalidInput, "body is too long")

	// ErrInvalidFilter indicates a malformed history query.
	ErrInvalidFilter = errors.Wrap(errors.ErrInvalidInput, "invalid filter")

	// ErrInvalidStatus indicates a status filter outside success/failure.
	ErrInvalidStatus = errors.Wrap(ErrInvalidFilter, "status must be success or failure")

	// ErrInvalidTimeRange indicates a start timestamp after the end timestamp.
	ErrInvalidTimeRange = errors.Wrap(ErrInvalidFilter, "start_timestamp must not be after end_timestamp")

	// ErrEnqueue indicates the task queue could not accept a job.
	ErrEnqueue = errors.Wrap(errors.ErrUnavailable, "failed to enqueue dispatch job")
)
