// Package usecase implements the dispatch pipeline: submitting messages to the task
// queue, executing them in background workers and reading back the outcome history.
package usecase

import (
	"context"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
)

// DispatchRecordRepository defines the append-only outcome store.
type DispatchRecordRepository interface {
	Append(ctx context.Context, record *domain.DispatchRecord) error
	Query(ctx context.Context, filter domain.RecordFilter) ([]*domain.DispatchRecord, error)
}

// DeliveryGateway performs a single delivery attempt.
type DeliveryGateway interface {
	Send(ctx context.Context, recipient, body string) error
}

// DispatchUseCase defines the submit and history operations exposed to callers.
type DispatchUseCase interface {
	// Submit validates the message and enqueues it. Nothing is enqueued when
	// validation fails.
	Submit(ctx context.Context, recipient, body string) (domain.JobHandle, error)
	// List returns the records matching filter in insertion order.
	List(ctx context.Context, filter domain.RecordFilter) ([]*domain.DispatchRecord, error)
}

// WorkerUseCase defines the background execution of queued jobs.
type WorkerUseCase interface {
	// Start runs the worker loops until ctx is cancelled or the queue is closed.
	Start(ctx context.Context) error
	// ProcessJob makes one delivery attempt and persists its outcome.
	ProcessJob(ctx context.Context, job *domain.DispatchJob) domain.DispatchStatus
}
