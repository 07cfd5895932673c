package queue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/dispatcher/internal/database"
	"github.com/allisson/dispatcher/internal/dispatch/domain"
	apperrors "github.com/allisson/dispatcher/internal/errors"
	queueDomain "github.com/allisson/dispatcher/internal/queue/domain"
)

// QueuedJobRepository defines queued job persistence used by DatabaseQueue.
type QueuedJobRepository interface {
	Create(ctx context.Context, job *queueDomain.QueuedJob) error
	GetClaimable(ctx context.Context, queue string, staleBefore time.Time) (*queueDomain.QueuedJob, error)
	MarkClaimed(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	Release(ctx context.Context, id uuid.UUID) error
}

// DatabaseConfig holds DatabaseQueue settings.
type DatabaseConfig struct {
	Name              string
	PollInterval      time.Duration
	VisibilityTimeout time.Duration
}

// DatabaseQueue is a Queue stored in the application database. Jobs are claimed
// with a lease; a claimed job that is neither acked nor nacked before the
// visibility timeout becomes claimable again.
type DatabaseQueue struct {
	config    DatabaseConfig
	txManager database.TxManager
	repo      QueuedJobRepository
	closed    chan struct{}
	closeOnce sync.Once
}

// NewDatabaseQueue creates a new DatabaseQueue.
func NewDatabaseQueue(
	config DatabaseConfig,
	txManager database.TxManager,
	repo QueuedJobRepository,
) *DatabaseQueue {
	return &DatabaseQueue{
		config:    config,
		txManager: txManager,
		repo:      repo,
		closed:    make(chan struct{}),
	}
}

// Enqueue inserts the job as a pending row.
func (q *DatabaseQueue) Enqueue(ctx context.Context, job *domain.DispatchJob) (domain.JobHandle, error) {
	payload, err := EncodeJob(job)
	if err != nil {
		return domain.JobHandle{}, enqueueError(err)
	}

	row := &queueDomain.QueuedJob{
		ID:        job.ID,
		Queue:     q.config.Name,
		Payload:   string(payload),
		Status:    queueDomain.QueuedJobStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := q.repo.Create(ctx, row); err != nil {
		return domain.JobHandle{}, enqueueError(err)
	}

	return domain.JobHandle{ID: job.ID}, nil
}

// Dequeue polls until a job can be claimed.
func (q *DatabaseQueue) Dequeue(ctx context.Context) (*Delivery, error) {
	for {
		select {
		case <-q.closed:
			return nil, ErrClosed
		default:
		}

		job, err := q.claim(ctx)
		if err == nil {
			return q.delivery(job), nil
		}
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.closed:
			return nil, ErrClosed
		case <-time.After(q.config.PollInterval):
		}
	}
}

// Close stops pending Dequeue calls. The database handle is owned by the caller.
func (q *DatabaseQueue) Close() error {
	q.closeOnce.Do(func() {
		close(q.closed)
	})
	return nil
}

func (q *DatabaseQueue) claim(ctx context.Context) (*queueDomain.QueuedJob, error) {
	var claimed *queueDomain.QueuedJob

	err := q.txManager.WithTx(ctx, func(ctx context.Context) error {
		now := time.Now().UTC()
		job, err := q.repo.GetClaimable(ctx, q.config.Name, now.Add(-q.config.VisibilityTimeout))
		if err != nil {
			return err
		}
		if err := q.repo.MarkClaimed(ctx, job.ID, now); err != nil {
			return err
		}
		claimed = job
		return nil
	})
	if err != nil {
		return nil, err
	}

	return claimed, nil
}

func (q *DatabaseQueue) delivery(job *queueDomain.QueuedJob) *Delivery {
	return NewDelivery(
		[]byte(job.Payload),
		func(ctx context.Context) error {
			return q.repo.Delete(ctx, job.ID)
		},
		func(ctx context.Context) error {
			return q.repo.Release(ctx, job.ID)
		},
	)
}
