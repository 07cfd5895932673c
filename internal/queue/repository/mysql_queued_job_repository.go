package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/dispatcher/internal/database"
	apperrors "github.com/allisson/dispatcher/internal/errors"
	"github.com/allisson/dispatcher/internal/queue/domain"
)

// MySQLQueuedJobRepository handles queued job persistence for MySQL 8.
// Job ids are stored as BINARY(16).
type MySQLQueuedJobRepository struct {
	db *sql.DB
}

// NewMySQLQueuedJobRepository creates a new MySQLQueuedJobRepository.
func NewMySQLQueuedJobRepository(db *sql.DB) *MySQLQueuedJobRepository {
	return &MySQLQueuedJobRepository{db: db}
}

// Create inserts a new pending job.
func (r *MySQLQueuedJobRepository) Create(ctx context.Context, job *domain.QueuedJob) error {
	querier := database.GetTx(ctx, r.db)

	id, err := job.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal queued job id")
	}

	query := `INSERT INTO queued_jobs (id, queue, payload, status, attempts, claimed_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, job.Queue, job.Payload, string(job.Status),
		job.Attempts, job.ClaimedAt, job.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create queued job")
	}
	return nil
}

// GetClaimable locks and returns the oldest job that is pending or whose lease expired
// before staleBefore. Must run inside a transaction. Returns ErrNotFound when the queue is empty.
func (r *MySQLQueuedJobRepository) GetClaimable(
	ctx context.Context,
	queue string,
	staleBefore time.Time,
) (*domain.QueuedJob, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, queue, payload, status, attempts, claimed_at, created_at
			  FROM queued_jobs
			  WHERE queue = ? AND (status = ? OR (status = ? AND claimed_at < ?))
			  ORDER BY created_at ASC
			  LIMIT 1
			  FOR UPDATE SKIP LOCKED`

	var (
		job    domain.QueuedJob
		id     []byte
		status string
	)
	err := querier.QueryRowContext(
		ctx,
		query,
		queue,
		string(domain.QueuedJobStatusPending),
		string(domain.QueuedJobStatusClaimed),
		staleBefore.UTC(),
	).Scan(&id, &job.Queue, &job.Payload, &status, &job.Attempts, &job.ClaimedAt, &job.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get claimable job")
	}

	if err := job.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal queued job id")
	}
	job.Status = domain.QueuedJobStatus(status)

	return &job, nil
}

// MarkClaimed leases the job at the given time and bumps its attempt counter.
func (r *MySQLQueuedJobRepository) MarkClaimed(ctx context.Context, id uuid.UUID, at time.Time) error {
	querier := database.GetTx(ctx, r.db)

	rawID, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal queued job id")
	}

	query := `UPDATE queued_jobs SET status = ?, attempts = attempts + 1, claimed_at = ? WHERE id = ?`

	_, err = querier.ExecContext(ctx, query, string(domain.QueuedJobStatusClaimed), at.UTC(), rawID)
	if err != nil {
		return apperrors.Wrap(err, "failed to claim queued job")
	}
	return nil
}

// Delete removes an acknowledged job.
func (r *MySQLQueuedJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	rawID, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal queued job id")
	}

	_, err = querier.ExecContext(ctx, `DELETE FROM queued_jobs WHERE id = ?`, rawID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete queued job")
	}
	return nil
}

// Release returns a claimed job to the pending state.
func (r *MySQLQueuedJobRepository) Release(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	rawID, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal queued job id")
	}

	query := `UPDATE queued_jobs SET status = ?, claimed_at = NULL WHERE id = ?`

	_, err = querier.ExecContext(ctx, query, string(domain.QueuedJobStatusPending), rawID)
	if err != nil {
		return apperrors.Wrap(err, "failed to release queued job")
	}
	return nil
}
