// Package repository provides persistence for the database-backed task queue.
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

// PostgreSQLQueuedJobRepository handles queued job persistence for PostgreSQL.
type PostgreSQLQueuedJobRepository struct {
	db *sql.DB
}

// NewPostgreSQLQueuedJobRepository creates a new PostgreSQLQueuedJobRepository.
func NewPostgreSQLQueuedJobRepository(db *sql.DB) *PostgreSQLQueuedJobRepository {
	return &PostgreSQLQueuedJobRepository{db: db}
}

// Create inserts a new pending job.
func (r *PostgreSQLQueuedJobRepository) Create(ctx context.Context, job *domain.QueuedJob) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO queued_jobs (id, queue, payload, status, attempts, claimed_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(ctx, query, job.ID, job.Queue, job.Payload, string(job.Status),
		job.Attempts, job.ClaimedAt, job.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create queued job")
	}
	return nil
}

// GetClaimable locks and returns the oldest job that is pending or whose lease expired
// before staleBefore. Must run inside a transaction. Returns ErrNotFound when the queue is empty.
func (r *PostgreSQLQueuedJobRepository) GetClaimable(
	ctx context.Context,
	queue string,
	staleBefore time.Time,
) (*domain.QueuedJob, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, queue, payload, status, attempts, claimed_at, created_at
			  FROM queued_jobs
			  WHERE queue = $1 AND (status = $2 OR (status = $3 AND claimed_at < $4))
			  ORDER BY created_at ASC
			  LIMIT 1
			  FOR UPDATE SKIP LOCKED`

	var (
		job    domain.QueuedJob
		status string
	)
	err := querier.QueryRowContext(
		ctx,
		query,
		queue,
		string(domain.QueuedJobStatusPending),
		string(domain.QueuedJobStatusClaimed),
		staleBefore.UTC(),
	).Scan(&job.ID, &job.Queue, &job.Payload, &status, &job.Attempts, &job.ClaimedAt, &job.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get claimable job")
	}
	job.Status = domain.QueuedJobStatus(status)

	return &job, nil
}

// MarkClaimed leases the job at the given time and bumps its attempt counter.
func (r *PostgreSQLQueuedJobRepository) MarkClaimed(ctx context.Context, id uuid.UUID, at time.Time) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE queued_jobs SET status = $1, attempts = attempts + 1, claimed_at = $2 WHERE id = $3`

	_, err := querier.ExecContext(ctx, query, string(domain.QueuedJobStatusClaimed), at.UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to claim queued job")
	}
	return nil
}

// Delete removes an acknowledged job.
func (r *PostgreSQLQueuedJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM queued_jobs WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete queued job")
	}
	return nil
}

// Release returns a claimed job to the pending state.
func (r *PostgreSQLQueuedJobRepository) Release(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE queued_jobs SET status = $1, claimed_at = NULL WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, string(domain.QueuedJobStatusPending), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to release queued job")
	}
	return nil
}
