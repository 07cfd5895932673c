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

// SQLiteQueuedJobRepository handles queued job persistence for SQLite.
// SQLite has no row locks; claims are serialized by the single pooled connection.
type SQLiteQueuedJobRepository struct {
	db *sql.DB
}

// NewSQLiteQueuedJobRepository creates a new SQLiteQueuedJobRepository.
func NewSQLiteQueuedJobRepository(db *sql.DB) *SQLiteQueuedJobRepository {
	return &SQLiteQueuedJobRepository{db: db}
}

// Create inserts a new pending job.
func (r *SQLiteQueuedJobRepository) Create(ctx context.Context, job *domain.QueuedJob) error {
	querier := database.GetTx(ctx, r.db)

	var claimedAt *string
	if job.ClaimedAt != nil {
		formatted := database.FormatSQLiteTime(*job.ClaimedAt)
		claimedAt = &formatted
	}

	query := `INSERT INTO queued_jobs (id, queue, payload, status, attempts, claimed_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(ctx, query, job.ID.String(), job.Queue, job.Payload, string(job.Status),
		job.Attempts, claimedAt, database.FormatSQLiteTime(job.CreatedAt))
	if err != nil {
		return apperrors.Wrap(err, "failed to create queued job")
	}
	return nil
}

// GetClaimable returns the oldest job that is pending or whose lease expired before
// staleBefore. Returns ErrNotFound when the queue is empty.
func (r *SQLiteQueuedJobRepository) GetClaimable(
	ctx context.Context,
	queue string,
	staleBefore time.Time,
) (*domain.QueuedJob, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, queue, payload, status, attempts, claimed_at, created_at
			  FROM queued_jobs
			  WHERE queue = ? AND (status = ? OR (status = ? AND claimed_at < ?))
			  ORDER BY created_at ASC
			  LIMIT 1`

	var (
		job       domain.QueuedJob
		id        string
		status    string
		claimedAt sql.NullString
		createdAt string
	)
	err := querier.QueryRowContext(
		ctx,
		query,
		queue,
		string(domain.QueuedJobStatusPending),
		string(domain.QueuedJobStatusClaimed),
		database.FormatSQLiteTime(staleBefore),
	).Scan(&id, &job.Queue, &job.Payload, &status, &job.Attempts, &claimedAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get claimable job")
	}

	if job.ID, err = uuid.Parse(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse queued job id")
	}
	if job.CreatedAt, err = database.ParseSQLiteTime(createdAt); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse queued job created_at")
	}
	if claimedAt.Valid {
		t, err := database.ParseSQLiteTime(claimedAt.String)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse queued job claimed_at")
		}
		job.ClaimedAt = &t
	}
	job.Status = domain.QueuedJobStatus(status)

	return &job, nil
}

// MarkClaimed leases the job at the given time and bumps its attempt counter.
func (r *SQLiteQueuedJobRepository) MarkClaimed(ctx context.Context, id uuid.UUID, at time.Time) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE queued_jobs SET status = ?, attempts = attempts + 1, claimed_at = ? WHERE id = ?`

	_, err := querier.ExecContext(
		ctx,
		query,
		string(domain.QueuedJobStatusClaimed),
		database.FormatSQLiteTime(at),
		id.String(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to claim queued job")
	}
	return nil
}

// Delete removes an acknowledged job.
func (r *SQLiteQueuedJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM queued_jobs WHERE id = ?`, id.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to delete queued job")
	}
	return nil
}

// Release returns a claimed job to the pending state.
func (r *SQLiteQueuedJobRepository) Release(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE queued_jobs SET status = ?, claimed_at = NULL WHERE id = ?`

	_, err := querier.ExecContext(ctx, query, string(domain.QueuedJobStatusPending), id.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to release queued job")
	}
	return nil
}
