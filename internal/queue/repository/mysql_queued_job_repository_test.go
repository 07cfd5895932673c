package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/dispatcher/internal/errors"
)

func TestMySQLQueuedJobRepository_CreateUsesBinaryID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLQueuedJobRepository(db)
	job := newPendingJob("mail", time.Now().UTC())
	rawID, err := job.ID.MarshalBinary()
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO queued_jobs")).
		WithArgs(rawID, "mail", job.Payload, "pending", 0, nil, job.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), job))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLQueuedJobRepository_GetClaimable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLQueuedJobRepository(db)
	id := uuid.Must(uuid.NewV7())
	rawID, err := id.MarshalBinary()
	require.NoError(t, err)
	claimedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")).
		WillReturnRows(sqlmock.NewRows(queuedJobColumns).
			AddRow(rawID, "mail", "{}", "claimed", 2, claimedAt, claimedAt))

	job, err := repo.GetClaimable(context.Background(), "mail", time.Now())
	require.NoError(t, err)
	assert.Equal(t, id, job.ID)
	assert.Equal(t, 2, job.Attempts)
	require.NotNil(t, job.ClaimedAt)
	assert.True(t, claimedAt.Equal(*job.ClaimedAt))
}

func TestMySQLQueuedJobRepository_GetClaimableError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLQueuedJobRepository(db)

	mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

	_, err = repo.GetClaimable(context.Background(), "mail", time.Now())
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
