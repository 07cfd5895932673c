package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/dispatcher/internal/database"
	"github.com/allisson/dispatcher/internal/dispatch/domain"
	apperrors "github.com/allisson/dispatcher/internal/errors"
)

// SQLiteDispatchRecordRepository implements DispatchRecord persistence for SQLite databases.
type SQLiteDispatchRecordRepository struct {
	db *sql.DB
}

// Append inserts a new record and sets its ID.
func (s *SQLiteDispatchRecordRepository) Append(ctx context.Context, record *domain.DispatchRecord) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO dispatch_records (recipient, body, event_time, status)
			  VALUES (?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		record.Recipient,
		record.Body,
		database.FormatSQLiteTime(record.EventTime),
		string(record.Status),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to append dispatch record")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get dispatch record id")
	}
	record.ID = id

	return nil
}

// Query returns every record matching the filter in insertion order.
func (s *SQLiteDispatchRecordRepository) Query(
	ctx context.Context,
	filter domain.RecordFilter,
) ([]*domain.DispatchRecord, error) {
	querier := database.GetTx(ctx, s.db)

	query, args := buildRecordQuery(filter, questionPlaceholder, func(t time.Time) any {
		return database.FormatSQLiteTime(t)
	})

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list dispatch records")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*domain.DispatchRecord, 0)
	for rows.Next() {
		var (
			record    domain.DispatchRecord
			eventTime string
			status    string
		)
		if err := rows.Scan(
			&record.ID,
			&record.Recipient,
			&record.Body,
			&eventTime,
			&status,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan dispatch record")
		}

		record.EventTime, err = database.ParseSQLiteTime(eventTime)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse dispatch record event time")
		}
		record.Status = domain.DispatchStatus(status)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate dispatch records")
	}

	return records, nil
}

// NewSQLiteDispatchRecordRepository creates a new SQLite DispatchRecord repository instance.
func NewSQLiteDispatchRecordRepository(db *sql.DB) *SQLiteDispatchRecordRepository {
	return &SQLiteDispatchRecordRepository{db: db}
}
