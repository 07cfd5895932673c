package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/dispatcher/internal/database"
	"github.com/allisson/dispatcher/internal/dispatch/domain"
	apperrors "github.com/allisson/dispatcher/internal/errors"
)

// MySQLDispatchRecordRepository implements DispatchRecord persistence for MySQL databases.
// The connection string must enable parseTime so DATETIME columns scan into time.Time.
type MySQLDispatchRecordRepository struct {
	db *sql.DB
}

// Append inserts a new record and sets its ID.
func (m *MySQLDispatchRecordRepository) Append(ctx context.Context, record *domain.DispatchRecord) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO dispatch_records (recipient, body, event_time, status)
			  VALUES (?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		record.Recipient,
		record.Body,
		record.EventTime.UTC(),
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
func (m *MySQLDispatchRecordRepository) Query(
	ctx context.Context,
	filter domain.RecordFilter,
) ([]*domain.DispatchRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query, args := buildRecordQuery(filter, questionPlaceholder, func(t time.Time) any { return t })

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
			record domain.DispatchRecord
			status string
		)
		if err := rows.Scan(
			&record.ID,
			&record.Recipient,
			&record.Body,
			&record.EventTime,
			&status,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan dispatch record")
		}
		record.EventTime = record.EventTime.UTC()
		record.Status = domain.DispatchStatus(status)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate dispatch records")
	}

	return records, nil
}

// NewMySQLDispatchRecordRepository creates a new MySQL DispatchRecord repository instance.
func NewMySQLDispatchRecordRepository(db *sql.DB) *MySQLDispatchRecordRepository {
	return &MySQLDispatchRecordRepository{db: db}
}
