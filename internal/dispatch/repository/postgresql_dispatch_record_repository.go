package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/dispatcher/internal/database"
	"github.com/allisson/dispatcher/internal/dispatch/domain"
	apperrors "github.com/allisson/dispatcher/internal/errors"
)

// PostgreSQLDispatchRecordRepository implements DispatchRecord persistence for PostgreSQL databases.
type PostgreSQLDispatchRecordRepository struct {
	db *sql.DB
}

// Append inserts a new record and sets its ID.
func (p *PostgreSQLDispatchRecordRepository) Append(ctx context.Context, record *domain.DispatchRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO dispatch_records (recipient, body, event_time, status)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`

	err := querier.QueryRowContext(
		ctx,
		query,
		record.Recipient,
		record.Body,
		record.EventTime.UTC(),
		string(record.Status),
	).Scan(&record.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to append dispatch record")
	}

	return nil
}

// Query returns every record matching the filter in insertion order.
func (p *PostgreSQLDispatchRecordRepository) Query(
	ctx context.Context,
	filter domain.RecordFilter,
) ([]*domain.DispatchRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query, args := buildRecordQuery(filter, dollarPlaceholder, func(t time.Time) any { return t })

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

// NewPostgreSQLDispatchRecordRepository creates a new PostgreSQL DispatchRecord repository instance.
func NewPostgreSQLDispatchRecordRepository(db *sql.DB) *PostgreSQLDispatchRecordRepository {
	return &PostgreSQLDispatchRecordRepository{db: db}
}
