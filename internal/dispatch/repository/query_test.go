package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
)

func identityTime(t time.Time) any { return t }

func TestBuildRecordQuery(t *testing.T) {
	recipient := "a@example.com"
	failure := domain.DispatchStatusFailure
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		filter        domain.RecordFilter
		placeholder   placeholderFunc
		expectedQuery string
		expectedArgs  []any
	}{
		{
			name:          "no filter",
			filter:        domain.RecordFilter{},
			placeholder:   dollarPlaceholder,
			expectedQuery: "SELECT id, recipient, body, event_time, status FROM dispatch_records ORDER BY id ASC",
		},
		{
			name:          "recipient only",
			filter:        domain.RecordFilter{Recipient: &recipient},
			placeholder:   dollarPlaceholder,
			expectedQuery: "SELECT id, recipient, body, event_time, status FROM dispatch_records WHERE recipient = $1 ORDER BY id ASC",
			expectedArgs:  []any{recipient},
		},
		{
			name:        "all predicates with dollar placeholders",
			filter:      domain.RecordFilter{Recipient: &recipient, Status: &failure, Start: &start, End: &end},
			placeholder: dollarPlaceholder,
			expectedQuery: "SELECT id, recipient, body, event_time, status FROM dispatch_records " +
				"WHERE recipient = $1 AND status = $2 AND event_time >= $3 AND event_time <= $4 ORDER BY id ASC",
			expectedArgs: []any{recipient, "failure", start, end},
		},
		{
			name:        "time range with question placeholders",
			filter:      domain.RecordFilter{Start: &start, End: &end},
			placeholder: questionPlaceholder,
			expectedQuery: "SELECT id, recipient, body, event_time, status FROM dispatch_records " +
				"WHERE event_time >= ? AND event_time <= ? ORDER BY id ASC",
			expectedArgs: []any{start, end},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildRecordQuery(tt.filter, tt.placeholder, identityTime)
			assert.Equal(t, tt.expectedQuery, query)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestBuildRecordQuery_NormalizesBoundsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	start := time.Date(2024, 1, 1, 2, 0, 0, 0, loc)

	_, args := buildRecordQuery(domain.RecordFilter{Start: &start}, questionPlaceholder, identityTime)

	bound := args[0].(time.Time)
	assert.Equal(t, time.UTC, bound.Location())
	assert.Equal(t, 0, bound.Hour())
}
