package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/dispatcher/internal/errors"
)

func TestParseDispatchStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected DispatchStatus
		wantErr  bool
	}{
		{raw: "success", expected: DispatchStatusSuccess},
		{raw: "failure", expected: DispatchStatusFailure},
		{raw: "Success", wantErr: true},
		{raw: "pending", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			status, err := ParseDispatchStatus(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestRecordFilter_Validate(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	bogus := DispatchStatus("bounced")
	success := DispatchStatusSuccess
	recipient := "a@example.com"

	tests := []struct {
		name    string
		filter  RecordFilter
		wantErr error
	}{
		{name: "empty filter", filter: RecordFilter{}},
		{
			name:   "all predicates",
			filter: RecordFilter{Recipient: &recipient, Status: &success, Start: &early, End: &late},
		},
		{name: "equal bounds", filter: RecordFilter{Start: &early, End: &early}},
		{name: "unknown status", filter: RecordFilter{Status: &bogus}, wantErr: ErrInvalidStatus},
		{name: "inverted range", filter: RecordFilter{Start: &late, End: &early}, wantErr: ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRecordFilter_IsEmpty(t *testing.T) {
	assert.True(t, RecordFilter{}.IsEmpty())

	recipient := "a@example.com"
	assert.False(t, RecordFilter{Recipient: &recipient}.IsEmpty())
}

func TestNewDispatchJob(t *testing.T) {
	before := time.Now().UTC()
	job := NewDispatchJob("a@example.com", "hello")

	assert.Equal(t, "a@example.com", job.Recipient)
	assert.Equal(t, "hello", job.Body)
	assert.Equal(t, 7, int(job.ID.Version()))
	assert.False(t, job.EnqueuedAt.Before(before))
	assert.Equal(t, time.UTC, job.EnqueuedAt.Location())

	other := NewDispatchJob("a@example.com", "hello")
	assert.NotEqual(t, job.ID, other.ID)
}

func TestErrEnqueueIsUnavailable(t *testing.T) {
	assert.ErrorIs(t, ErrEnqueue, apperrors.ErrUnavailable)
	assert.ErrorIs(t, ErrBodyTooLong, apperrors.ErrInvalidInput)
	assert.ErrorIs(t, ErrRecipientTooLong, apperrors.ErrInvalidInput)
}

func TestFilterErrorsAreInvalidFilter(t *testing.T) {
	assert.ErrorIs(t, ErrInvalidStatus, ErrInvalidFilter)
	assert.ErrorIs(t, ErrInvalidTimeRange, ErrInvalidFilter)
	assert.NotErrorIs(t, ErrBodyTooLong, ErrInvalidFilter)
}
