package dto

import (
	"time"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
)

// DispatchRecordResponse represents a dispatch record in API responses.
type DispatchRecordResponse struct {
	ID        int64     `json:"id"`
	Recipient string    `json:"recipient"`
	Body      string    `json:"body"`
	EventTime time.Time `json:"event_time"`
	Status    string    `json:"status"`
}

// MapRecordToResponse converts a domain record to an API response.
func MapRecordToResponse(record *domain.DispatchRecord) DispatchRecordResponse {
	return DispatchRecordResponse{
		ID:        record.ID,
		Recipient: record.Recipient,
		Body:      record.Body,
		EventTime: record.EventTime.UTC(),
		Status:    string(record.Status),
	}
}

// MapRecordsToListResponse converts domain records to the list payload. The
// result is never nil so an empty history serializes as [].
func MapRecordsToListResponse(records []*domain.DispatchRecord) []DispatchRecordResponse {
	data := make([]DispatchRecordResponse, 0, len(records))
	for _, record := range records {
		data = append(data, MapRecordToResponse(record))
	}
	return data
}
