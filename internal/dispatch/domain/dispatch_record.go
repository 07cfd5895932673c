// Package domain defines the core dispatch entities: the persisted outcome of a
// delivery attempt and the ephemeral job that produces it.
package domain

import (
	"time"
)

// MaxBodyLength is the maximum number of characters accepted in a message body.
const MaxBodyLength = 5000

// MaxRecipientLength matches the recipient column width of the outcome store.
const MaxRecipientLength = 320

// DispatchStatus is the outcome of a single delivery attempt.
type DispatchStatus string

const (
	DispatchStatusSuccess DispatchStatus = "success"
	DispatchStatusFailure DispatchStatus = "failure"
)

// IsValid reports whether s is one of the known statuses.
func (s DispatchStatus) IsValid() bool {
	return s == DispatchStatusSuccess || s == DispatchStatusFailure
}

// ParseDispatchStatus converts a raw string into a DispatchStatus.
func ParseDispatchStatus(raw string) (DispatchStatus, error) {
	status := DispatchStatus(raw)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// DispatchRecord is the durable, append-only record of one completed dispatch attempt.
// Records are never updated or deleted once written.
type DispatchRecord struct {
	// ID is assigned by the store and grows with insertion order.
	ID int64
	// Recipient is the address the message was sent to.
	Recipient string
	// Body is the message content.
	Body string
	// EventTime is the UTC completion time of the attempt.
	EventTime time.Time
	// Status is the outcome of the attempt.
	Status DispatchStatus
}

// RecordFilter holds the optional, conjunctive predicates applied to the record history.
// A nil field means the predicate is not applied.
type RecordFilter struct {
	Recipient *string
	Status    *DispatchStatus
	Start     *time.Time
	End       *time.Time
}

// IsEmpty reports whether no predicate is set.
func (f RecordFilter) IsEmpty() bool {
	return f.Recipient == nil && f.Status == nil && f.Start == nil && f.End == nil
}

// Validate checks the filter for contradictory or malformed values.
func (f RecordFilter) Validate() error {
	if f.Status != nil && !f.Status.IsValid() {
		return ErrInvalidStatus
	}
	if f.Start != nil && f.End != nil && f.Start.After(*f.End) {
		return ErrInvalidTimeRange
	}
	return nil
}
