// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"fmt"

	validation "github.com/jellydator/validation"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
	"github.com/allisson/dispatcher/internal/httputil"
	customValidation "github.com/allisson/dispatcher/internal/validation"
)

// SubmitDispatchRequest contains the message to send. Email is accepted as an
// alias for Recipient.
type SubmitDispatchRequest struct {
	Recipient string `json:"recipient"`
	Email     string `json:"email,omitempty"`
	Body      string `json:"body"`
}

// Normalize folds the Email alias into Recipient.
func (r *SubmitDispatchRequest) Normalize() {
	if r.Recipient == "" {
		r.Recipient = r.Email
	}
}

// Validate checks if the submit request is valid.
func (r *SubmitDispatchRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Recipient,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, domain.MaxRecipientLength),
		),
		validation.Field(&r.Body,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, domain.MaxBodyLength),
		),
	)
}

// ListDispatchesRequest holds the history filters read from the query string.
// Empty values mean the filter is not applied.
type ListDispatchesRequest struct {
	Recipient      string `form:"recipient"`
	Email          string `form:"email"`
	Status         string `form:"status"`
	StartTimestamp string `form:"start_timestamp"`
	EndTimestamp   string `form:"end_timestamp"`
}

// ToFilter converts the query into a RecordFilter. Every error wraps domain.ErrInvalidFilter.
func (r *ListDispatchesRequest) ToFilter() (domain.RecordFilter, error) {
	var filter domain.RecordFilter

	recipient := r.Recipient
	if recipient == "" {
		recipient = r.Email
	}
	if recipient != "" {
		filter.Recipient = &recipient
	}

	if r.Status != "" {
		status, err := domain.ParseDispatchStatus(r.Status)
		if err != nil {
			return domain.RecordFilter{}, err
		}
		filter.Status = &status
	}

	if r.StartTimestamp != "" {
		start, err := httputil.ParseTimestamp(r.StartTimestamp)
		if err != nil {
			return domain.RecordFilter{}, fmt.Errorf("%w: start_timestamp: %w", domain.ErrInvalidFilter, err)
		}
		filter.Start = &start
	}

	if r.EndTimestamp != "" {
		end, err := httputil.ParseTimestamp(r.EndTimestamp)
		if err != nil {
			return domain.RecordFilter{}, fmt.Errorf("%w: end_timestamp: %w", domain.ErrInvalidFilter, err)
		}
		filter.End = &end
	}

	if err := filter.Validate(); err != nil {
		return domain.RecordFilter{}, err
	}

	return filter, nil
}
