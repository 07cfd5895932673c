// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/dispatcher/internal/errors"
)

// Public messages for errors whose details must not reach the client.
const (
	MessageQueueUnavailable = "Queue unavailable"
	MessageInternalError    = "Some Error Occurred"
	MessageNotFound         = "Not Found"
)

// HandleErrorGin maps domain errors to an envelope and writes it.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var message string

	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		message = err.Error()

	case apperrors.Is(err, apperrors.ErrUnavailable):
		statusCode = http.StatusServiceUnavailable
		message = MessageQueueUnavailable

	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = MessageNotFound

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		message = "A conflict occurred with existing data"

	default:
		// For unknown/internal errors, don't expose details to the client
		statusCode = http.StatusInternalServerError
		message = MessageInternalError
	}

	// Log the full error details (including wrapped errors)
	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.Any("error", err),
		)
	}

	NewEnvelope().Fail(statusCode, message).Respond(c)
}

// HandleBadRequestGin writes a 400 envelope for malformed query parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	NewEnvelope().Fail(http.StatusBadRequest, err.Error()).Respond(c)
}

// HandleValidationErrorGin writes a 422 envelope for request bodies that fail decoding or validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	NewEnvelope().Fail(http.StatusUnprocessableEntity, err.Error()).Respond(c)
}
