// Package http provides the HTTP handlers for submitting messages and reading the dispatch history.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
	"github.com/allisson/dispatcher/internal/dispatch/http/dto"
	dispatchUseCase "github.com/allisson/dispatcher/internal/dispatch/usecase"
	apperrors "github.com/allisson/dispatcher/internal/errors"
	"github.com/allisson/dispatcher/internal/httputil"
	customValidation "github.com/allisson/dispatcher/internal/validation"
)

// Response messages.
const (
	MessageProcessInitiated = "Process Initiated"
	MessageSuccess          = "Success"
)

// DispatchHandler handles HTTP requests for the dispatch API.
type DispatchHandler struct {
	dispatchUseCase dispatchUseCase.DispatchUseCase
	logger          *slog.Logger
}

// NewDispatchHandler creates a new dispatch handler.
func NewDispatchHandler(useCase dispatchUseCase.DispatchUseCase, logger *slog.Logger) *DispatchHandler {
	return &DispatchHandler{
		dispatchUseCase: useCase,
		logger:          logger,
	}
}

// SubmitHandler accepts a message for asynchronous delivery.
// POST / with {"recipient": "...", "body": "..."}.
// Returns 200 "Process Initiated" once the job is enqueued.
func (h *DispatchHandler) SubmitHandler(c *gin.Context) {
	var req dto.SubmitDispatchRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	handle, err := h.dispatchUseCase.Submit(c.Request.Context(), req.Recipient, req.Body)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("dispatch job enqueued",
		slog.String("job_id", handle.String()),
		slog.String("recipient", req.Recipient),
	)

	httputil.NewEnvelope().Succeed(http.StatusOK, MessageProcessInitiated, "").Respond(c)
}

// ListHandler returns the dispatch history matching the query filters.
// GET /?recipient=&status=&start_timestamp=&end_timestamp=
func (h *DispatchHandler) ListHandler(c *gin.Context) {
	var req dto.ListDispatchesRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	filter, err := req.ToFilter()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	records, err := h.dispatchUseCase.List(c.Request.Context(), filter)
	if err != nil {
		if apperrors.Is(err, domain.ErrInvalidFilter) {
			httputil.HandleBadRequestGin(c, err, h.logger)
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.NewEnvelope().Succeed(http.StatusOK, MessageSuccess, dto.MapRecordsToListResponse(records)).Respond(c)
}
