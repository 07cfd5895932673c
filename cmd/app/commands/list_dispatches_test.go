package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
	dispatchMocks "github.com/allisson/dispatcher/internal/dispatch/usecase/mocks"
)

func TestRunListDispatches(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	eventTime := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	records := []*domain.DispatchRecord{
		{
			ID:        1,
			Recipient: "a@example.com",
			Body:      "first",
			EventTime: eventTime,
			Status:    domain.DispatchStatusSuccess,
		},
		{
			ID:        2,
			Recipient: "a@example.com",
			Body:      strings.Repeat("x", 100),
			EventTime: eventTime.Add(time.Minute),
			Status:    domain.DispatchStatusFailure,
		},
	}

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &dispatchMocks.MockDispatchUseCase{}
		mockUseCase.On("List", ctx, domain.RecordFilter{}).Return(records, nil)

		var out bytes.Buffer
		err := RunListDispatches(ctx, mockUseCase, logger, &out, ListFlags{}, "text")

		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		require.Contains(t, lines[0], "RECIPIENT")
		require.Contains(t, lines[1], "success")
		require.Contains(t, lines[1], "2024-05-01T12:30:00Z")
		require.Contains(t, lines[2], "failure")
		require.Contains(t, lines[2], "...")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &dispatchMocks.MockDispatchUseCase{}
		mockUseCase.On("List", ctx, domain.RecordFilter{}).Return(records[:1], nil)

		var out bytes.Buffer
		err := RunListDispatches(ctx, mockUseCase, logger, &out, ListFlags{}, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"recipient": "a@example.com"`)
		require.Contains(t, out.String(), `"status": "success"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("empty-history", func(t *testing.T) {
		mockUseCase := &dispatchMocks.MockDispatchUseCase{}
		mockUseCase.On("List", ctx, domain.RecordFilter{}).Return([]*domain.DispatchRecord{}, nil)

		var text bytes.Buffer
		require.NoError(t, RunListDispatches(ctx, mockUseCase, logger, &text, ListFlags{}, "text"))
		require.Equal(t, "No dispatches found\n", text.String())

		var jsonOut bytes.Buffer
		require.NoError(t, RunListDispatches(ctx, mockUseCase, logger, &jsonOut, ListFlags{}, "json"))
		require.Equal(t, "[]\n", jsonOut.String())
	})

	t.Run("filters-are-parsed", func(t *testing.T) {
		mockUseCase := &dispatchMocks.MockDispatchUseCase{}
		mockUseCase.On("List", ctx, mock.MatchedBy(func(f domain.RecordFilter) bool {
			return f.Recipient != nil && *f.Recipient == "a@example.com" &&
				f.Status != nil && *f.Status == domain.DispatchStatusFailure &&
				f.Start != nil && f.Start.Equal(eventTime) &&
				f.End == nil
		})).Return(records[1:], nil)

		var out bytes.Buffer
		err := RunListDispatches(ctx, mockUseCase, logger, &out, ListFlags{
			Recipient:      "a@example.com",
			Status:         "failure",
			StartTimestamp: "2024-05-01 12:30:00",
		}, "text")

		require.NoError(t, err)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-status", func(t *testing.T) {
		mockUseCase := &dispatchMocks.MockDispatchUseCase{}

		err := RunListDispatches(ctx, mockUseCase, logger, &bytes.Buffer{}, ListFlags{Status: "pending"}, "text")

		require.Error(t, err)
		require.True(t, errors.Is(err, domain.ErrInvalidFilter))
		mockUseCase.AssertNotCalled(t, "List")
	})

	t.Run("invalid-timestamp", func(t *testing.T) {
		mockUseCase := &dispatchMocks.MockDispatchUseCase{}

		err := RunListDispatches(ctx, mockUseCase, logger, &bytes.Buffer{}, ListFlags{EndTimestamp: "yesterday"}, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "end_timestamp")
	})

	t.Run("use-case-error", func(t *testing.T) {
		mockUseCase := &dispatchMocks.MockDispatchUseCase{}
		mockUseCase.On("List", ctx, domain.RecordFilter{}).Return(nil, errors.New("database down"))

		err := RunListDispatches(ctx, mockUseCase, logger, &bytes.Buffer{}, ListFlags{}, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to list dispatches")
	})
}
