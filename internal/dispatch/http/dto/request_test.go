package dto

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
)

func TestSubmitDispatchRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   SubmitDispatchRequest
		shouldErr bool
		errField  string
	}{
		{
			name:    "valid",
			request: SubmitDispatchRequest{Recipient: "a@b.com", Body: "hello"},
		},
		{
			name:    "body at limit in multibyte characters",
			request: SubmitDispatchRequest{Recipient: "a@b.com", Body: strings.Repeat("ü", domain.MaxBodyLength)},
		},
		{
			name:      "missing recipient",
			request:   SubmitDispatchRequest{Body: "hello"},
			shouldErr: true,
			errField:  "recipient",
		},
		{
			name:      "blank recipient",
			request:   SubmitDispatchRequest{Recipient: "  ", Body: "hello"},
			shouldErr: true,
			errField:  "recipient",
		},
		{
			name: "recipient at limit",
			request: SubmitDispatchRequest{
				Recipient: strings.Repeat("a", domain.MaxRecipientLength-6) + "@x.com",
				Body:      "hello",
			},
		},
		{
			name: "recipient too long",
			request: SubmitDispatchRequest{
				Recipient: strings.Repeat("a", domain.MaxRecipientLength) + "@x.com",
				Body:      "hello",
			},
			shouldErr: true,
			errField:  "recipient",
		},
		{
			name:      "missing body",
			request:   SubmitDispatchRequest{Recipient: "a@b.com"},
			shouldErr: true,
			errField:  "body",
		},
		{
			name:      "body too long",
			request:   SubmitDispatchRequest{Recipient: "a@b.com", Body: strings.Repeat("x", domain.MaxBodyLength+1)},
			shouldErr: true,
			errField:  "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errField)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmitDispatchRequest_Normalize(t *testing.T) {
	req := SubmitDispatchRequest{Email: "a@b.com", Body: "hi"}
	req.Normalize()
	assert.Equal(t, "a@b.com", req.Recipient)

	req = SubmitDispatchRequest{Recipient: "r@b.com", Email: "a@b.com", Body: "hi"}
	req.Normalize()
	assert.Equal(t, "r@b.com", req.Recipient)
}

func TestListDispatchesRequest_ToFilter(t *testing.T) {
	t.Run("empty query applies no filter", func(t *testing.T) {
		filter, err := (&ListDispatchesRequest{}).ToFilter()
		require.NoError(t, err)
		assert.True(t, filter.IsEmpty())
	})

	t.Run("all filters", func(t *testing.T) {
		req := ListDispatchesRequest{
			Recipient:      "a@b.com",
			Status:         "success",
			StartTimestamp: "2024-01-01T00:00:00Z",
			EndTimestamp:   "2024-01-31 23:59:59",
		}

		filter, err := req.ToFilter()
		require.NoError(t, err)
		require.NotNil(t, filter.Recipient)
		assert.Equal(t, "a@b.com", *filter.Recipient)
		require.NotNil(t, filter.Status)
		assert.Equal(t, domain.DispatchStatusSuccess, *filter.Status)
		require.NotNil(t, filter.Start)
		assert.True(t, filter.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		require.NotNil(t, filter.End)
		assert.True(t, filter.End.Equal(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)))
	})

	t.Run("email alias", func(t *testing.T) {
		filter, err := (&ListDispatchesRequest{Email: "a@b.com"}).ToFilter()
		require.NoError(t, err)
		require.NotNil(t, filter.Recipient)
		assert.Equal(t, "a@b.com", *filter.Recipient)
	})

	errorTests := []struct {
		name     string
		request  ListDispatchesRequest
		expected error
	}{
		{"unknown status", ListDispatchesRequest{Status: "sent"}, domain.ErrInvalidStatus},
		{"bad start", ListDispatchesRequest{StartTimestamp: "01/02/2024"}, domain.ErrInvalidFilter},
		{"bad end", ListDispatchesRequest{EndTimestamp: "tomorrow"}, domain.ErrInvalidFilter},
		{
			"inverted range",
			ListDispatchesRequest{StartTimestamp: "2024-02-01", EndTimestamp: "2024-01-01"},
			domain.ErrInvalidTimeRange,
		},
	}

	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.request.ToFilter()
			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, domain.ErrInvalidFilter)
		})
	}
}
