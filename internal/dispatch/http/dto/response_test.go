package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
)

func TestMapRecordsToListResponse(t *testing.T) {
	t.Run("nil records produce an empty array", func(t *testing.T) {
		data := MapRecordsToListResponse(nil)

		b, err := json.Marshal(data)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(b))
	})

	t.Run("event time is rendered in utc", func(t *testing.T) {
		loc := time.FixedZone("BRT", -3*60*60)
		records := []*domain.DispatchRecord{
			{
				ID:        7,
				Recipient: "a@b.com",
				Body:      "hi",
				EventTime: time.Date(2024, 1, 1, 7, 0, 0, 0, loc),
				Status:    domain.DispatchStatusFailure,
			},
		}

		b, err := json.Marshal(MapRecordsToListResponse(records))
		require.NoError(t, err)
		assert.JSONEq(t,
			`[{"id":7,"recipient":"a@b.com","body":"hi","event_time":"2024-01-01T10:00:00Z","status":"failure"}]`,
			string(b),
		)
	})
}
