package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewEnvelope(t *testing.T) {
	e := NewEnvelope()

	assert.False(t, e.Succeeded)
	assert.Equal(t, 404, e.Code)
	assert.Equal(t, "", e.Message)
	assert.Equal(t, "", e.Data)
}

func TestEnvelope_Succeed(t *testing.T) {
	e := NewEnvelope().Succeed(http.StatusOK, "Success", []int{1, 2})

	assert.True(t, e.Succeeded)
	assert.Equal(t, 200, e.Code)
	assert.Equal(t, "Success", e.Message)
	assert.Equal(t, []int{1, 2}, e.Data)
}

func TestEnvelope_Fail(t *testing.T) {
	e := NewEnvelope().Succeed(http.StatusOK, "Success", "payload")
	e.Fail(http.StatusServiceUnavailable, "Queue unavailable")

	assert.False(t, e.Succeeded)
	assert.Equal(t, 503, e.Code)
	assert.Equal(t, "Queue unavailable", e.Message)
	assert.Equal(t, "", e.Data)
}

func TestEnvelope_Respond(t *testing.T) {
	tests := []struct {
		name         string
		envelope     *Envelope
		expectedCode int
		expectedBody string
	}{
		{
			name:         "default envelope",
			envelope:     NewEnvelope(),
			expectedCode: http.StatusNotFound,
			expectedBody: `{"succeeded":false,"code":404,"message":"","data":""}`,
		},
		{
			name:         "submit accepted",
			envelope:     NewEnvelope().Succeed(http.StatusOK, "Process Initiated", ""),
			expectedCode: http.StatusOK,
			expectedBody: `{"succeeded":true,"code":200,"message":"Process Initiated","data":""}`,
		},
		{
			name:         "empty list",
			envelope:     NewEnvelope().Succeed(http.StatusOK, "Success", []string{}),
			expectedCode: http.StatusOK,
			expectedBody: `{"succeeded":true,"code":200,"message":"Success","data":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.envelope.Respond(c)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
