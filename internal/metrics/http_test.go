package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("http_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "http_test"))
	router.POST("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"succeeded": true})
	})
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"succeeded": false})
	})
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/", nil),
		httptest.NewRequest(http.MethodPost, "/", nil),
		httptest.NewRequest(http.MethodGet, "/", nil),
		httptest.NewRequest(http.MethodGet, "/boom", nil),
		httptest.NewRequest(http.MethodGet, "/does/not/exist/1", nil),
		httptest.NewRequest(http.MethodGet, "/does/not/exist/2", nil),
	} {
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	output := scrape(t, provider)
	assertMetricLine(t, output, `http_test_http_requests_total`, `method="POST"[^}]*route="/",status_class="2xx"`, `2`)
	assertMetricLine(t, output, `http_test_http_requests_total`, `method="GET"[^}]*route="/",status_class="4xx"`, `1`)
	assertMetricLine(t, output, `http_test_http_requests_total`, `route="/boom",status_class="5xx"`, `1`)
	assertMetricLine(t, output, `http_test_http_requests_total`, `route="unmatched",status_class="4xx"`, `2`)
	assertMetricLine(t, output, `http_test_http_request_duration_seconds_count`, `route="/"`, `2`)
	assertMetricLine(t, output, `http_test_http_response_size_bytes_count`, `method="POST"`, `2`)
	assert.Regexp(t, `http_test_http_requests_in_flight(\{[^}]*\})? 0`, output)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/", routeLabel("/"))
	assert.Equal(t, "/ready", routeLabel("/ready"))
	assert.Equal(t, unmatchedRoute, routeLabel(""))
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{
		http.StatusOK:                  "2xx",
		http.StatusNotFound:            "4xx",
		http.StatusUnprocessableEntity: "4xx",
		http.StatusServiceUnavailable:  "5xx",
	}
	for code, want := range tests {
		assert.Equal(t, want, statusClass(code), code)
	}
}
