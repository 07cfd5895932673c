package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		enabled bool
		origins string
		wantNil bool
	}{
		{name: "disabled", enabled: false, origins: "https://example.com", wantNil: true},
		{name: "enabled without origins", enabled: true, origins: "", wantNil: true},
		{name: "only separators", enabled: true, origins: " , ,", wantNil: true},
		{name: "only invalid origins", enabled: true, origins: "example.com,ftp://example.com", wantNil: true},
		{name: "comma separated", enabled: true, origins: "https://app.example.com,https://admin.example.com"},
		{name: "wildcard", enabled: true, origins: "*"},
		{name: "mixed valid and invalid", enabled: true, origins: "https://app.example.com, not-an-origin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := createCORSMiddleware(tt.enabled, tt.origins, logger)
			if tt.wantNil {
				assert.Nil(t, middleware)
			} else {
				assert.NotNil(t, middleware)
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	origins, rejected := parseOrigins("")
	assert.Empty(t, origins)
	assert.Empty(t, rejected)

	origins, rejected = parseOrigins(" https://app.example.com/ , http://localhost:3000 ,*")
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:3000", "*"}, origins)
	assert.Empty(t, rejected)

	origins, rejected = parseOrigins("app.example.com,https://app.example.com/path,https://ok.example.com")
	assert.Equal(t, []string{"https://ok.example.com"}, origins)
	assert.Equal(t, []string{"app.example.com", "https://app.example.com/path"}, rejected)
}

func TestCORSIntegration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newRouter := func(enabled bool) *gin.Engine {
		router := gin.New()
		if middleware := createCORSMiddleware(enabled, "https://dashboard.example.com", logger); middleware != nil {
			router.Use(middleware)
		}
		router.POST("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		return router
	}

	t.Run("preflight allowed for configured origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://dashboard.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		newRouter(true).ServeHTTP(w, req)

		assert.Equal(t, "https://dashboard.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("no headers when disabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Origin", "https://dashboard.example.com")
		newRouter(false).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin", func(t *testing.T) {
		router := gin.New()
		router.Use(createCORSMiddleware(true, "*", logger))
		router.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://anywhere.example.org")
		router.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
