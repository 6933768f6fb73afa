package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/id"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func serve(router *gin.Engine, method, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/test", nil)
	if remote != "" {
		req.RemoteAddr = remote
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	router := setupTestRouter()
	router.Use(CORS(DefaultCORSConfig()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	tests := []struct {
		name           string
		method         string
		origin         string
		wantStatus     int
		wantCORSHeader bool
	}{
		{
			name:           "simple GET request with origin",
			method:         "GET",
			origin:         "http://localhost:3000",
			wantStatus:     http.StatusOK,
			wantCORSHeader: true,
		},
		{
			name:           "preflight OPTIONS request",
			method:         "OPTIONS",
			origin:         "http://localhost:3000",
			wantStatus:     http.StatusNoContent,
			wantCORSHeader: true,
		},
		{
			name:           "no origin header",
			method:         "GET",
			wantStatus:     http.StatusOK,
			wantCORSHeader: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
				if tt.method == "OPTIONS" {
					req.Header.Set("Access-Control-Request-Method", "DELETE")
				}
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCORSHeader {
				assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	assert.Contains(t, cfg.AllowOrigins, "*")
	assert.Contains(t, cfg.AllowMethods, "GET")
	assert.Contains(t, cfg.AllowMethods, "DELETE")
	assert.Contains(t, cfg.AllowHeaders, RequestIDHeader)
	assert.Equal(t, 12*time.Hour, cfg.MaxAge)
}

func TestRateLimit(t *testing.T) {
	router := setupTestRouter()
	router.Use(RateLimit(RateLimitConfig{RequestsPerSecond: 1, Burst: 2}))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Burst capacity
	for i := 0; i < 2; i++ {
		w := serve(router, "GET", "192.168.1.1:1234")
		assert.Equal(t, http.StatusOK, w.Code, "request %d should succeed", i+1)
	}

	w := serve(router, "GET", "192.168.1.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestRateLimitDifferentClients(t *testing.T) {
	router := setupTestRouter()
	router.Use(RateLimit(RateLimitConfig{RequestsPerSecond: 1, Burst: 1}))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(router, "GET", "192.168.1.1:1234").Code)
	assert.Equal(t, http.StatusOK, serve(router, "GET", "192.168.1.2:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, "GET", "192.168.1.1:1234").Code)
}

func TestRateLimitEvictsIdleClients(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	set := newClientSet(RateLimitConfig{RequestsPerSecond: 1, Burst: 1, ClientTTL: time.Minute})
	set.now = func() time.Time { return now }

	assert.True(t, set.allow("a"))
	assert.True(t, set.allow("b"))
	assert.False(t, set.allow("a"))
	assert.Equal(t, 2, set.len())

	now = now.Add(2 * time.Minute)
	assert.True(t, set.allow("c"))
	assert.Equal(t, 1, set.len(), "idle clients should be evicted")

	// An evicted client starts with a fresh bucket.
	assert.True(t, set.allow("a"))
}

func TestGlobalRateLimit(t *testing.T) {
	router := setupTestRouter()
	router.Use(GlobalRateLimit(RateLimitConfig{RequestsPerSecond: 1, Burst: 2}))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(router, "GET", "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusOK, serve(router, "GET", "10.0.0.2:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, "GET", "10.0.0.3:1").Code)
}

func TestDefaultRateLimitConfig(t *testing.T) {
	cfg := DefaultRateLimitConfig()

	assert.Equal(t, 100, cfg.RequestsPerSecond)
	assert.Equal(t, 200, cfg.Burst)
	assert.Equal(t, DefaultClientTTL, cfg.ClientTTL)
}

func TestRequestID(t *testing.T) {
	router := setupTestRouter()
	router.Use(RequestID())

	var seen string
	router.GET("/test", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	t.Run("generated", func(t *testing.T) {
		w := serve(router, "GET", "")
		got := w.Header().Get(RequestIDHeader)
		require.NotEmpty(t, got)
		assert.Equal(t, got, seen)
		assert.True(t, strings.HasPrefix(got, id.RequestPrefix+"_"))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, "client-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "client-42", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "client-42", seen)
	})

	t.Run("oversized replaced", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.True(t, strings.HasPrefix(w.Header().Get(RequestIDHeader), id.RequestPrefix+"_"))
	})
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := &logging.Logger{Logger: zap.New(core)}

	router := setupTestRouter()
	router.Use(RequestID(), Logger(log))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	serve(router, "GET", "")

	entries := logs.FilterMessage("request rejected").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
	assert.Equal(t, "/test", fields["path"])
	assert.NotEmpty(t, fields["request_id"])
}

func BenchmarkRateLimit(b *testing.B) {
	router := setupTestRouter()
	router.Use(RateLimit(DefaultRateLimitConfig()))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "192.168.1.1:1234"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}
