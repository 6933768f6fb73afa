package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordOperation("paste", StatusOK, time.Millisecond)
		m.RecordOperationError("paste", "not_found")
		m.IncMoveFallbacks()
		m.SetRecycleItems(3)
		m.RecordRecycleAction("restore")
		m.SetSessionsActive(1)
		NewTimer(m, "rename").Stop(StatusError)
	})
}

func TestRecordOperation(t *testing.T) {
	m := NewMetrics()
	m.RecordOperation("paste", StatusOK, time.Millisecond)
	m.RecordOperation("paste", StatusError, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationsTotal.WithLabelValues("paste", StatusOK)))
	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.TotalOperations)
	assert.Equal(t, int64(1), snap.FailedOperations)
}

func TestMetricsAreIsolated(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()
	a.IncMoveFallbacks()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.MoveFallbacks))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.MoveFallbacks))
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()
	r := gin.New()
	r.Use(Middleware(m))
	r.GET("/sessions/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/abc", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/sessions/:id", "204")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "explorer_http_requests_total")
}
