package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics. Every Metrics owns its own registry,
// so tests and embedded engines can create as many as they like.
//
// All record methods are safe on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// File operation metrics
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	OperationErrors   *prometheus.CounterVec
	MoveFallbacks     prometheus.Counter

	// Recycle bin metrics
	RecycleItems   prometheus.Gauge
	RecycleActions *prometheus.CounterVec

	// Session metrics
	SessionsActive prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for the JSON API.
type Snapshot struct {
	TotalRequests    int64   `json:"total_requests"`
	TotalErrors      int64   `json:"total_errors"`
	TotalOperations  int64   `json:"total_operations"`
	FailedOperations int64   `json:"failed_operations"`
	RecycleItems     int64   `json:"recycle_items"`
	ActiveSessions   int64   `json:"active_sessions"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
}

// NewMetrics creates a new metrics collector with a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// File operation metrics
		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_fileops_total",
				Help: "Total number of file operations by kind and outcome",
			},
			[]string{"op", "status"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "explorer_fileops_duration_seconds",
				Help:    "File operation duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"op"},
		),
		OperationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_fileops_errors_total",
				Help: "Total number of failed file operations by error kind",
			},
			[]string{"op", "kind"},
		),
		MoveFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "explorer_move_fallbacks_total",
				Help: "Moves that fell back to copy then delete",
			},
		),

		// Recycle bin metrics
		RecycleItems: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "explorer_recycle_items",
				Help: "Number of items in the recycle bin",
			},
		),
		RecycleActions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_recycle_actions_total",
				Help: "Recycle bin actions",
			},
			[]string{"action"},
		),

		// Session metrics
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "explorer_sessions_active",
				Help: "Number of open explorer sessions",
			},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "explorer_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "explorer_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "explorer_uptime_seconds",
			Help: "Explorer uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordOperation records one file operation.
func (m *Metrics) RecordOperation(op, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.OperationsTotal.WithLabelValues(op, status).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalOperations++
	if status != StatusOK {
		m.snapshot.FailedOperations++
	}
	m.mu.Unlock()
}

// RecordOperationError records a failed operation by error kind.
func (m *Metrics) RecordOperationError(op, kind string) {
	if m == nil {
		return
	}
	m.OperationErrors.WithLabelValues(op, kind).Inc()
}

// IncMoveFallbacks counts a copy-then-delete move.
func (m *Metrics) IncMoveFallbacks() {
	if m == nil {
		return
	}
	m.MoveFallbacks.Inc()
}

// SetRecycleItems sets the number of items in the recycle bin.
func (m *Metrics) SetRecycleItems(count int) {
	if m == nil {
		return
	}
	m.RecycleItems.Set(float64(count))
	m.mu.Lock()
	m.snapshot.RecycleItems = int64(count)
	m.mu.Unlock()
}

// RecordRecycleAction counts a recycle bin action.
func (m *Metrics) RecordRecycleAction(action string) {
	if m == nil {
		return
	}
	m.RecycleActions.WithLabelValues(action).Inc()
}

// SetSessionsActive sets the number of active sessions
func (m *Metrics) SetSessionsActive(count int) {
	if m == nil {
		return
	}
	m.SessionsActive.Set(float64(count))
	m.mu.Lock()
	m.snapshot.ActiveSessions = int64(count)
	m.mu.Unlock()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
}

// Snapshot returns the current values for the JSON API.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.snapshot
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
