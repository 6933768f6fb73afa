package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/fileops"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/recycle"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/session"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/vfs"
)

// Version is reported by the root endpoint.
const Version = "0.1.0"

// sessionKey is the gin context key of the resolved session.
const sessionKey = "explorer_session"

// DriveLister lists mounted drives.
type DriveLister interface {
	Drives(ctx context.Context) ([]vfs.Drive, error)
}

// Options wires Handlers.
type Options struct {
	Sessions   *session.Manager
	Drives     DriveLister
	Recycle    *recycle.Manager
	Metrics    *monitoring.Metrics
	Logger     *logging.Logger
	SniffLimit int64
	RootLabel  string
}

// Handlers contains all HTTP handlers
type Handlers struct {
	sessions   *session.Manager
	drives     DriveLister
	recycle    *recycle.Manager
	metrics    *monitoring.Metrics
	logger     *logging.Logger
	sniffLimit int64
	rootLabel  string
	started    time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(opts Options) *Handlers {
	h := &Handlers{
		sessions:   opts.Sessions,
		drives:     opts.Drives,
		recycle:    opts.Recycle,
		metrics:    opts.Metrics,
		logger:     opts.Logger.OrNop().Named("http"),
		sniffLimit: opts.SniffLimit,
		rootLabel:  opts.RootLabel,
		started:    time.Now(),
	}
	if h.sniffLimit == 0 {
		h.sniffLimit = fileops.DefaultSniffLimit
	}
	if h.rootLabel == "" {
		h.rootLabel = paths.DefaultRootLabel
	}
	return h
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "explorer",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":         "healthy",
		"sessions":       h.sessions.Count(),
		"uptime_seconds": time.Since(h.started).Seconds(),
	}
	if h.recycle != nil {
		empty, err := h.recycle.IsEmpty(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
		body["recycle_bin"] = gin.H{"root": h.recycle.Root(), "empty": empty}
	}
	c.JSON(http.StatusOK, body)
}

// Drives lists mounted drives with their usage
func (h *Handlers) Drives(c *gin.Context) {
	drives, err := h.drives.Drives(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"root":   h.rootLabel,
		"drives": drives,
	})
}

// Metrics serves the Prometheus exposition format
func (h *Handlers) Metrics(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// MetricsJSON serves a summary of the counters for dashboards
func (h *Handlers) MetricsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now(),
		"summary":   h.metrics.Snapshot(),
	})
}

// CreateSession opens an explorer window
func (h *Handlers) CreateSession(c *gin.Context) {
	s := h.sessions.Create()
	c.JSON(http.StatusCreated, s.Info())
}

// ListSessions lists open windows
func (h *Handlers) ListSessions(c *gin.Context) {
	infos := h.sessions.List()
	if infos == nil {
		infos = []session.Info{}
	}
	c.JSON(http.StatusOK, gin.H{
		"sessions": infos,
		"count":    len(infos),
	})
}

// GetSession returns one window's summary
func (h *Handlers) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, current(c).Info())
}

// CloseSession closes a window and its event stream
func (h *Handlers) CloseSession(c *gin.Context) {
	sid := current(c).ID
	if err := h.sessions.Close(sid); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": sid})
}

// LoadSession resolves the :id route parameter, aborting with 404 when no
// such session is open.
func (h *Handlers) LoadSession(c *gin.Context) {
	s, err := h.sessions.Get(id.SessionID(c.Param("id")))
	if err != nil {
		fail(c, err)
		return
	}
	c.Set(sessionKey, s)
	c.Next()
}

// current returns the session loaded by LoadSession.
func current(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
