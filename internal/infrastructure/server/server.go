package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/AgentOS/explorer/internal/api/http"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/api/ws"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/session"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/infrastructure/storage"
)

// ShutdownTimeout bounds how long Close waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	storage  *storage.Storage
	sessions *session.Manager
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing explorer server",
		zap.String("port", cfg.Server.Port),
		zap.String("mounts", cfg.Explorer.MountsFile),
		zap.String("recycle_root", cfg.Explorer.RecycleRoot),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	st, err := storage.Open(context.Background(), cfg.Explorer, logger, metrics)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(session.Options{
		FS:      st.Table,
		Recycle: st.Recycle,
		MRUSize: cfg.Explorer.MRUSize,
		Logger:  logger,
		Metrics: metrics,
	})

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(apihttp.Options{
		Sessions:   sessions,
		Drives:     st.Table,
		Recycle:    st.Recycle,
		Metrics:    metrics,
		Logger:     logger,
		SniffLimit: cfg.Explorer.SniffLimit,
		RootLabel:  cfg.Explorer.RootLabel,
	})
	wsHandler := ws.NewHandler(sessions, metrics, logger)
	handlers.Register(router, wsHandler.HandleConnection)

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		storage:  st,
		sessions: sessions,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the session manager.
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// Run starts the HTTP server and blocks until it stops. It returns nil
// after a Close.
func (s *Server) Run() error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	// Close event streams first so websocket handlers return
	s.sessions.CloseAll()

	var err error
	if s.http != nil {
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err = s.http.Shutdown(ctx); err != nil {
			s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
			err = fmt.Errorf("failed to shut down HTTP server: %w", err)
		}
	}

	// Sync logger before exit
	_ = s.logger.Sync()

	return err
}
