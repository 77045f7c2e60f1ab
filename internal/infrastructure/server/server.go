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

	apihttp "github.com/GriffinCanCode/framewidget/internal/api/http"
	"github.com/GriffinCanCode/framewidget/internal/api/middleware"
	"github.com/GriffinCanCode/framewidget/internal/api/ws"
	"github.com/GriffinCanCode/framewidget/internal/control"
	"github.com/GriffinCanCode/framewidget/internal/host"
	"github.com/GriffinCanCode/framewidget/internal/infrastructure/config"
	"github.com/GriffinCanCode/framewidget/internal/infrastructure/logging"
	"github.com/GriffinCanCode/framewidget/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/framewidget/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/framewidget/internal/shell"
	"github.com/GriffinCanCode/framewidget/internal/widget"
)

const (
	shutdownTimeout  = 10 * time.Second
	shellLoadTimeout = 30 * time.Second
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	manager *host.Manager
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger := logging.NewFromSettings(cfg.Logging.Level, cfg.Logging.Development)

	logger.Info("Initializing frame widget host",
		zap.String("port", cfg.Server.Port),
		zap.String("mount_selector", cfg.Widget.MountSelector),
		zap.Int("max_instances", cfg.Widget.MaxInstances),
	)

	metrics := monitoring.NewMetrics()

	if cfg.Widget.PageShell == "" && cfg.Widget.ShellSource != "" {
		ctx, cancel := context.WithTimeout(context.Background(), shellLoadTimeout)
		page, err := shell.NewLoader(shell.DefaultOptions(), logger.Named("shell")).Load(ctx, cfg.Widget.ShellSource)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to load page shell: %w", err)
		}
		cfg.Widget.PageShell = page
		logger.Info("Loaded page shell", zap.String("source", cfg.Widget.ShellSource))
	}
	if err := host.CheckShell(cfg.Widget.PageShell, cfg.Widget.MountSelector); err != nil {
		return nil, err
	}

	frameCfg := cfg.Widget.Frame()
	manager := host.NewManager(func(l *zap.Logger) control.Control {
		return widget.New(frameCfg).WithLogger(l)
	}, host.Options{
		PageShell:     cfg.Widget.PageShell,
		MountSelector: cfg.Widget.MountSelector,
		MaxInstances:  cfg.Widget.MaxInstances,
	}, logger).WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	var tracer *tracing.Tracer
	if cfg.Tracing.Enabled {
		tracer = tracing.New("framewidget", logger.Named("trace"))
		router.Use(tracing.Middleware(tracer))
	}
	router.Use(middleware.Logging(logger.Named("http")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig().WithOrigins(cfg.Server.AllowedOrigins)))
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

	handlers := apihttp.NewHandlers(manager, logger)
	handlers.Register(router)

	wsHandler := ws.NewHandler(manager, logger).WithMetrics(metrics)
	router.GET("/widgets/:id/stream", wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		manager: manager,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		tracer:  tracer,
	}, nil
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until it stops. It returns nil after
// a Close.
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

// Close gracefully shuts down the server and destroys every mounted widget
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	var shutdownErr error
	if s.http != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error("HTTP shutdown failed", zap.Error(err))
			shutdownErr = err
		}
	}

	s.manager.Close()
	s.logger.Info("Destroyed all widget instances")

	if s.tracer != nil {
		s.tracer.Close()
	}

	// Sync logger before exit
	_ = s.logger.Sync()

	return shutdownErr
}
