package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonesrussell/goharvest/internal/api/middleware"
	"github.com/jonesrussell/goharvest/internal/config"
	"github.com/jonesrussell/goharvest/internal/logger"
	"github.com/jonesrussell/goharvest/internal/metrics"
)

// Server wraps the HTTP server and its routes.
type Server struct {
	httpServer *http.Server
	logger     logger.Interface
}

// Handlers bundles the route handlers the server mounts.
type Handlers struct {
	Health *HealthHandler
	Stats  *StatsHandler
	Ingest *IngestHandler
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(cfg *config.Config, handlers Handlers, m *metrics.Metrics, log logger.Interface) *Server {
	if !cfg.App.IsProduction() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", handlers.Health.Health)
	router.GET("/metrics", gin.WrapH(
		promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}),
	))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.Auth.JWTSecret, log))
	v1.GET("/stats", handlers.Stats.GetStats)
	v1.POST("/products/ingest", handlers.Ingest.IngestProducts)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Server.Address,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		logger: log.WithComponent("api"),
	}
}

// Start runs the server until it is shut down.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}
