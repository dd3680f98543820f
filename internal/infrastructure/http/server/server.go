// Package server provides the HTTP server wiring for the plan API
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mealforge/v1/internal/infrastructure/config"
	"github.com/mealforge/v1/internal/infrastructure/http/handlers"
	"github.com/mealforge/v1/internal/ports/inbound"
	"github.com/mealforge/v1/internal/ports/outbound"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// healthCheckTimeout bounds the dependency probes on /health.
const healthCheckTimeout = 2 * time.Second

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	engine *gin.Engine
	server *http.Server
	db     *gorm.DB
	cache  outbound.CacheRepository
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, logger *zap.Logger, planService inbound.PlanService, db *gorm.DB, cache outbound.CacheRepository) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	if len(cfg.Server.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.Server.TrustedProxies)
	}

	s := &Server{
		config: cfg,
		logger: logger.Named("http-server"),
		engine: engine,
		db:     db,
		cache:  cache,
	}

	s.setupRoutes(planService)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes(planService inbound.PlanService) {
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api/v1")
	handlers.NewPlanHandler(planService, s.logger).RegisterRoutes(api)
}

// handleHealth reports liveness plus database and cache reachability.
func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	checks := gin.H{
		"database": s.checkDatabase(ctx),
		"cache":    s.checkCache(ctx),
	}

	status := "ok"
	code := http.StatusOK
	for _, result := range checks {
		if result != "ok" {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status":      status,
		"name":        s.config.App.Name,
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
		"checks":      checks,
	})
}

func (s *Server) checkDatabase(ctx context.Context) string {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err.Error()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}

func (s *Server) checkCache(ctx context.Context) string {
	if _, err := s.cache.Exists(ctx, "health:probe"); err != nil {
		return err.Error()
	}
	return "ok"
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// requestLogger logs each request with latency and status
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
