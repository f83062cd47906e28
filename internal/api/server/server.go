package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ip-registry/internal/access"
	"github.com/feral-file/ff-ip-registry/internal/adapter"
	"github.com/feral-file/ff-ip-registry/internal/api/middleware"
	"github.com/feral-file/ff-ip-registry/internal/api/rest"
	"github.com/feral-file/ff-ip-registry/internal/logger"
	"github.com/feral-file/ff-ip-registry/internal/registry"
	"github.com/feral-file/ff-ip-registry/internal/store"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Auth         middleware.AuthConfig
	RateLimit    middleware.RateLimitConfig
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	registry   registry.Registry
	store      store.Store
	denylist   access.Denylist
	limiter    adapter.RedisRateLimiter
	httpServer *http.Server
}

// New creates a new API server.
// limiter may be nil, in which case requests are not rate limited.
func New(cfg Config, reg registry.Registry, st store.Store, denylist access.Denylist, limiter adapter.RedisRateLimiter) *Server {
	return &Server{
		config:   cfg,
		registry: reg,
		store:    st,
		denylist: denylist,
		limiter:  limiter,
	}
}

// Router builds the gin engine with middleware and routes
func (s *Server) Router() *gin.Engine {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())

	// State changes are rate limited per authenticated caller
	var afterAuth []gin.HandlerFunc
	if s.limiter != nil {
		afterAuth = append(afterAuth, middleware.RateLimit(s.limiter, s.config.RateLimit))
	}

	restHandler := rest.NewHandler(s.config.Debug, s.registry, s.store)
	rest.SetupRoutes(router, restHandler, s.config.Auth, s.denylist, afterAuth...)

	return router
}

// Start initializes and starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.InfoCtx(ctx, "Starting API server",
		zap.String("address", addr),
		zap.Bool("rate_limited", s.limiter != nil),
	)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.InfoCtx(ctx, "Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
