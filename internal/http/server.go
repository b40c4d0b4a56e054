// Package http provides the HTTP server hosting the webhook and key
// validation endpoints.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/licenses/internal/config"
	licensesHTTP "github.com/allisson/licenses/internal/licenses/http"
)

// Server represents the API HTTP server.
type Server struct {
	cfg            *config.Config
	logger         *slog.Logger
	licenseHandler *licensesHTTP.LicenseHandler
	// db backs the readiness probe; nil when the store is not SQL-backed.
	db *sql.DB
	// metricsMiddleware is nil when metrics are disabled.
	metricsMiddleware gin.HandlerFunc
	server            *http.Server
}

// NewServer creates a new API server.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	licenseHandler *licensesHTTP.LicenseHandler,
	db *sql.DB,
	metricsMiddleware gin.HandlerFunc,
) *Server {
	server := &Server{
		cfg:               cfg,
		logger:            logger,
		licenseHandler:    licenseHandler,
		db:                db,
		metricsMiddleware: metricsMiddleware,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      server.createRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// createRouter builds the gin engine with the middleware chain and routes.
func (s *Server) createRouter() *gin.Engine {
	gin.SetMode(s.cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(s.cfg.CORSEnabled, s.cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if s.metricsMiddleware != nil {
		router.Use(s.metricsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Both public endpoints are unauthenticated, so they share one per-IP
	// rate limit.
	public := router.Group("/")
	if s.cfg.RateLimitEnabled {
		public.Use(RateLimitMiddleware(
			s.cfg.RateLimitRequestsPerSec,
			s.cfg.RateLimitBurst,
			s.logger,
		))
	}
	public.GET("/webhook", s.licenseHandler.WebhookPingHandler)
	public.POST("/webhook", s.licenseHandler.WebhookHandler)
	public.GET("/check_key", s.licenseHandler.CheckKeyHandler)

	return router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the license store is reachable. The
// spreadsheet store has no cheap ping, so readiness only probes SQL stores.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "not_configured"}

	if s.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":     "not_ready",
				"components": components,
			})
			return
		}
		components["database"] = "ok"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
