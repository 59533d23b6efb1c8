package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ahmettahaakturk25/customer-analyze/internal/config"
)

// Default timeout values.
const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 60 * time.Second
	defaultIdleTimeout  = 120 * time.Second
)

// Server wraps the HTTP server and its router.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer builds the gin engine and HTTP server from configuration.
func NewServer(cfg *config.Config, handler *Handler, logger *zap.Logger) *Server {
	if cfg.GetBool("server.debug") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(ginLogger(logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Panic recovered in handler",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			ErrorResponse{Error: "Internal server error"})
	}))
	router.Use(cors.Default())

	SetupRoutes(router, handler)

	readTimeout := defaultReadTimeout
	if d, err := cfg.GetDuration("server.read_timeout"); err == nil && d > 0 {
		readTimeout = d
	}
	writeTimeout := defaultWriteTimeout
	if d, err := cfg.GetDuration("server.write_timeout"); err == nil && d > 0 {
		writeTimeout = d
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.GetString("server.listen_address"),
			Handler:      router,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		logger: logger,
	}
}

// Start begins serving requests; it blocks only until the listener fails
// or the server is shut down.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("address", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// ginLogger adapts request logging onto the zap logger.
func ginLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
