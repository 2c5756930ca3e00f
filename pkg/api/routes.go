package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ja7ad/bouncy/pkg/bounce"
	"github.com/ja7ad/bouncy/pkg/metrics"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, m *bounce.Model, log *slog.Logger) {
	router.Use(metrics.Middleware())

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", HealthCheck)
		v1.POST("/bounces", Bounces(m, log))
		v1.POST("/trajectory", Trajectory(m, log))
	}
}

// NewRouter returns a gin engine with recovery, request logging at debug level
// and all routes installed.
func NewRouter(m *bounce.Model, log *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLog(log))
	SetupRoutes(router, m, log)
	return router
}

func requestLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start))
	}
}

// Serve runs the API on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, m *bounce.Model, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(m, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr, "gravity", m.Gravity())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
