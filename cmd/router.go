package main

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/duynhne/brainstorm-service/config"
	logicv1 "github.com/duynhne/brainstorm-service/internal/logic/v1"
	v1 "github.com/duynhne/brainstorm-service/internal/web/v1"
	"github.com/duynhne/brainstorm-service/middleware"
)

// newRouter wires middleware, probes, metrics and the v1 API.
// /ready reports 503 once draining is set. A nil limiter disables rate limiting.
func newRouter(cfg *config.Config, log zerolog.Logger, handlers *logicv1.Handlers, limiter *middleware.RateLimiter, draining *atomic.Bool) *gin.Engine {
	if cfg.Service.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TracingMiddleware(cfg.Service.Name))
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.PrometheusMiddleware())
	if limiter != nil {
		r.Use(limiter.Middleware())
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if draining.Load() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "shutting_down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1.NewHandler(handlers).RegisterRoutes(r.Group("/api/v1"))

	return r
}

// newRateLimiter returns nil when RATE_LIMIT_RPS disables limiting.
// The caller stops the returned limiter on shutdown.
func newRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if cfg.RateLimit.RPS <= 0 {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.GetRateLimitCleanupIntervalDuration())
}
