package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/brainstorm-service/config"
	"github.com/duynhne/brainstorm-service/internal/core/repository"
	logicv1 "github.com/duynhne/brainstorm-service/internal/logic/v1"
)

func testRouter(t *testing.T, cfg *config.Config, draining *atomic.Bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zerolog.New(io.Discard)
	handlers := logicv1.NewHandlers(repository.NewMemorySessionRepository(), log)

	limiter := newRateLimiter(cfg)
	if limiter != nil {
		t.Cleanup(limiter.Stop)
	}
	return newRouter(cfg, log, handlers, limiter, draining)
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRouter_Probes(t *testing.T) {
	var draining atomic.Bool
	r := testRouter(t, &config.Config{Service: config.ServiceConfig{Name: "test"}}, &draining)

	assert.Equal(t, http.StatusOK, get(r, "/health").Code)
	assert.Equal(t, http.StatusOK, get(r, "/ready").Code)

	draining.Store(true)
	w := get(r, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "shutting_down")
	assert.Equal(t, http.StatusOK, get(r, "/health").Code)
}

func TestRouter_ServesAPIAndMetrics(t *testing.T) {
	var draining atomic.Bool
	r := testRouter(t, &config.Config{Service: config.ServiceConfig{Name: "test"}}, &draining)

	w := get(r, "/api/v1/sessions")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = get(r, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "brainstorm_http_requests_total")
}

func TestRouter_RateLimit(t *testing.T) {
	var draining atomic.Bool
	cfg := &config.Config{
		Service:   config.ServiceConfig{Name: "test"},
		RateLimit: config.RateLimitConfig{RPS: 0.001, Burst: 1},
	}
	r := testRouter(t, cfg, &draining)

	assert.Equal(t, http.StatusOK, get(r, "/health").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/health").Code)
}

func TestNewRateLimiter_DisabledWithoutRPS(t *testing.T) {
	assert.Nil(t, newRateLimiter(&config.Config{}))

	limiter := newRateLimiter(&config.Config{RateLimit: config.RateLimitConfig{RPS: 1, Burst: 1}})
	require.NotNil(t, limiter)
	limiter.Stop()
}
