package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var e map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		entries = append(entries, e)
	}
	return entries
}

func TestGetTraceID(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "traceparent",
			headers: map[string]string{TraceParentHeader: "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"},
			want:    "4bf92f3577b34da6a3ce929d0e0e4736",
		},
		{
			name:    "x-trace-id",
			headers: map[string]string{TraceIDHeader: "abc123"},
			want:    "abc123",
		},
		{
			name:    "malformed traceparent falls back",
			headers: map[string]string{TraceParentHeader: "garbage", TraceIDHeader: "fallback"},
			want:    "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, GetTraceID(c))
		})
	}

	t.Run("generated", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		assert.Len(t, GetTraceID(c), 32)
	})
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	r := gin.New()
	r.Use(LoggingMiddleware(base))
	r.GET("/ok", func(c *gin.Context) {
		GetLoggerFromGinContext(c).Info().Msg("inside handler")
		c.Status(http.StatusOK)
	})
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(TraceIDHeader, "trace-"+path[1:])
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "trace-"+path[1:], w.Header().Get(TraceIDHeader))
	}

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 4)

	assert.Equal(t, "inside handler", entries[0]["message"])
	assert.Equal(t, "trace-ok", entries[0]["trace_id"])

	assert.Equal(t, "info", entries[1]["level"])
	assert.Equal(t, "/ok", entries[1]["path"])
	assert.Equal(t, "warn", entries[2]["level"])
	assert.Equal(t, "error", entries[3]["level"])
	assert.Equal(t, float64(http.StatusInternalServerError), entries[3]["status"])
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	rl := NewRateLimiter(1, 2, time.Minute)
	defer rl.Stop()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(100, 10, time.Minute)
	defer rl.Stop()

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 500; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = fmt.Sprintf("10.0.%d.%d:1234", i/256, i%256)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	require.Equal(t, 500, rl.Len())

	// Within the idle window nothing is dropped.
	rl.cleanup(time.Now().Add(time.Minute))
	assert.Equal(t, 500, rl.Len())

	rl.cleanup(time.Now().Add(3 * time.Minute))
	assert.Equal(t, 0, rl.Len())
}

func TestRateLimiter_SweepRunsUntilStopped(t *testing.T) {
	rl := NewRateLimiter(100, 10, 10*time.Millisecond)
	defer rl.Stop()

	rl.limiter("192.0.2.1")
	require.Equal(t, 1, rl.Len())

	assert.Eventually(t, func() bool { return rl.Len() == 0 }, 2*time.Second, 10*time.Millisecond)

	rl.Stop()
	rl.Stop()
}

func TestPrometheusMiddleware_PassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/sessions/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/1", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestStartSpan_NoopWithoutProvider(t *testing.T) {
	ctx, span := StartSpan(t.Context(), "test")
	defer span.End()

	assert.NotNil(t, ctx)
}
