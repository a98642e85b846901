package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brainstorm",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "brainstorm",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	sessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "brainstorm",
			Name:      "sessions_created_total",
			Help:      "Total number of brainstorm sessions created.",
		},
	)

	ideasCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "brainstorm",
			Name:      "ideas_created_total",
			Help:      "Total number of ideas added to sessions.",
		},
	)

	storeFaults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brainstorm",
			Name:      "store_faults_total",
			Help:      "Total number of unexpected session store failures.",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, sessionsCreated, ideasCreated, storeFaults)
}

// PrometheusMiddleware records request count and latency per route template.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordSessionCreated counts a persisted session.
func RecordSessionCreated() { sessionsCreated.Inc() }

// RecordIdeaCreated counts a persisted idea.
func RecordIdeaCreated() { ideasCreated.Inc() }

// RecordStoreFault counts a failed repository operation.
func RecordStoreFault(op string) { storeFaults.WithLabelValues(op).Inc() }
