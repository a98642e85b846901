package v1

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/brainstorm-service/internal/core/domain"
	"github.com/duynhne/brainstorm-service/internal/logger"
	"github.com/duynhne/brainstorm-service/middleware"
)

// Handlers implements the brainstorm request handlers.
// It depends on the repository interface and a logger (injected via the
// constructor) and MUST NOT access the database directly.
type Handlers struct {
	sessions domain.SessionRepository
	log      zerolog.Logger
	now      func() time.Time
}

// Option customizes Handlers.
type Option func(*Handlers)

// WithClock replaces time.Now as the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) { h.now = now }
}

// NewHandlers creates Handlers over the given repository. log receives every
// event unless the request context carries a request-scoped logger.
func NewHandlers(sessions domain.SessionRepository, log zerolog.Logger, opts ...Option) *Handlers {
	h := &Handlers{
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handlers) logger(ctx context.Context) *zerolog.Logger {
	return logger.FromContext(ctx, h.log)
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("layer", "logic"))
	return middleware.StartSpan(ctx, name, trace.WithAttributes(attrs...))
}

func setOutcome(span trace.Span, o Outcome) {
	span.SetAttributes(attribute.String("request.outcome", o.String()))
}

// storeFault records a failed repository call on the span and in metrics and
// returns the error handlers propagate.
func storeFault(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetAttributes(attribute.String("request.outcome", "faulted"))
	middleware.RecordStoreFault(op)
	return fault(op, err)
}
