package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/brainstorm-service/internal/core/domain"
	logicv1 "github.com/duynhne/brainstorm-service/internal/logic/v1"
	"github.com/duynhne/brainstorm-service/middleware"
)

// SessionsPath is where a successful session creation redirects to.
const SessionsPath = "/api/v1/sessions"

// Handler groups HTTP handlers for the brainstorm API v1.
// Dependencies are injected via the constructor; no global state.
type Handler struct {
	svc *logicv1.Handlers
}

// NewHandler creates a new Handler over the given request handlers.
func NewHandler(svc *logicv1.Handlers) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all brainstorm API v1 routes on the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sessions", h.ListSessions)
	rg.POST("/sessions", h.CreateSession)
	rg.GET("/sessions/:id", h.SessionDetail)
	rg.GET("/session", h.SessionDetail)
	rg.GET("/sessions/:id/ideas", h.IdeasForSession)
	rg.POST("/ideas", h.CreateIdea)
}

// startSpan opens the web-layer span and installs its context on the request.
func startSpan(c *gin.Context) trace.Span {
	ctx, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	c.Request = c.Request.WithContext(ctx)
	return span
}

// internalError answers a store fault. The fault was already logged by the
// logic layer; the client gets no detail.
func internalError(c *gin.Context, span trace.Span, err error) {
	span.RecordError(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// ListSessions handles GET /sessions.
func (h *Handler) ListSessions(c *gin.Context) {
	span := startSpan(c)
	defer span.End()

	model, err := h.svc.ListSessions(c.Request.Context())
	if err != nil {
		internalError(c, span, err)
		return
	}

	c.JSON(http.StatusOK, model)
}

// CreateSession handles POST /sessions {name}.
func (h *Handler) CreateSession(c *gin.Context) {
	span := startSpan(c)
	defer span.End()

	var req domain.NewSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Undecodable body: validate the empty model so the client gets field errors.
		span.RecordError(err)
		req = domain.NewSessionRequest{}
	}

	res, err := h.svc.CreateSession(c.Request.Context(), req)
	if err != nil {
		internalError(c, span, err)
		return
	}

	switch res.Outcome {
	case logicv1.OutcomeInvalid:
		c.JSON(http.StatusBadRequest, gin.H{"errors": res.Errors})
	default:
		c.Header("X-Session-ID", strconv.Itoa(res.Session.ID))
		c.Redirect(http.StatusSeeOther, SessionsPath)
	}
}

// SessionDetail handles GET /sessions/:id and GET /session?id=.
// A missing id falls through to the session list.
func (h *Handler) SessionDetail(c *gin.Context) {
	span := startSpan(c)
	defer span.End()

	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("id")
	}

	var id *int
	if raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
			return
		}
		id = &v
	}

	res, err := h.svc.SessionDetail(c.Request.Context(), id)
	if err != nil {
		internalError(c, span, err)
		return
	}

	switch res.Outcome {
	case logicv1.OutcomeNotFound:
		c.String(http.StatusOK, res.Message)
	case logicv1.OutcomeRedirect:
		c.JSON(http.StatusOK, res.Sessions)
	default:
		c.JSON(http.StatusOK, res.View)
	}
}

// IdeasForSession handles GET /sessions/:id/ideas.
func (h *Handler) IdeasForSession(c *gin.Context) {
	span := startSpan(c)
	defer span.End()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	res, err := h.svc.IdeasForSession(c.Request.Context(), id)
	if err != nil {
		internalError(c, span, err)
		return
	}

	if res.Outcome == logicv1.OutcomeNotFound {
		c.JSON(http.StatusNotFound, res.SessionID)
		return
	}

	c.JSON(http.StatusOK, res.Ideas)
}

// CreateIdea handles POST /ideas {sessionId,name,description}.
func (h *Handler) CreateIdea(c *gin.Context) {
	span := startSpan(c)
	defer span.End()

	req := &domain.NewIdeaRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		// Undecodable body is a missing model.
		span.RecordError(err)
		req = nil
	}

	res, err := h.svc.CreateIdea(c.Request.Context(), req)
	if err != nil {
		internalError(c, span, err)
		return
	}

	switch res.Outcome {
	case logicv1.OutcomeInvalid:
		c.JSON(http.StatusBadRequest, gin.H{"errors": res.Errors})
	case logicv1.OutcomeNotFound:
		c.JSON(http.StatusNotFound, res.SessionID)
	default:
		c.JSON(http.StatusOK, res.Session)
	}
}
