package v1

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/duynhne/brainstorm-service/internal/core/domain"
	"github.com/duynhne/brainstorm-service/middleware"
)

// SessionNotFoundMessage is the human-readable body of a detail lookup miss.
const SessionNotFoundMessage = "Session not found."

// CreateSessionResult is the outcome of CreateSession.
type CreateSessionResult struct {
	Outcome Outcome
	Session *domain.Session
	Errors  ValidationErrors
}

// SessionDetailResult is the outcome of SessionDetail. Sessions is set when
// no id was given and the request fell through to the session list.
type SessionDetailResult struct {
	Outcome   Outcome
	View      *domain.SessionView
	Sessions  []domain.SessionSummary
	SessionID int
	Message   string
}

// ListSessions returns a summary of every session.
func (h *Handlers) ListSessions(ctx context.Context) ([]domain.SessionSummary, error) {
	ctx, span := startSpan(ctx, "sessions.list")
	defer span.End()

	log := h.logger(ctx)
	log.Info().Msg(MsgListReceived)

	sessions, err := h.sessions.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg(MsgListFailed)
		return nil, storeFault(span, "list sessions", err)
	}

	model := make([]domain.SessionSummary, 0, len(sessions))
	for i := range sessions {
		model = append(model, sessions[i].Summary())
	}

	log.Debug().Interface(FieldModel, model).Msg(MsgListModel)
	setOutcome(span, OutcomeOK)
	span.SetAttributes(attribute.Int("sessions.count", len(model)))

	return model, nil
}

// CreateSession validates req and stores a new, empty session created now.
// Invalid input never reaches the repository.
func (h *Handlers) CreateSession(ctx context.Context, req domain.NewSessionRequest) (CreateSessionResult, error) {
	ctx, span := startSpan(ctx, "sessions.create")
	defer span.End()

	log := h.logger(ctx)

	if errs := Validate(&req); !errs.Valid() {
		log.Warn().
			Interface(FieldModel, req).
			Interface(FieldErrors, errs).
			Msg(MsgCreateSessionInvalid)
		setOutcome(span, OutcomeInvalid)
		return CreateSessionResult{Outcome: OutcomeInvalid, Errors: errs}, nil
	}

	session := domain.NewSession(req.Name, h.now())

	if _, err := h.sessions.Add(ctx, session); err != nil {
		log.Error().
			Err(err).
			Interface(FieldModel, req).
			Msg(MsgCreateSessionFailed)
		return CreateSessionResult{}, storeFault(span, "add session", err)
	}

	middleware.RecordSessionCreated()
	log.Info().Int(FieldSessionID, session.ID).Msg(MsgSessionCreated)
	log.Debug().Interface(FieldSession, session).Msg(MsgSessionCreated)

	span.SetAttributes(attribute.Int("session.id", session.ID))
	setOutcome(span, OutcomeRedirect)

	return CreateSessionResult{Outcome: OutcomeRedirect, Session: session}, nil
}

// SessionDetail returns the view of one session. Without an id it falls
// through to ListSessions.
func (h *Handlers) SessionDetail(ctx context.Context, id *int) (SessionDetailResult, error) {
	ctx, span := startSpan(ctx, "sessions.detail")
	defer span.End()

	log := h.logger(ctx)

	received := log.Info()
	if id != nil {
		received = received.Int(FieldSessionID, *id)
	}
	received.Msg(MsgDetailReceived)

	if id == nil {
		sessions, err := h.ListSessions(ctx)
		if err != nil {
			span.RecordError(err)
			return SessionDetailResult{}, err
		}
		setOutcome(span, OutcomeRedirect)
		return SessionDetailResult{Outcome: OutcomeRedirect, Sessions: sessions}, nil
	}

	span.SetAttributes(attribute.Int("session.id", *id))

	session, err := h.sessions.GetByID(ctx, *id)
	if err != nil {
		log.Error().Err(err).Int(FieldSessionID, *id).Msg(MsgDetailFailed)
		return SessionDetailResult{}, storeFault(span, "get session", err)
	}

	if session == nil {
		log.Warn().Int(FieldSessionID, *id).Msg(MsgDetailNotFound)
		setOutcome(span, OutcomeNotFound)
		return SessionDetailResult{
			Outcome:   OutcomeNotFound,
			SessionID: *id,
			Message:   SessionNotFoundMessage,
		}, nil
	}

	log.Debug().Interface(FieldSession, session).Msg(MsgDetailSession)

	view := session.View()
	log.Debug().Interface(FieldSessionView, view).Msg(MsgDetailView)

	setOutcome(span, OutcomeOK)
	return SessionDetailResult{Outcome: OutcomeOK, View: &view, SessionID: *id}, nil
}
