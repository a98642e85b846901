package v1

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/duynhne/brainstorm-service/internal/core/domain"
	"github.com/duynhne/brainstorm-service/middleware"
)

// IdeasResult is the outcome of IdeasForSession.
type IdeasResult struct {
	Outcome   Outcome
	Ideas     []domain.IdeaDTO
	SessionID int
}

// CreateIdeaResult is the outcome of CreateIdea. Session is the persisted
// aggregate on success.
type CreateIdeaResult struct {
	Outcome   Outcome
	Session   *domain.Session
	SessionID int
	Errors    ValidationErrors
}

// IdeasForSession returns the ideas of a session in insertion order.
func (h *Handlers) IdeasForSession(ctx context.Context, sessionID int) (IdeasResult, error) {
	ctx, span := startSpan(ctx, "ideas.for_session", attribute.Int("session.id", sessionID))
	defer span.End()

	log := h.logger(ctx)
	log.Info().Int(FieldSessionID, sessionID).Msg(MsgIdeasReceived)

	session, err := h.sessions.GetByID(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Int(FieldSessionID, sessionID).Msg(MsgIdeasFailed)
		return IdeasResult{}, storeFault(span, "get session", err)
	}

	if session == nil {
		log.Warn().Int(FieldSessionID, sessionID).Msg(MsgIdeasNotFound)
		setOutcome(span, OutcomeNotFound)
		return IdeasResult{Outcome: OutcomeNotFound, SessionID: sessionID}, nil
	}

	ideas := session.IdeaDTOs()
	log.Debug().Interface(FieldIdeas, ideas).Msg(MsgIdeasList)

	setOutcome(span, OutcomeOK)
	return IdeasResult{Outcome: OutcomeOK, Ideas: ideas, SessionID: sessionID}, nil
}

// CreateIdea appends a new idea to an existing session and persists the
// session. Invalid input is logged at error level, unlike session creation.
func (h *Handlers) CreateIdea(ctx context.Context, req *domain.NewIdeaRequest) (CreateIdeaResult, error) {
	ctx, span := startSpan(ctx, "ideas.create")
	defer span.End()

	log := h.logger(ctx)

	if errs := Validate(req); !errs.Valid() {
		log.Error().
			Interface(FieldModel, req).
			Interface(FieldErrors, errs).
			Msg(MsgCreateIdeaInvalid)
		setOutcome(span, OutcomeInvalid)
		return CreateIdeaResult{Outcome: OutcomeInvalid, Errors: errs}, nil
	}

	span.SetAttributes(attribute.Int("session.id", req.SessionID))

	session, err := h.sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		log.Error().Err(err).Int(FieldSessionID, req.SessionID).Msg(MsgCreateIdeaLookupFailed)
		return CreateIdeaResult{}, storeFault(span, "get session", err)
	}

	if session == nil {
		log.Warn().Int(FieldSessionID, req.SessionID).Msg(MsgCreateIdeaNotFound)
		setOutcome(span, OutcomeNotFound)
		return CreateIdeaResult{Outcome: OutcomeNotFound, SessionID: req.SessionID}, nil
	}

	idea := &domain.Idea{
		Name:        req.Name,
		Description: req.Description,
		DateCreated: h.now(),
	}
	session.AddIdea(idea)

	log.Info().Int(FieldSessionID, session.ID).Int(FieldIdeaID, idea.ID).Msg(MsgIdeaCreated)
	log.Debug().Int(FieldSessionID, session.ID).Interface(FieldIdea, idea).Msg(MsgIdeaCreated)

	if err := h.sessions.Update(ctx, session); err != nil {
		log.Error().
			Err(err).
			Interface(FieldIdea, idea).
			Int(FieldSessionID, session.ID).
			Msg(MsgCreateIdeaFailed)
		return CreateIdeaResult{}, storeFault(span, "update session", err)
	}

	middleware.RecordIdeaCreated()
	span.SetAttributes(attribute.Int("idea.id", idea.ID))
	setOutcome(span, OutcomeOK)

	return CreateIdeaResult{Outcome: OutcomeOK, Session: session, SessionID: session.ID}, nil
}
