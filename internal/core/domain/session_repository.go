package domain

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned by Update when no session has the given id.
// Lookups report a missing session as (nil, nil) instead.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines the data-access contract for brainstorm sessions.
// Implementations live in internal/core/repository (Core layer) and are the
// only place session identity is assigned.
//
// Any other error returned by an implementation is a store fault.
type SessionRepository interface {
	// List returns every session ordered by id. An empty store yields an
	// empty slice, not an error.
	List(ctx context.Context) ([]Session, error)

	// GetByID returns a snapshot of the session with the given id.
	// Returns (nil, nil) when no session matches.
	GetByID(ctx context.Context, id int) (*Session, error)

	// Add stores a new session, assigns its id, sets session.ID and returns it.
	Add(ctx context.Context, session *Session) (int, error)

	// Update persists the whole aggregate, ideas included, keyed by session.ID.
	// Returns ErrSessionNotFound when the id is unknown.
	Update(ctx context.Context, session *Session) error
}
