package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/duynhne/brainstorm-service/internal/core/domain"
)

// MemorySessionRepository implements domain.SessionRepository in process memory.
// A single mutex serializes writers; readers get deep copies.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[int]*domain.Session
	nextID   int
}

// NewMemorySessionRepository creates an empty MemorySessionRepository.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[int]*domain.Session),
		nextID:   1,
	}
}

// List returns snapshots of all sessions ordered by id.
func (r *MemorySessionRepository) List(ctx context.Context) ([]domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]domain.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, *s.Clone())
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })

	return sessions, nil
}

// GetByID returns a snapshot of the session, or (nil, nil) when absent.
func (r *MemorySessionRepository) GetByID(ctx context.Context, id int) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return s.Clone(), nil
}

// Add assigns the next id, sets session.ID and stores a copy.
func (r *MemorySessionRepository) Add(ctx context.Context, session *domain.Session) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session.ID = r.nextID
	r.nextID++
	if session.Ideas == nil {
		session.Ideas = []domain.Idea{}
	}
	r.sessions[session.ID] = session.Clone()

	return session.ID, nil
}

// Update replaces the stored aggregate. Last write wins.
func (r *MemorySessionRepository) Update(ctx context.Context, session *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; !ok {
		return domain.ErrSessionNotFound
	}
	r.sessions[session.ID] = session.Clone()

	return nil
}
