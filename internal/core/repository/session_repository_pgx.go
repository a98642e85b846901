package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duynhne/brainstorm-service/internal/core/domain"
)

// PgxSessionRepository implements domain.SessionRepository using pgxpool.
// Session ids come from the sessions.id serial; idea ids are assigned by the
// aggregate and stored alongside the session id.
type PgxSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PgxSessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PgxSessionRepository {
	return &PgxSessionRepository{pool: pool}
}

// List returns all sessions with their ideas, ordered by id.
func (r *PgxSessionRepository) List(ctx context.Context) ([]domain.Session, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, date_created FROM sessions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	sessions := []domain.Session{}
	index := make(map[int]int)
	for rows.Next() {
		s := domain.Session{Ideas: []domain.Idea{}}
		if err := rows.Scan(&s.ID, &s.Name, &s.DateCreated); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan session: %w", err)
		}
		index[s.ID] = len(sessions)
		sessions = append(sessions, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	ideaRows, err := r.pool.Query(ctx, `
		SELECT session_id, id, name, description, date_created
		FROM ideas
		ORDER BY session_id, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query ideas: %w", err)
	}
	defer ideaRows.Close()

	for ideaRows.Next() {
		var sessionID int
		var idea domain.Idea
		if err := ideaRows.Scan(&sessionID, &idea.ID, &idea.Name, &idea.Description, &idea.DateCreated); err != nil {
			return nil, fmt.Errorf("scan idea: %w", err)
		}
		if i, ok := index[sessionID]; ok {
			sessions[i].Ideas = append(sessions[i].Ideas, idea)
		}
	}
	if err := ideaRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ideas: %w", err)
	}

	return sessions, nil
}

// GetByID returns the session with its ideas.
// Returns (nil, nil) when no session matches.
func (r *PgxSessionRepository) GetByID(ctx context.Context, id int) (*domain.Session, error) {
	s := domain.Session{Ideas: []domain.Idea{}}
	err := r.pool.QueryRow(ctx, `SELECT id, name, date_created FROM sessions WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.DateCreated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query session %d: %w", id, err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, date_created
		FROM ideas
		WHERE session_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query ideas of session %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var idea domain.Idea
		if err := rows.Scan(&idea.ID, &idea.Name, &idea.Description, &idea.DateCreated); err != nil {
			return nil, fmt.Errorf("scan idea: %w", err)
		}
		s.Ideas = append(s.Ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ideas: %w", err)
	}

	return &s, nil
}

// Add inserts the session (and any ideas it already holds) and returns the generated id.
func (r *PgxSessionRepository) Add(ctx context.Context, session *domain.Session) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int
	err = tx.QueryRow(ctx,
		`INSERT INTO sessions (name, date_created) VALUES ($1, $2) RETURNING id`,
		session.Name, session.DateCreated,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}

	if err := insertIdeas(ctx, tx, id, session.Ideas); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}

	session.ID = id
	if session.Ideas == nil {
		session.Ideas = []domain.Idea{}
	}
	return id, nil
}

// Update persists the aggregate. Idea rows are upserted by (session_id, id),
// so of two writers that derived the same idea id the later one wins, as in
// the memory and Redis stores.
func (r *PgxSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE sessions SET name = $2 WHERE id = $1`, session.ID, session.Name)
	if err != nil {
		return fmt.Errorf("update session %d: %w", session.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update session %d: %w", session.ID, domain.ErrSessionNotFound)
	}

	if err := insertIdeas(ctx, tx, session.ID, session.Ideas); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func insertIdeas(ctx context.Context, tx pgx.Tx, sessionID int, ideas []domain.Idea) error {
	if len(ideas) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, idea := range ideas {
		batch.Queue(`
			INSERT INTO ideas (session_id, id, name, description, date_created)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (session_id, id) DO UPDATE
			SET name = EXCLUDED.name,
				description = EXCLUDED.description,
				date_created = EXCLUDED.date_created
		`, sessionID, idea.ID, idea.Name, idea.Description, idea.DateCreated)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert ideas of session %d: %w", sessionID, err)
	}
	return nil
}
