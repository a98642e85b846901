package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"

	"github.com/duynhne/brainstorm-service/internal/core/domain"
)

const (
	redisSeqKey     = "brainstorm:sessions:seq"
	redisIndexKey   = "brainstorm:sessions"
	redisSessionKey = "brainstorm:session:"
)

// RedisSessionRepository implements domain.SessionRepository on Redis.
// Each session is stored as one JSON document; INCR hands out ids and a
// sorted set keyed by id keeps the listing order.
type RedisSessionRepository struct {
	rdb *redis.Client
}

// NewRedisSessionRepository creates a new RedisSessionRepository.
func NewRedisSessionRepository(rdb *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb}
}

func sessionKey(id int) string {
	return redisSessionKey + strconv.Itoa(id)
}

// List returns all indexed sessions ordered by id.
func (r *RedisSessionRepository) List(ctx context.Context) ([]domain.Session, error) {
	members, err := r.rdb.ZRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read session index: %w", err)
	}

	sessions := make([]domain.Session, 0, len(members))
	if len(members) == 0 {
		return sessions, nil
	}

	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = redisSessionKey + m
	}

	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Indexed but missing document; skip rather than fail the listing.
			continue
		}
		s, err := decodeSession(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		sessions = append(sessions, *s)
	}

	return sessions, nil
}

// GetByID returns the stored session, or (nil, nil) when the key is absent.
func (r *RedisSessionRepository) GetByID(ctx context.Context, id int) (*domain.Session, error) {
	raw, err := r.rdb.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session %d: %w", id, err)
	}

	s, err := decodeSession(raw)
	if err != nil {
		return nil, fmt.Errorf("decode session %d: %w", id, err)
	}
	return s, nil
}

// Add reserves an id with INCR, then writes the document and index entry atomically.
func (r *RedisSessionRepository) Add(ctx context.Context, session *domain.Session) (int, error) {
	next, err := r.rdb.Incr(ctx, redisSeqKey).Result()
	if err != nil {
		return 0, fmt.Errorf("allocate session id: %w", err)
	}

	stored := session.Clone()
	stored.ID = int(next)
	payload, err := json.Marshal(stored)
	if err != nil {
		return 0, fmt.Errorf("encode session: %w", err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(stored.ID), payload, 0)
		pipe.ZAdd(ctx, redisIndexKey, &redis.Z{Score: float64(stored.ID), Member: strconv.Itoa(stored.ID)})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("store session %d: %w", stored.ID, err)
	}

	session.ID = stored.ID
	if session.Ideas == nil {
		session.Ideas = []domain.Idea{}
	}
	return session.ID, nil
}

// Update overwrites an existing document. SET XX fails for unknown ids.
func (r *RedisSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	ok, err := r.rdb.SetXX(ctx, sessionKey(session.ID), payload, 0).Result()
	if err != nil {
		return fmt.Errorf("store session %d: %w", session.ID, err)
	}
	if !ok {
		return fmt.Errorf("store session %d: %w", session.ID, domain.ErrSessionNotFound)
	}
	return nil
}

func decodeSession(raw string) (*domain.Session, error) {
	var s domain.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, err
	}
	if s.Ideas == nil {
		s.Ideas = []domain.Idea{}
	}
	return &s, nil
}
