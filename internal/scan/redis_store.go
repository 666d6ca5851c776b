package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	SESSION_CACHE_PREFIX = "scan:session:"
	SESSION_TTL          = 12 * time.Hour
)

var ErrSessionNotFound = fmt.Errorf("session not found")

// SessionStore persists sessions in redis so a terminal reconnect can
// resume an ongoing run.
type SessionStore struct {
	redis *redis.Client
}

func NewSessionStore(redisClient *redis.Client) *SessionStore {
	return &SessionStore{redis: redisClient}
}

func (s *SessionStore) Save(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshaling session %s: %w", session.ID, err)
	}
	if err := s.redis.Set(ctx, SESSION_CACHE_PREFIX+session.ID, payload, SESSION_TTL).Err(); err != nil {
		return fmt.Errorf("saving session %s: %w", session.ID, err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, id string) (*Session, error) {
	payload, err := s.redis.Get(ctx, SESSION_CACHE_PREFIX+id).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}

	var session Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.redis.Del(ctx, SESSION_CACHE_PREFIX+id).Err()
}
