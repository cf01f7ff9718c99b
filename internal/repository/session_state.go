package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const staleKeyPrefix = "session:stale:"

// SessionStateStore tracks which users hold a stale session claim. A
// marker is set when an admin action changes a user's persisted role and
// cleared when the user's session is refreshed. Markers expire on their
// own after the session TTL since the token itself expires by then.
type SessionStateStore interface {
	MarkStale(ctx context.Context, userID string) error
	IsStale(ctx context.Context, userID string) (bool, error)
	ClearStale(ctx context.Context, userID string) error
}

type redisSessionState struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStateStore returns a Redis-backed implementation.
func NewSessionStateStore(client *redis.Client, ttl time.Duration) SessionStateStore {
	return &redisSessionState{client: client, ttl: ttl}
}

func (s *redisSessionState) MarkStale(ctx context.Context, userID string) error {
	return s.client.Set(ctx, staleKeyPrefix+userID, "1", s.ttl).Err()
}

func (s *redisSessionState) IsStale(ctx context.Context, userID string) (bool, error) {
	if err := s.client.Get(ctx, staleKeyPrefix+userID).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *redisSessionState) ClearStale(ctx context.Context, userID string) error {
	return s.client.Del(ctx, staleKeyPrefix+userID).Err()
}
