package redisx

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps bearer-token -> user-id mappings in redis with a TTL,
// so sessions survive restarts and expire on their own.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Put(ctx context.Context, token, userID string) error {
	return s.rdb.Set(ctx, fmt.Sprintf(KeySession, token), userID, TTLSession).Err()
}

// Get returns the user id for a token, or "" when the session does not exist.
func (s *SessionStore) Get(ctx context.Context, token string) (string, error) {
	v, err := s.rdb.Get(ctx, fmt.Sprintf(KeySession, token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, fmt.Sprintf(KeySession, token)).Err()
}
