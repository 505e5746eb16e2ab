package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finvoice/dashboard/internal/util"
)

const sessionPrefix = "sess:"

// Sessions is the redis-backed session store. A session is a ULID mapped to a
// user id with a TTL; presence of the key is what the gate checks.
type Sessions struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessions(rdb *redis.Client, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Sessions{rdb: rdb, ttl: ttl}
}

// Create mints a session for userID and returns its id.
func (s *Sessions) Create(ctx context.Context, userID string) (string, error) {
	id := util.NewID()
	if err := s.rdb.Set(ctx, sessionPrefix+id, userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// UserID resolves a session id to the logged-in user. Returns "" with no
// error when the session does not exist or has expired.
func (s *Sessions) UserID(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.rdb.Get(ctx, sessionPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Destroy removes the session. Destroying a missing session is a no-op.
func (s *Sessions) Destroy(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionPrefix+sessionID).Err()
}
