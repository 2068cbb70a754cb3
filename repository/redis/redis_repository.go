package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const keySession = "session:admin:"

// ErrSessionNotFound is returned for missing or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// Repository defines methods for interacting with Redis key-values
type Repository interface {
	SetSession(ctx context.Context, sessionID string, username string, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type redis struct {
	client goredis.Cmdable
}

// NewRepository returns a Redis Repository implementation
func NewRepository(client goredis.Cmdable) Repository {
	return &redis{client: client}
}

// SetSession stores the admin username under the token id with a TTL
func (r *redis) SetSession(ctx context.Context, sessionID string, username string, ttl time.Duration) error {
	return r.client.Set(ctx, keySession+sessionID, username, ttl).Err()
}

// GetSession retrieves the admin username of a session
func (r *redis) GetSession(ctx context.Context, sessionID string) (string, error) {
	val, err := r.client.Get(ctx, keySession+sessionID).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return val, nil
}

// DeleteSession removes a session from Redis
func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, keySession+sessionID).Err()
}
