package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/usercore/user-directory/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// UserCache stores JSON-encoded users in Redis for read-through caching.
// Key format: user:<id>
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUserCache creates a UserCache wrapping the given Redis client. A
// non-positive ttl falls back to the default.
func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &UserCache{client: client, ttl: ttl}
}

// Get retrieves a cached user by id. A miss or a corrupted entry is reported
// as (nil, nil), not as an error.
func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		// corrupted entry, treat as miss
		return nil, nil
	}
	return &u, nil
}

// Set caches a user under its id (expires after the configured TTL).
func (c *UserCache) Set(ctx context.Context, u *domain.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return c.client.Set(ctx, c.key(u.ID), data, c.ttl).Err()
}

func (c *UserCache) key(id string) string {
	return "user:" + id
}
