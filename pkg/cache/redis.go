package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"connect-backend/internal/user/domain"

	"github.com/go-redis/redis/v8"
)

// redisCache implements UserCache on a shared Redis instance, so the
// invalidation contract holds across service replicas.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a new instance of redisCache
func NewRedisCache(client *redis.Client, ttl time.Duration) UserCache {
	return &redisCache{
		client: client,
		ttl:    ttl,
	}
}

func userKey(id string) string {
	return "user:" + id
}

func (c *redisCache) Get(ctx context.Context, id string) (*domain.User, error) {
	data, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *redisCache) Set(ctx context.Context, id string, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, userKey(id), data, c.ttl).Err()
}

func (c *redisCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, userKey(id)).Err()
}
