package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"portfolio-service/internal/usecase/crud"
)

// Cache defines the caching operations for items of type T.
type Cache[T crud.Entity] interface {
	// Get retrieves an item by ID.
	// Returns nil if the item is not in cache.
	Get(ctx context.Context, id string) (*T, error)

	// Set stores an item with the configured TTL.
	Set(ctx context.Context, item T) error

	// Delete removes items by ID.
	Delete(ctx context.Context, ids ...string) error
}

// RedisCache implements Cache using Redis as the backing store.
// Items are stored as JSON under "<prefix>:<id>".
type RedisCache[T crud.Entity] struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisCache creates a new Redis-backed cache.
func NewRedisCache[T crud.Entity](client redis.UniversalClient, prefix string, ttl time.Duration, log *zap.Logger) *RedisCache[T] {
	return &RedisCache[T]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		log:    log,
	}
}

// Key returns the Redis key of an item ID.
func (c *RedisCache[T]) Key(id string) string {
	return fmt.Sprintf("%s:%s", c.prefix, id)
}

// Get retrieves an item from Redis.
func (c *RedisCache[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := c.client.Get(ctx, c.Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug("cache miss", zap.String("key", c.Key(id)))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from cache", zap.String("key", c.Key(id)), zap.Error(err))
		return nil, err
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		c.log.Error("failed to unmarshal cached item", zap.String("key", c.Key(id)), zap.Error(err))
		return nil, err
	}

	c.log.Debug("cache hit", zap.String("key", c.Key(id)))
	return &item, nil
}

// Set stores an item in Redis with TTL.
func (c *RedisCache[T]) Set(ctx context.Context, item T) error {
	if item.GetID() == "" {
		return fmt.Errorf("cannot cache %s without id", c.prefix)
	}
	key := c.Key(item.GetID())

	data, err := json.Marshal(item)
	if err != nil {
		c.log.Error("failed to marshal item for cache", zap.String("key", key), zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set cache", zap.String("key", key), zap.Error(err))
		return err
	}

	c.log.Debug("cached item", zap.String("key", key), zap.Duration("ttl", c.ttl))
	return nil
}

// Delete removes items from Redis.
func (c *RedisCache[T]) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.Key(id)
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Error("failed to delete from cache", zap.Strings("keys", keys), zap.Error(err))
		return err
	}

	c.log.Debug("deleted from cache", zap.Int("count", len(keys)))
	return nil
}
