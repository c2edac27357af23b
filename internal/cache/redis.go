// Package cache provides a Redis-backed store for fetched result pages.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/leadgen/internal/types"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultTTL is used when no positive TTL is given.
const DefaultTTL = 10 * time.Minute

// RedisPageCache keeps result pages in Redis as JSON with a fixed TTL.
// Errors are logged and reported as misses.
type RedisPageCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logrus.FieldLogger
}

// NewRedisPageCache connects to the Redis server at url (redis://, rediss:// or unix://).
func NewRedisPageCache(url string, ttl time.Duration, logger logrus.FieldLogger) (*RedisPageCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &RedisPageCache{
		client: redis.NewClient(opts),
		ttl:    ttl,
		logger: logger.WithField("component", "page_cache"),
	}, nil
}

// Ping tests the Redis connection.
func (c *RedisPageCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *RedisPageCache) Close() error {
	return c.client.Close()
}

// Get returns the cached page for key, if any.
func (c *RedisPageCache) Get(ctx context.Context, key string) (*types.ResultPage, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WithError(err).Warn("cache read failed")
		}
		return nil, false
	}

	var page types.ResultPage
	if err := json.Unmarshal(data, &page); err != nil {
		c.logger.WithError(err).Warn("discarding corrupt cache entry")
		return nil, false
	}
	if page.Items == nil {
		page.Items = []types.Profile{}
	}
	return &page, true
}

// Set stores page under key. Empty pages are not cached.
func (c *RedisPageCache) Set(ctx context.Context, key string, page *types.ResultPage) {
	if page == nil || len(page.Items) == 0 {
		return
	}
	data, err := json.Marshal(page)
	if err != nil {
		c.logger.WithError(err).Warn("failed to marshal page for cache")
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("cache write failed")
	}
}
