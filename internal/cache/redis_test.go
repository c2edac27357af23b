package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jonathan/leadgen/internal/logging"
	"github.com/jonathan/leadgen/internal/search"
	"github.com/jonathan/leadgen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time check that the Redis cache plugs into the gateway.
var _ search.PageCache = (*RedisPageCache)(nil)

func TestNewRedisPageCache_InvalidURL(t *testing.T) {
	_, err := NewRedisPageCache("http://localhost:6379", time.Minute, logging.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid redis url")
}

func TestNewRedisPageCache_DefaultTTL(t *testing.T) {
	c, err := NewRedisPageCache("redis://localhost:6379/0", 0, nil)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	assert.Equal(t, DefaultTTL, c.ttl)
}

func TestRedisPageCache_UnreachableIsMiss(t *testing.T) {
	c, err := NewRedisPageCache("redis://127.0.0.1:1/0", time.Minute, logging.Discard())
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	page := types.NewResultPage([]types.Profile{types.NewProfile()}, 1, 1)
	assert.NotPanics(t, func() { c.Set(ctx, "leadgen:page:x", page) })

	got, ok := c.Get(ctx, "leadgen:page:x")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRedisPageCache_RoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set, skipping Redis round trip")
	}

	c, err := NewRedisPageCache(url, time.Minute, logging.Discard())
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	key := search.CacheKey(types.PlatformLinkedIn, search.Request{EngineID: "test", Query: t.Name(), Num: 10, Start: 1})
	p := types.NewProfile()
	p.FullName = "Jane Doe"
	page := types.NewResultPage([]types.Profile{p}, 42, 1)

	c.Set(ctx, key, page)
	got, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, page, got)

	empty := types.EmptyPage(2)
	emptyKey := key + ":empty"
	c.Set(ctx, emptyKey, empty)
	_, ok = c.Get(ctx, emptyKey)
	assert.False(t, ok, "empty pages are not cached")
}
