package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFeedCache(t *testing.T) (*miniredis.Miniredis, FeedCache) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewFeedCache(rdb)
}

func TestFeedCache_PutGet(t *testing.T) {
	_, fc := setupFeedCache(t)
	ctx := context.Background()

	_, ok := fc.Get(ctx, 1)
	assert.False(t, ok, "empty cache should miss")

	fc.Put(ctx, 1, []byte(`{"posts":[]}`), FeedPageTTL)

	body, ok := fc.Get(ctx, 1)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"posts":[]}`), body)

	// Pages are cached independently.
	_, ok = fc.Get(ctx, 2)
	assert.False(t, ok)
}

func TestFeedCache_Expiry(t *testing.T) {
	mr, fc := setupFeedCache(t)
	ctx := context.Background()

	fc.Put(ctx, 1, []byte("stale"), FeedPageTTL)

	_, ok := fc.Get(ctx, 1)
	require.True(t, ok)

	// Entries become absent once the TTL window passes; no evictor needed.
	mr.FastForward(FeedPageTTL + time.Second)

	_, ok = fc.Get(ctx, 1)
	assert.False(t, ok, "entry should be treated as absent after TTL")
}

func TestFeedCache_InvalidateAll(t *testing.T) {
	mr, fc := setupFeedCache(t)
	ctx := context.Background()

	fc.Put(ctx, 1, []byte("one"), FeedPageTTL)
	fc.Put(ctx, 2, []byte("two"), FeedPageTTL)

	// A non-feed key must survive invalidation.
	mr.Set("rl:create_post:user:1", "3")

	require.NoError(t, fc.InvalidateAll(ctx))

	_, ok := fc.Get(ctx, 1)
	assert.False(t, ok)
	_, ok = fc.Get(ctx, 2)
	assert.False(t, ok)
	assert.True(t, mr.Exists("rl:create_post:user:1"))
}

func TestFeedCache_NilClientPassThrough(t *testing.T) {
	fc := NewFeedCache(nil)
	ctx := context.Background()

	fc.Put(ctx, 1, []byte("ignored"), FeedPageTTL)
	_, ok := fc.Get(ctx, 1)
	assert.False(t, ok)
	assert.NoError(t, fc.InvalidateAll(ctx))
}
