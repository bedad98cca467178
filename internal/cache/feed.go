package cache

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const feedPageKeyPrefix = "feed:page:"

// FeedPageTTL is how long a rendered global feed page stays cached. New or
// deleted posts do not appear on the global feed until a cached page expires.
const FeedPageTTL = 20 * time.Second

// FeedPageKey returns the cache key for a global feed page number.
func FeedPageKey(page int) string {
	return fmt.Sprintf("%s%d", feedPageKeyPrefix, page)
}

// FeedCache stores fully rendered global feed pages, keyed by page number
// and independent of viewer identity. Only the global feed is cached; group,
// author, and personalized feeds are always computed live.
type FeedCache interface {
	Get(ctx context.Context, page int) ([]byte, bool)
	Put(ctx context.Context, page int, body []byte, ttl time.Duration)
	InvalidateAll(ctx context.Context) error
}

// NewFeedCache returns a Redis-backed FeedCache, or a pass-through cache
// when no Redis client is available.
func NewFeedCache(client *redis.Client) FeedCache {
	if client == nil {
		return nopFeedCache{}
	}
	return &redisFeedCache{client: client}
}

type redisFeedCache struct {
	client *redis.Client
}

func (c *redisFeedCache) Get(ctx context.Context, page int) ([]byte, bool) {
	body, err := c.client.Get(ctx, FeedPageKey(page)).Bytes()
	if err != nil {
		if err != redis.Nil {
			middleware.Logger.WarnContext(ctx, "feed cache get failed", "page", page, "error", err)
		}
		return nil, false
	}
	middleware.FeedCacheHits.Inc()
	return body, true
}

// Put stores a rendered page best-effort. Concurrent writers for the same
// page overwrite each other with equivalent content, which is harmless.
func (c *redisFeedCache) Put(ctx context.Context, page int, body []byte, ttl time.Duration) {
	middleware.FeedCacheMisses.Inc()
	if err := c.client.Set(ctx, FeedPageKey(page), body, ttl).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "feed cache put failed", "page", page, "error", err)
	}
}

func (c *redisFeedCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, feedPageKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// nopFeedCache is used when Redis is unavailable; every Get is a miss.
type nopFeedCache struct{}

func (nopFeedCache) Get(context.Context, int) ([]byte, bool)            { return nil, false }
func (nopFeedCache) Put(context.Context, int, []byte, time.Duration)    {}
func (nopFeedCache) InvalidateAll(context.Context) error                { return nil }
