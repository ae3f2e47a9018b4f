package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ParthJhaveri10/Lumeo/logger"
)

// CatalogCache stores raw catalog response payloads in Redis keyed by
// endpoint and query. It satisfies catalog.Store. Failures are
// logged and treated as misses; the cache never makes a call fail.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache wraps a Redis client. A nil client yields a cache
// that always misses, so callers don't need to branch on Redis being
// available.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

func cacheKey(endpoint string) string {
	return "catalog:" + endpoint
}

// Get returns the cached payload for an endpoint, if present.
func (c *CatalogCache) Get(ctx context.Context, endpoint string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, cacheKey(endpoint)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Debug("catalog cache read failed",
				logger.String("endpoint", endpoint),
				logger.ErrorField(err),
			)
		}
		return nil, false
	}
	return data, true
}

// Set stores a payload with the configured TTL. Best effort.
func (c *CatalogCache) Set(ctx context.Context, endpoint string, value []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(endpoint), value, c.ttl).Err(); err != nil {
		logger.Debug("catalog cache write failed",
			logger.String("endpoint", endpoint),
			logger.ErrorField(err),
		)
	}
}
