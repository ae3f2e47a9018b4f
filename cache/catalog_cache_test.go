package cache

import (
	"context"
	"testing"
	"time"
)

// Without a Redis client every read is a miss and every write a no-op.
// The catalog client relies on this instead of branching on cache
// availability.
func TestCatalogCacheWithoutClientAlwaysMisses(t *testing.T) {
	ctx := context.Background()

	c := NewCatalogCache(nil, time.Minute)
	if data, ok := c.Get(ctx, "/search/songs?query=husn"); ok || data != nil {
		t.Fatalf("expected miss, got %q", data)
	}
	c.Set(ctx, "/search/songs?query=husn", []byte(`{}`))
	if _, ok := c.Get(ctx, "/search/songs?query=husn"); ok {
		t.Fatal("nil-client cache must not retain values")
	}
}

func TestCatalogCacheNilReceiverIsSafe(t *testing.T) {
	ctx := context.Background()

	var c *CatalogCache
	if _, ok := c.Get(ctx, "/songs?ids=a"); ok {
		t.Fatal("nil cache must miss")
	}
	c.Set(ctx, "/songs?ids=a", []byte(`{}`))
}

func TestCacheKeyIsNamespaced(t *testing.T) {
	if got := cacheKey("/albums?id=1"); got != "catalog:/albums?id=1" {
		t.Fatalf("unexpected key %q", got)
	}
}
