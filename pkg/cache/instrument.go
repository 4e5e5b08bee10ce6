package cache

import (
	"context"
	"time"

	"github.com/jvalaj/gridai/pkg/observability"
)

// InstrumentedCache wraps a Cache and reports hits, misses and writes to
// the registered observability hooks. The keyType labels the events, e.g.
// "layout" or "artifact".
type InstrumentedCache struct {
	inner   Cache
	keyType string
}

// Instrument wraps a cache with observability reporting.
func Instrument(inner Cache, keyType string) Cache {
	return &InstrumentedCache{inner: inner, keyType: keyType}
}

// Get retrieves a value and reports the hit or miss.
func (c *InstrumentedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.inner.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, c.keyType)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.keyType)
		}
	}
	return data, hit, err
}

// Set stores a value and reports the write.
func (c *InstrumentedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, c.keyType, len(data))
	}
	return err
}

// Delete removes a value.
func (c *InstrumentedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

// Close closes the underlying cache.
func (c *InstrumentedCache) Close() error {
	return c.inner.Close()
}

// Ensure InstrumentedCache implements Cache.
var _ Cache = (*InstrumentedCache)(nil)
