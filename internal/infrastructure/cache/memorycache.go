package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

// MemoryCache implements common.Cache in process for single-instance
// deployments without redis. Values are JSON-encoded like RedisCache so
// callers see identical copy semantics.
type MemoryCache struct {
	store      *ristretto.Cache
	defaultTTL time.Duration

	mu   sync.Mutex
	keys map[string]time.Time
}

func NewMemoryCache(defaultTTL time.Duration) (*MemoryCache, error) {
	return newMemoryCacheWithCost(defaultTTL, 64<<20)
}

func newMemoryCacheWithCost(defaultTTL time.Duration, maxCost int64) (*MemoryCache, error) {
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}
	return &MemoryCache{
		store:      store,
		defaultTTL: defaultTTL,
		keys:       make(map[string]time.Time),
	}, nil
}

func (c *MemoryCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := c.store.Get(key)
	if !ok {
		return false, nil
	}
	data, ok := raw.([]byte)
	if !ok {
		return false, fmt.Errorf("unexpected cache value for %s", key)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storeLocked(key, data, ttl)
}

// SetNX holds the key lock across the existence check and the write, so
// concurrent callers for one key see exactly one success.
func (c *MemoryCache) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.store.Get(key); ok {
		return false, nil
	}
	if err := c.storeLocked(key, data, ttl); err != nil {
		return false, err
	}
	return true, nil
}

// storeLocked only tracks keys the store actually admitted.
func (c *MemoryCache) storeLocked(key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	if !c.store.SetWithTTL(key, data, int64(len(data)), ttl) {
		return fmt.Errorf("memory cache dropped key %s", key)
	}
	// admission is asynchronous; wait so the outcome is visible
	c.store.Wait()
	if _, ok := c.store.Get(key); !ok {
		return fmt.Errorf("memory cache rejected key %s", key)
	}

	c.keys[key] = time.Now().Add(ttl)
	c.pruneLocked()
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		c.store.Del(k)
		delete(c.keys, k)
	}
	return nil
}

// DeleteByPattern matches with path.Match, which covers the '*' globs used
// for cache keys.
func (c *MemoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid cache pattern %q: %w", pattern, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.keys {
		if ok, _ := path.Match(pattern, k); ok {
			c.store.Del(k)
			delete(c.keys, k)
		}
	}
	return nil
}

func (c *MemoryCache) Close() {
	c.store.Close()
}

func (c *MemoryCache) pruneLocked() {
	now := time.Now()
	for k, expires := range c.keys {
		if now.After(expires) {
			delete(c.keys, k)
		}
	}
}
