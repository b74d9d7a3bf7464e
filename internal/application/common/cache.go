package common

import (
	"context"
	"time"

	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

// Cache stores JSON-encoded values under prefixed keys.
type Cache interface {
	// Get decodes the cached value into dest and reports whether it existed.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value; ttl <= 0 uses the default TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// SetNX stores value only if key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// GetOrSet returns the cached value for key or loads and caches it. Cache
// failures only cost a reload.
func GetOrSet[T any](
	ctx context.Context,
	cache Cache,
	key string,
	ttl time.Duration,
	loader func(ctx context.Context) (T, error),
	log logger.Interface,
) (T, error) {
	var value T
	if cache != nil {
		found, err := cache.Get(ctx, key, &value)
		if err != nil {
			log.Warnw("cache read failed", "key", key, "error", err)
		} else if found {
			return value, nil
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return value, err
	}

	if cache != nil {
		if err := cache.Set(ctx, key, value, ttl); err != nil {
			log.Warnw("cache write failed", "key", key, "error", err)
		}
	}
	return value, nil
}
