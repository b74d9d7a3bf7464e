package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter keeps a sliding window per key in a sorted set so all
// instances share one budget.
type RedisRateLimiter struct {
	client *redis.Client
	prefix string
}

func NewRedisRateLimiter(client *redis.Client, prefix string) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		prefix: prefix,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error) {
	now := time.Now()

	for _, w := range config.windows() {
		if w.limit <= 0 {
			continue
		}

		allowed, err := l.checkWindow(ctx, key, w.duration, w.limit, now)
		if err != nil {
			return false, err
		}
		if !allowed {
			return false, nil
		}
	}

	return true, nil
}

func (l *RedisRateLimiter) checkWindow(ctx context.Context, key string, window time.Duration, limit int, now time.Time) (bool, error) {
	redisKey := l.getKey(key, window)
	windowStart := now.Add(-window).UnixNano()
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))
	zcard := pipe.ZCard(ctx, redisKey)
	// members must be unique or concurrent hits in the same nanosecond collapse
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: uuid.NewString()})
	pipe.Expire(ctx, redisKey, window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	return zcard.Val() < int64(limit), nil
}

// RetryAfter waits for enough of the oldest hits to leave the window that the
// count drops below the limit. Rejected hits are counted too.
func (l *RedisRateLimiter) RetryAfter(ctx context.Context, key string, config RateLimitConfig) (time.Duration, error) {
	now := time.Now()
	var wait time.Duration

	for _, w := range config.windows() {
		if w.limit <= 0 {
			continue
		}

		redisKey := l.getKey(key, w.duration)
		windowStart := strconv.FormatInt(now.Add(-w.duration).UnixNano(), 10)
		hits, err := l.client.ZRangeByScoreWithScores(ctx, redisKey, &redis.ZRangeBy{
			Min: "(" + windowStart,
			Max: "+inf",
		}).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to read window %s: %w", w.duration, err)
		}
		if len(hits) < w.limit {
			continue
		}

		oldest := hits[len(hits)-w.limit]
		d := time.Unix(0, int64(oldest.Score)).Add(w.duration).Sub(now)
		if d > wait {
			wait = d
		}
	}

	return wait, nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	pattern := fmt.Sprintf("%sratelimit:%s:*", l.prefix, key)

	iter := l.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}
	return nil
}

func (l *RedisRateLimiter) getKey(identifier string, window time.Duration) string {
	return fmt.Sprintf("%sratelimit:%s:%s", l.prefix, identifier, window.String())
}
