package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const maxIdle = 2 * time.Hour

type bucket struct {
	limiters []*rate.Limiter
	lastSeen time.Time
}

// MemoryRateLimiter is a per-process token bucket used when redis is
// disabled. Each window refills evenly with a burst of its full limit.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
	swept   time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweepLocked(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{}
		for _, w := range config.windows() {
			if w.limit <= 0 {
				continue
			}
			b.limiters = append(b.limiters, rate.NewLimiter(rate.Every(w.duration/time.Duration(w.limit)), w.limit))
		}
		l.buckets[key] = b
	}
	b.lastSeen = now

	// reserve from every window first so a rejection does not consume tokens
	reservations := make([]*rate.Reservation, 0, len(b.limiters))
	for _, lim := range b.limiters {
		r := lim.ReserveN(now, 1)
		if !r.OK() || r.DelayFrom(now) > 0 {
			r.CancelAt(now)
			for _, prev := range reservations {
				prev.CancelAt(now)
			}
			return false, nil
		}
		reservations = append(reservations, r)
	}
	return true, nil
}

func (l *MemoryRateLimiter) RetryAfter(ctx context.Context, key string, config RateLimitConfig) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		return 0, nil
	}

	now := l.now()
	var wait time.Duration
	for _, lim := range b.limiters {
		tokens := lim.TokensAt(now)
		if tokens >= 1 || lim.Limit() <= 0 {
			continue
		}
		d := time.Duration((1 - tokens) / float64(lim.Limit()) * float64(time.Second))
		if d > wait {
			wait = d
		}
	}
	return wait, nil
}

func (l *MemoryRateLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	delete(l.buckets, key)
	l.mu.Unlock()
	return nil
}

func (l *MemoryRateLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.swept) < time.Minute {
		return
	}
	l.swept = now
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > maxIdle {
			delete(l.buckets, k)
		}
	}
}
