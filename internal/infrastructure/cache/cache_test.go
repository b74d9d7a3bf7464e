package cache

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statsEntry struct {
	Total int64            `json:"total"`
	By    map[string]int64 `json:"by"`
}

func newMemoryCache(t *testing.T) *MemoryCache {
	t.Helper()
	c, err := NewMemoryCache(time.Minute)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := newMemoryCache(t)
	ctx := context.Background()

	var got statsEntry
	found, err := c.Get(ctx, "dashboard:stats:USER:1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := statsEntry{Total: 3, By: map[string]int64{"OPEN": 2}}
	require.NoError(t, c.Set(ctx, "dashboard:stats:USER:1", want, 0))

	found, err = c.Get(ctx, "dashboard:stats:USER:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, c.Delete(ctx, "dashboard:stats:USER:1"))
	found, err = c.Get(ctx, "dashboard:stats:USER:1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_DeleteByPattern(t *testing.T) {
	c := newMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "dashboard:stats:USER:1", 1, 0))
	require.NoError(t, c.Set(ctx, "dashboard:stats:AGENT:2", 2, 0))
	require.NoError(t, c.Set(ctx, "auth:revoked:abc", true, 0))

	require.NoError(t, c.DeleteByPattern(ctx, "dashboard:*"))

	var v int
	found, _ := c.Get(ctx, "dashboard:stats:USER:1", &v)
	assert.False(t, found)
	found, _ = c.Get(ctx, "dashboard:stats:AGENT:2", &v)
	assert.False(t, found)
	var b bool
	found, _ = c.Get(ctx, "auth:revoked:abc", &b)
	assert.True(t, found)

	assert.Error(t, c.DeleteByPattern(ctx, "dashboard:["))
}

func TestTokenRevoker(t *testing.T) {
	c := newMemoryCache(t)
	ctx := context.Background()
	r := NewTokenRevoker(c)

	require.NoError(t, r.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = r.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	// already expired tokens need no entry
	require.NoError(t, r.Revoke(ctx, "jti-3", time.Now().Add(-time.Minute)))
	revoked, err = r.IsRevoked(ctx, "jti-3")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryCache_SetReportsRejectedValue(t *testing.T) {
	c, err := newMemoryCacheWithCost(time.Minute, 1024)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "auth:revoked:small", true, 0))

	err = c.Set(ctx, "dashboard:stats:USER:1", strings.Repeat("x", 4096), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected")

	c.mu.Lock()
	_, tracked := c.keys["dashboard:stats:USER:1"]
	c.mu.Unlock()
	assert.False(t, tracked, "rejected keys are not tracked")

	var b bool
	found, err := c.Get(ctx, "auth:revoked:small", &b)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestMemoryCache_SetAfterClose(t *testing.T) {
	c, err := NewMemoryCache(time.Minute)
	require.NoError(t, err)
	c.Close()

	err = c.Set(context.Background(), "auth:revoked:jti-1", true, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dropped")
	assert.Empty(t, c.keys)
}

func TestMemoryCache_SetNX(t *testing.T) {
	c := newMemoryCache(t)
	ctx := context.Background()

	const callers = 16
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := c.SetNX(ctx, "auth:revoked:jti-1", true, 0)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)

	require.NoError(t, c.Delete(ctx, "auth:revoked:jti-1"))
	ok, err := c.SetNX(ctx, "auth:revoked:jti-1", true, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTokenRevoker_RevokeOnce(t *testing.T) {
	c := newMemoryCache(t)
	ctx := context.Background()
	r := NewTokenRevoker(c)
	until := time.Now().Add(time.Hour)

	first, err := r.RevokeOnce(ctx, "jti-1", until)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := r.RevokeOnce(ctx, "jti-1", until)
	require.NoError(t, err)
	assert.False(t, second)

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	expired, err := r.RevokeOnce(ctx, "jti-2", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.False(t, expired)
}

func TestTokenRevoker_SurfacesCacheFailure(t *testing.T) {
	c, err := NewMemoryCache(time.Minute)
	require.NoError(t, err)
	c.Close()
	r := NewTokenRevoker(c)

	assert.Error(t, r.Revoke(context.Background(), "jti-1", time.Now().Add(time.Hour)))
}

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})
	return client
}

func TestRedisCache(t *testing.T) {
	client := setupTestRedis(t)
	c := NewRedisCache(client, "test:", time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "dashboard:stats:USER:1", statsEntry{Total: 1}, 0))
	require.NoError(t, c.Set(ctx, "dashboard:stats:USER:2", statsEntry{Total: 2}, time.Second*30))
	require.NoError(t, c.Set(ctx, "other", "keep", 0))

	var got statsEntry
	found, err := c.Get(ctx, "dashboard:stats:USER:2", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(2), got.Total)

	ttl, err := client.TTL(ctx, "test:dashboard:stats:USER:1").Result()
	require.NoError(t, err)
	assert.InDelta(t, time.Minute.Seconds(), ttl.Seconds(), 2)

	require.NoError(t, c.DeleteByPattern(ctx, "dashboard:*"))
	found, err = c.Get(ctx, "dashboard:stats:USER:1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	var s string
	found, err = c.Get(ctx, "other", &s)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "keep", s)

	ok, err := c.SetNX(ctx, "other", "replaced", 0)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = c.SetNX(ctx, "fresh", "first", 0)
	require.NoError(t, err)
	assert.True(t, ok)
}
