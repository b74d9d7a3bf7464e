package cache

import (
	"context"
	"time"

	"github.com/helpdeskhq/helpdesk/internal/application/common"
)

const revokedTokenPrefix = "auth:revoked:"

// TokenRevoker keeps a revoked token ID only until the token would have
// expired on its own.
type TokenRevoker struct {
	cache common.Cache
	now   func() time.Time
}

func NewTokenRevoker(cache common.Cache) *TokenRevoker {
	return &TokenRevoker{cache: cache, now: time.Now}
}

func (r *TokenRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.cache.Set(ctx, revokedTokenPrefix+tokenID, true, ttl)
}

// RevokeOnce revokes tokenID and reports whether this call was the one that
// did it. A token already past until is reported as not revoked here.
func (r *TokenRevoker) RevokeOnce(ctx context.Context, tokenID string, until time.Time) (bool, error) {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return false, nil
	}
	return r.cache.SetNX(ctx, revokedTokenPrefix+tokenID, true, ttl)
}

func (r *TokenRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var revoked bool
	found, err := r.cache.Get(ctx, revokedTokenPrefix+tokenID, &revoked)
	if err != nil {
		return false, err
	}
	return found && revoked, nil
}
