package usecases

import (
	"context"
	"time"

	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenClaims is the verified content of a token.
type TokenClaims struct {
	UserID    uint
	Role      authorization.UserRole
	TokenID   string
	Type      TokenType
	ExpiresAt time.Time
}

type TokenService interface {
	Generate(userID uint, role authorization.UserRole) (*TokenPair, error)
	// Verify checks signature, expiry and the expected token type.
	Verify(token string, expected TokenType) (*TokenClaims, error)
}

// TokenRevoker remembers revoked token IDs until they would expire anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	// RevokeOnce reports false when tokenID was already revoked.
	RevokeOnce(ctx context.Context, tokenID string, until time.Time) (bool, error)
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
