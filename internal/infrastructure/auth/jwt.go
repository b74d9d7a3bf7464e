package auth

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/helpdeskhq/helpdesk/internal/application/user/usecases"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
)

const issuer = "helpdesk"

type Claims struct {
	Role      authorization.UserRole `json:"role"`
	TokenType usecases.TokenType     `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService signs HS256 access and refresh tokens. Every token carries a
// random jti so it can be revoked on its own.
type JWTService struct {
	secret           []byte
	accessExpMinutes int
	refreshExpDays   int
	now              func() time.Time
}

func NewJWTService(secret string, accessExpMinutes, refreshExpDays int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		refreshExpDays:   refreshExpDays,
		now:              biztime.NowUTC,
	}
}

func (s *JWTService) Generate(userID uint, role authorization.UserRole) (*usecases.TokenPair, error) {
	now := s.now()

	accessToken, err := s.sign(userID, role, usecases.TokenTypeAccess, now, now.Add(s.AccessTTL()))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshExp := now.Add(time.Duration(s.refreshExpDays) * 24 * time.Hour)
	refreshToken, err := s.sign(userID, role, usecases.TokenTypeRefresh, now, refreshExp)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &usecases.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessExpMinutes * 60),
	}, nil
}

func (s *JWTService) sign(userID uint, role authorization.UserRole, tokenType usecases.TokenType, now, exp time.Time) (string, error) {
	claims := &Claims{
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify returns TOKEN_EXPIRED for an otherwise valid expired token and
// TOKEN_INVALID for everything else, including a token of the wrong type.
func (s *JWTService) Verify(tokenString string, expected usecases.TokenType) (*usecases.TokenClaims, error) {
	label := string(expected) + " token"

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewTokenExpiredError(label)
		}
		return nil, errors.NewTokenInvalidError(label)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != expected || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, errors.NewTokenInvalidError(label)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return nil, errors.NewTokenInvalidError(label)
	}

	return &usecases.TokenClaims{
		UserID:    uint(userID),
		Role:      authorization.ParseUserRole(string(claims.Role)),
		TokenID:   claims.ID,
		Type:      claims.TokenType,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// AccessTTL returns the access token lifetime.
func (s *JWTService) AccessTTL() time.Duration {
	return time.Duration(s.accessExpMinutes) * time.Minute
}
