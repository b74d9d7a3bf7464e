package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/application/user/usecases"
	"github.com/helpdeskhq/helpdesk/internal/shared/constants"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/utils"
)

type AuthMiddleware struct {
	tokens  usecases.TokenService
	revoker usecases.TokenRevoker
	logger  logger.Interface
}

func NewAuthMiddleware(tokens usecases.TokenService, revoker usecases.TokenRevoker, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:  tokens,
		revoker: revoker,
		logger:  logger,
	}
}

// RequireAuth accepts a bearer access token that has not been revoked and
// stores the caller in the gin context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortWithError(c, errors.NewUnauthorizedError("missing authorization token"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			utils.AbortWithError(c, errors.NewUnauthorizedError("invalid authorization header format"))
			return
		}

		claims, err := m.tokens.Verify(parts[1], usecases.TokenTypeAccess)
		if err != nil {
			if errors.ShouldLogAuthError(err) {
				m.logger.Warnw("failed to verify token", "error", err, "client_ip", c.ClientIP())
			}
			utils.AbortWithError(c, err)
			return
		}

		if m.revoker != nil {
			revoked, err := m.revoker.IsRevoked(c.Request.Context(), claims.TokenID)
			if err != nil {
				m.logger.Errorw("failed to check token revocation", "error", err)
				utils.AbortWithError(c, errors.NewInternalError("failed to verify token"))
				return
			}
			if revoked {
				utils.AbortWithError(c, errors.NewTokenInvalidError("access token"))
				return
			}
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserRole, string(claims.Role))
		c.Set(constants.ContextKeyTokenID, claims.TokenID)
		c.Set(constants.ContextKeyTokenExp, claims.ExpiresAt)

		c.Next()
	}
}
