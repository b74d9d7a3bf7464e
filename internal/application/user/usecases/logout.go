package usecases

import (
	"context"
	"time"

	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

type LogoutCommand struct {
	UserID          uint
	AccessTokenID   string
	AccessExpiresAt time.Time
	// RefreshToken is optional; when present it is revoked too.
	RefreshToken string
}

type LogoutUseCase struct {
	tokens  TokenService
	revoker TokenRevoker
	logger  logger.Interface
}

func NewLogoutUseCase(tokens TokenService, revoker TokenRevoker, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		tokens:  tokens,
		revoker: revoker,
		logger:  logger,
	}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	if cmd.AccessTokenID == "" {
		return errors.NewBadRequestError("access token has no ID")
	}

	if err := uc.revoker.Revoke(ctx, cmd.AccessTokenID, cmd.AccessExpiresAt); err != nil {
		uc.logger.Errorw("failed to revoke access token", "user_id", cmd.UserID, "error", err)
		return errors.NewInternalError("failed to logout")
	}

	if cmd.RefreshToken != "" {
		claims, err := uc.tokens.Verify(cmd.RefreshToken, TokenTypeRefresh)
		if err == nil && claims.UserID == cmd.UserID {
			if err := uc.revoker.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
				uc.logger.Warnw("failed to revoke refresh token", "user_id", cmd.UserID, "error", err)
			}
		}
	}

	uc.logger.Infow("user logged out successfully", "user_id", cmd.UserID)
	return nil
}
