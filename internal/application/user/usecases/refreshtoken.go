package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/user/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenUseCase struct {
	userRepo user.Repository
	tokens   TokenService
	revoker  TokenRevoker
	logger   logger.Interface
}

func NewRefreshTokenUseCase(
	userRepo user.Repository,
	tokens TokenService,
	revoker TokenRevoker,
	logger logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		revoker:  revoker,
		logger:   logger,
	}
}

// Execute rotates the pair: the presented refresh token is revoked and a new
// pair carrying the user's current role is issued.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*dto.AuthResultDTO, error) {
	claims, err := uc.tokens.Verify(cmd.RefreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	u, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", claims.UserID, "error", err)
		return nil, errors.NewInternalError("failed to refresh token")
	}
	if u == nil {
		return nil, errors.NewTokenInvalidError("refresh token")
	}
	if !u.IsActive() {
		return nil, errors.NewAccountInactiveError()
	}

	// the revocation doubles as the claim on this token; only one caller wins
	claimed, err := uc.revoker.RevokeOnce(ctx, claims.TokenID, claims.ExpiresAt)
	if err != nil {
		uc.logger.Errorw("failed to revoke refresh token", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to refresh token")
	}
	if !claimed {
		uc.logger.Warnw("revoked refresh token presented", "user_id", u.ID(), "token_id", claims.TokenID)
		return nil, errors.NewTokenInvalidError("refresh token")
	}

	return issueTokens(uc.tokens, u, uc.logger)
}
