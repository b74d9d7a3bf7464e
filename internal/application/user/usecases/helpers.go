package usecases

import (
	"context"
	"fmt"

	"github.com/helpdeskhq/helpdesk/internal/application/user/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

func loadUser(ctx context.Context, repo user.Repository, id uint, log logger.Interface) (*user.User, error) {
	u, err := repo.GetByID(ctx, id)
	if err != nil {
		log.Errorw("failed to get user", "user_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get user")
	}
	if u == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user %d not found", id))
	}
	return u, nil
}

func issueTokens(tokens TokenService, u *user.User, log logger.Interface) (*dto.AuthResultDTO, error) {
	pair, err := tokens.Generate(u.ID(), u.Role())
	if err != nil {
		log.Errorw("failed to generate tokens", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to generate tokens")
	}
	return &dto.AuthResultDTO{
		User:         dto.ToUserDTO(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
