package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/common"
	"github.com/helpdeskhq/helpdesk/internal/application/user/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/user/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

type LoginCommand struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

type LoginUseCase struct {
	userRepo  user.Repository
	hasher    user.PasswordHasher
	tokens    TokenService
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	tokens TokenService,
	publisher events.EventPublisher,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.AuthResultDTO, error) {
	uc.logger.Infow("executing login use case", "ip_address", cmd.IPAddress)

	email, err := vo.NewEmail(cmd.Email)
	if err != nil || cmd.Password == "" {
		return nil, errors.NewInvalidCredentialsError()
	}

	u, err := uc.userRepo.GetByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, errors.NewInternalError("failed to login")
	}
	if u == nil {
		uc.logger.Warnw("login attempt for unknown email", "ip_address", cmd.IPAddress)
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.logger.Warnw("login attempt with wrong password", "user_id", u.ID(), "ip_address", cmd.IPAddress)
		return nil, errors.NewInvalidCredentialsError()
	}
	if !u.IsActive() {
		uc.logger.Warnw("login attempt on inactive account", "user_id", u.ID())
		return nil, errors.NewAccountInactiveError()
	}

	u.RecordLogin()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Warnw("failed to record last login", "user_id", u.ID(), "error", err)
	}

	event := user.NewUserEvent(user.EventUserLoggedIn, u, u.ID())
	event.IPAddress = cmd.IPAddress
	event.UserAgent = cmd.UserAgent
	common.PublishEvent(uc.publisher, event, uc.logger)

	uc.logger.Infow("user logged in successfully", "user_id", u.ID())
	return issueTokens(uc.tokens, u, uc.logger)
}
