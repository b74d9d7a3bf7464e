package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/common"
	"github.com/helpdeskhq/helpdesk/internal/application/user/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/user/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

type RegisterCommand struct {
	Email     string
	Name      string
	Password  string
	IPAddress string
	UserAgent string
}

type RegisterUseCase struct {
	userRepo  user.Repository
	hasher    user.PasswordHasher
	tokens    TokenService
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewRegisterUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	tokens TokenService,
	publisher events.EventPublisher,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute creates a USER account and signs it in.
func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*dto.AuthResultDTO, error) {
	uc.logger.Infow("executing register use case", "ip_address", cmd.IPAddress)

	u, err := createAccount(ctx, uc.userRepo, uc.hasher, cmd.Email, cmd.Name, cmd.Password, authorization.RoleUser, uc.logger)
	if err != nil {
		return nil, err
	}

	event := user.NewUserEvent(user.EventUserRegistered, u, u.ID())
	event.IPAddress = cmd.IPAddress
	event.UserAgent = cmd.UserAgent
	common.PublishEvent(uc.publisher, event, uc.logger)

	uc.logger.Infow("user registered successfully", "user_id", u.ID())
	return issueTokens(uc.tokens, u, uc.logger)
}

// createAccount validates the input and stores a new active account.
func createAccount(
	ctx context.Context,
	repo user.Repository,
	hasher user.PasswordHasher,
	email, name, password string,
	role authorization.UserRole,
	log logger.Interface,
) (*user.User, error) {
	emailVO, err := vo.NewEmail(email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	nameVO, err := vo.NewName(name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := vo.ValidatePassword(password); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := repo.ExistsByEmail(ctx, emailVO.String())
	if err != nil {
		log.Errorw("failed to check email", "error", err)
		return nil, errors.NewInternalError("failed to create account")
	}
	if exists {
		return nil, errors.NewConflictError("email is already registered")
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		log.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to create account")
	}

	u, err := user.NewUser(emailVO, nameVO, hash, role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := repo.Create(ctx, u); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("email is already registered")
		}
		log.Errorw("failed to create user", "error", err)
		return nil, errors.NewInternalError("failed to create account")
	}
	return u, nil
}
