package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/user/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

type SeedAdminCommand struct {
	Email    string
	Name     string
	Password string
	// Force creates another admin even when one exists.
	Force bool
}

type SeedAdminUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	logger   logger.Interface
}

func NewSeedAdminUseCase(userRepo user.Repository, hasher user.PasswordHasher, logger logger.Interface) *SeedAdminUseCase {
	return &SeedAdminUseCase{userRepo: userRepo, hasher: hasher, logger: logger}
}

// Execute creates the first ADMIN account.
func (uc *SeedAdminUseCase) Execute(ctx context.Context, cmd SeedAdminCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing seed admin use case", "email", cmd.Email)

	if !cmd.Force {
		count, err := uc.userRepo.CountByRole(ctx, authorization.RoleAdmin)
		if err != nil {
			uc.logger.Errorw("failed to count admins", "error", err)
			return nil, errors.NewInternalError("failed to seed admin")
		}
		if count > 0 {
			return nil, errors.NewConflictError("an admin account already exists")
		}
	}

	u, err := createAccount(ctx, uc.userRepo, uc.hasher, cmd.Email, cmd.Name, cmd.Password, authorization.RoleAdmin, uc.logger)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("admin account created", "user_id", u.ID())
	result := dto.ToUserDTO(u)
	return &result, nil
}
