package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/user/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/user/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

type GetCurrentUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetCurrentUserUseCase(userRepo user.Repository, logger logger.Interface) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, userID uint) (*dto.UserDTO, error) {
	u, err := loadUser(ctx, uc.userRepo, userID, uc.logger)
	if err != nil {
		return nil, err
	}
	result := dto.ToUserDTO(u)
	return &result, nil
}

type UpdateProfileCommand struct {
	UserID uint
	Name   string
}

type UpdateProfileUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewUpdateProfileUseCase(userRepo user.Repository, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{userRepo: userRepo, logger: logger}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing update profile use case", "user_id", cmd.UserID)

	name, err := vo.NewName(cmd.Name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	u, err := loadUser(ctx, uc.userRepo, cmd.UserID, uc.logger)
	if err != nil {
		return nil, err
	}
	if err := u.UpdateName(name); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to persist user updates", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update profile")
	}

	result := dto.ToUserDTO(u)
	return &result, nil
}

type ChangePasswordCommand struct {
	UserID      uint
	OldPassword string
	NewPassword string
}

type ChangePasswordUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	logger   logger.Interface
}

func NewChangePasswordUseCase(userRepo user.Repository, hasher user.PasswordHasher, logger logger.Interface) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{userRepo: userRepo, hasher: hasher, logger: logger}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	uc.logger.Infow("executing change password use case", "user_id", cmd.UserID)

	if err := vo.ValidatePassword(cmd.NewPassword); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if cmd.OldPassword == cmd.NewPassword {
		return errors.NewValidationError("new password must differ from the current one")
	}

	u, err := loadUser(ctx, uc.userRepo, cmd.UserID, uc.logger)
	if err != nil {
		return err
	}
	if err := uc.hasher.Verify(cmd.OldPassword, u.PasswordHash()); err != nil {
		uc.logger.Warnw("wrong current password on password change", "user_id", u.ID())
		return errors.NewValidationError("current password is incorrect")
	}

	hash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "user_id", u.ID(), "error", err)
		return errors.NewInternalError("failed to change password")
	}
	if err := u.ChangePasswordHash(hash); err != nil {
		return errors.NewInternalError("failed to change password")
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to persist user updates", "user_id", u.ID(), "error", err)
		return errors.NewInternalError("failed to change password")
	}

	uc.logger.Infow("password changed successfully", "user_id", u.ID())
	return nil
}
