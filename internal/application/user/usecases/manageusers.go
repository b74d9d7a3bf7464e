package usecases

import (
	"context"
	"strings"

	"github.com/helpdeskhq/helpdesk/internal/application/common"
	commondto "github.com/helpdeskhq/helpdesk/internal/application/common/dto"
	"github.com/helpdeskhq/helpdesk/internal/application/user/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/query"
)

type ListUsersQuery struct {
	Role      string
	IsActive  *bool
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, q ListUsersQuery) (*commondto.Page[dto.UserDTO], error) {
	filter := user.ListFilter{
		BaseFilter: query.NewBaseFilter(query.WithPage(q.Page, q.PageSize), query.WithSort(q.SortBy, q.SortOrder)),
		IsActive:   q.IsActive,
		Search:     strings.TrimSpace(q.Search),
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	filter.PageSize = filter.Limit()
	if q.Role != "" {
		role := authorization.UserRole(strings.ToUpper(q.Role))
		if !role.IsValid() {
			return nil, errors.NewValidationError("invalid role: " + q.Role)
		}
		filter.Role = &role
	}

	users, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users")
	}
	return commondto.NewPage(dto.ToUserDTOs(users), total, filter.Page, filter.PageSize), nil
}

type GetUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.Repository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, id uint) (*dto.UserDTO, error) {
	u, err := loadUser(ctx, uc.userRepo, id, uc.logger)
	if err != nil {
		return nil, err
	}
	result := dto.ToUserDTO(u)
	return &result, nil
}

type UpdateUserRoleCommand struct {
	UserID uint
	Role   string
	Actor  authorization.Actor
}

type UpdateUserRoleUseCase struct {
	userRepo  user.Repository
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewUpdateUserRoleUseCase(userRepo user.Repository, publisher events.EventPublisher, logger logger.Interface) *UpdateUserRoleUseCase {
	return &UpdateUserRoleUseCase{userRepo: userRepo, publisher: publisher, logger: logger}
}

func (uc *UpdateUserRoleUseCase) Execute(ctx context.Context, cmd UpdateUserRoleCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing update user role use case", "user_id", cmd.UserID, "role", cmd.Role, "actor_id", cmd.Actor.UserID)

	if !cmd.Actor.IsAdmin() {
		return nil, errors.NewForbiddenError("only admins can change roles")
	}
	role := authorization.UserRole(strings.ToUpper(strings.TrimSpace(cmd.Role)))
	if !role.IsValid() {
		return nil, errors.NewValidationError("invalid role: " + cmd.Role)
	}
	if cmd.UserID == cmd.Actor.UserID && role != authorization.RoleAdmin {
		return nil, errors.NewBadRequestError("admins cannot demote themselves")
	}

	u, err := loadUser(ctx, uc.userRepo, cmd.UserID, uc.logger)
	if err != nil {
		return nil, err
	}
	oldRole := u.Role()
	changed, err := u.ChangeRole(role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if changed {
		if err := uc.userRepo.Update(ctx, u); err != nil {
			uc.logger.Errorw("failed to persist role change", "user_id", u.ID(), "error", err)
			return nil, errors.NewInternalError("failed to update role")
		}
		event := user.NewUserEvent(user.EventUserRoleChanged, u, cmd.Actor.UserID)
		event.OldValue = oldRole.String()
		event.NewValue = role.String()
		common.PublishEvent(uc.publisher, event, uc.logger)
	}

	result := dto.ToUserDTO(u)
	return &result, nil
}

type SetUserActiveCommand struct {
	UserID   uint
	IsActive bool
	Actor    authorization.Actor
}

type SetUserActiveUseCase struct {
	userRepo  user.Repository
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewSetUserActiveUseCase(userRepo user.Repository, publisher events.EventPublisher, logger logger.Interface) *SetUserActiveUseCase {
	return &SetUserActiveUseCase{userRepo: userRepo, publisher: publisher, logger: logger}
}

func (uc *SetUserActiveUseCase) Execute(ctx context.Context, cmd SetUserActiveCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing set user active use case", "user_id", cmd.UserID, "is_active", cmd.IsActive, "actor_id", cmd.Actor.UserID)

	if !cmd.Actor.IsAdmin() {
		return nil, errors.NewForbiddenError("only admins can change account status")
	}
	if cmd.UserID == cmd.Actor.UserID && !cmd.IsActive {
		return nil, errors.NewBadRequestError("admins cannot deactivate themselves")
	}

	u, err := loadUser(ctx, uc.userRepo, cmd.UserID, uc.logger)
	if err != nil {
		return nil, err
	}
	if u.SetActive(cmd.IsActive) {
		if err := uc.userRepo.Update(ctx, u); err != nil {
			uc.logger.Errorw("failed to persist status change", "user_id", u.ID(), "error", err)
			return nil, errors.NewInternalError("failed to update account status")
		}
		event := user.NewUserEvent(user.EventUserStatusChanged, u, cmd.Actor.UserID)
		event.OldValue = activeLabel(!cmd.IsActive)
		event.NewValue = activeLabel(cmd.IsActive)
		common.PublishEvent(uc.publisher, event, uc.logger)
	}

	result := dto.ToUserDTO(u)
	return &result, nil
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

type ListAgentsUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListAgentsUseCase(userRepo user.Repository, logger logger.Interface) *ListAgentsUseCase {
	return &ListAgentsUseCase{userRepo: userRepo, logger: logger}
}

// Execute lists the accounts tickets can be assigned to.
func (uc *ListAgentsUseCase) Execute(ctx context.Context, actor authorization.Actor) ([]dto.UserDTO, error) {
	if !actor.IsStaff() {
		return nil, errors.NewForbiddenError("only staff can list agents")
	}
	staff, err := uc.userRepo.ListActiveStaff(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list staff", "error", err)
		return nil, errors.NewInternalError("failed to list agents")
	}
	return dto.ToUserDTOs(staff), nil
}
