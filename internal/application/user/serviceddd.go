package user

import (
	"context"

	commondto "github.com/helpdeskhq/helpdesk/internal/application/common/dto"
	"github.com/helpdeskhq/helpdesk/internal/application/user/dto"
	"github.com/helpdeskhq/helpdesk/internal/application/user/usecases"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	domainUser "github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

// ServiceDDD is the application service behind the profile and user
// administration endpoints.
type ServiceDDD struct {
	getCurrentUserUC *usecases.GetCurrentUserUseCase
	updateProfileUC  *usecases.UpdateProfileUseCase
	changePasswordUC *usecases.ChangePasswordUseCase
	listUsersUC      *usecases.ListUsersUseCase
	getUserUC        *usecases.GetUserUseCase
	updateRoleUC     *usecases.UpdateUserRoleUseCase
	setActiveUC      *usecases.SetUserActiveUseCase
	listAgentsUC     *usecases.ListAgentsUseCase
	logger           logger.Interface
}

func NewServiceDDD(
	userRepo domainUser.Repository,
	passwordHasher domainUser.PasswordHasher,
	publisher events.EventPublisher,
	logger logger.Interface,
) *ServiceDDD {
	return &ServiceDDD{
		getCurrentUserUC: usecases.NewGetCurrentUserUseCase(userRepo, logger),
		updateProfileUC:  usecases.NewUpdateProfileUseCase(userRepo, logger),
		changePasswordUC: usecases.NewChangePasswordUseCase(userRepo, passwordHasher, logger),
		listUsersUC:      usecases.NewListUsersUseCase(userRepo, logger),
		getUserUC:        usecases.NewGetUserUseCase(userRepo, logger),
		updateRoleUC:     usecases.NewUpdateUserRoleUseCase(userRepo, publisher, logger),
		setActiveUC:      usecases.NewSetUserActiveUseCase(userRepo, publisher, logger),
		listAgentsUC:     usecases.NewListAgentsUseCase(userRepo, logger),
		logger:           logger,
	}
}

func (s *ServiceDDD) GetCurrentUser(ctx context.Context, userID uint) (*dto.UserDTO, error) {
	return s.getCurrentUserUC.Execute(ctx, userID)
}

func (s *ServiceDDD) UpdateProfile(ctx context.Context, cmd usecases.UpdateProfileCommand) (*dto.UserDTO, error) {
	return s.updateProfileUC.Execute(ctx, cmd)
}

func (s *ServiceDDD) ChangePassword(ctx context.Context, cmd usecases.ChangePasswordCommand) error {
	return s.changePasswordUC.Execute(ctx, cmd)
}

func (s *ServiceDDD) ListUsers(ctx context.Context, query usecases.ListUsersQuery) (*commondto.Page[dto.UserDTO], error) {
	return s.listUsersUC.Execute(ctx, query)
}

func (s *ServiceDDD) GetUser(ctx context.Context, id uint) (*dto.UserDTO, error) {
	return s.getUserUC.Execute(ctx, id)
}

func (s *ServiceDDD) UpdateUserRole(ctx context.Context, cmd usecases.UpdateUserRoleCommand) (*dto.UserDTO, error) {
	return s.updateRoleUC.Execute(ctx, cmd)
}

func (s *ServiceDDD) SetUserActive(ctx context.Context, cmd usecases.SetUserActiveCommand) (*dto.UserDTO, error) {
	return s.setActiveUC.Execute(ctx, cmd)
}

func (s *ServiceDDD) ListAgents(ctx context.Context, actor authorization.Actor) ([]dto.UserDTO, error) {
	return s.listAgentsUC.Execute(ctx, actor)
}
