package handlers

import (
	"context"

	commondto "github.com/helpdeskhq/helpdesk/internal/application/common/dto"
	notificationdto "github.com/helpdeskhq/helpdesk/internal/application/notification/dto"
	notificationusecases "github.com/helpdeskhq/helpdesk/internal/application/notification/usecases"
	"github.com/helpdeskhq/helpdesk/internal/application/user/dto"
	"github.com/helpdeskhq/helpdesk/internal/application/user/usecases"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
)

// Use case interfaces for the handlers in this package, so they can be tested
// with mocks.

type registerUseCase interface {
	Execute(ctx context.Context, cmd usecases.RegisterCommand) (*dto.AuthResultDTO, error)
}

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*dto.AuthResultDTO, error)
}

type refreshTokenUseCase interface {
	Execute(ctx context.Context, cmd usecases.RefreshTokenCommand) (*dto.AuthResultDTO, error)
}

type logoutUseCase interface {
	Execute(ctx context.Context, cmd usecases.LogoutCommand) error
}

type profileService interface {
	GetCurrentUser(ctx context.Context, userID uint) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, cmd usecases.UpdateProfileCommand) (*dto.UserDTO, error)
	ChangePassword(ctx context.Context, cmd usecases.ChangePasswordCommand) error
}

type userService interface {
	ListUsers(ctx context.Context, query usecases.ListUsersQuery) (*commondto.Page[dto.UserDTO], error)
	GetUser(ctx context.Context, id uint) (*dto.UserDTO, error)
	UpdateUserRole(ctx context.Context, cmd usecases.UpdateUserRoleCommand) (*dto.UserDTO, error)
	SetUserActive(ctx context.Context, cmd usecases.SetUserActiveCommand) (*dto.UserDTO, error)
	ListAgents(ctx context.Context, actor authorization.Actor) ([]dto.UserDTO, error)
}

type notificationService interface {
	ListNotifications(ctx context.Context, query notificationusecases.ListNotificationsQuery) (*commondto.Page[notificationdto.NotificationDTO], error)
	GetUnreadCount(ctx context.Context, userID uint) (*notificationdto.UnreadCountDTO, error)
	MarkNotificationAsRead(ctx context.Context, id, userID uint) (*notificationdto.NotificationDTO, error)
	MarkAllNotificationsAsRead(ctx context.Context, userID uint) (*notificationdto.MarkAllReadDTO, error)
	DeleteNotification(ctx context.Context, id, userID uint) error
	GetPreferences(ctx context.Context, userID uint) (*notificationdto.PreferencesDTO, error)
	UpdatePreferences(ctx context.Context, cmd notificationusecases.UpdatePreferencesCommand) (*notificationdto.PreferencesDTO, error)
}
