package usecases

import (
	"context"

	commondto "github.com/helpdeskhq/helpdesk/internal/application/common/dto"
	"github.com/helpdeskhq/helpdesk/internal/application/notification/dto"
)

type ListNotificationsExecutor interface {
	Execute(ctx context.Context, query ListNotificationsQuery) (*commondto.Page[dto.NotificationDTO], error)
}

type GetUnreadCountExecutor interface {
	Execute(ctx context.Context, userID uint) (*dto.UnreadCountDTO, error)
}

type MarkNotificationAsReadExecutor interface {
	Execute(ctx context.Context, cmd MarkNotificationAsReadCommand) (*dto.NotificationDTO, error)
}

type MarkAllAsReadExecutor interface {
	Execute(ctx context.Context, userID uint) (*dto.MarkAllReadDTO, error)
}

type DeleteNotificationExecutor interface {
	Execute(ctx context.Context, cmd DeleteNotificationCommand) error
}

type GetPreferencesExecutor interface {
	Execute(ctx context.Context, userID uint) (*dto.PreferencesDTO, error)
}

type UpdatePreferencesExecutor interface {
	Execute(ctx context.Context, cmd UpdatePreferencesCommand) (*dto.PreferencesDTO, error)
}
