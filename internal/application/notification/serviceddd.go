package notification

import (
	"context"

	commondto "github.com/helpdeskhq/helpdesk/internal/application/common/dto"
	"github.com/helpdeskhq/helpdesk/internal/application/notification/dto"
	"github.com/helpdeskhq/helpdesk/internal/application/notification/usecases"
	"github.com/helpdeskhq/helpdesk/internal/domain/notification"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

// ServiceDDD groups the notification inbox and preference use cases behind
// one facade for the HTTP handler.
type ServiceDDD struct {
	logger logger.Interface

	listNotifications      *usecases.ListNotificationsUseCase
	getUnreadCount         *usecases.GetUnreadCountUseCase
	markNotificationAsRead *usecases.MarkNotificationAsReadUseCase
	markAllAsRead          *usecases.MarkAllAsReadUseCase
	deleteNotification     *usecases.DeleteNotificationUseCase

	getPreferences    *usecases.GetPreferencesUseCase
	updatePreferences *usecases.UpdatePreferencesUseCase
}

func NewServiceDDD(
	notificationRepo notification.NotificationRepository,
	prefsRepo notification.PreferencesRepository,
	logger logger.Interface,
) *ServiceDDD {
	return &ServiceDDD{
		logger: logger,

		listNotifications:      usecases.NewListNotificationsUseCase(notificationRepo, logger),
		getUnreadCount:         usecases.NewGetUnreadCountUseCase(notificationRepo, logger),
		markNotificationAsRead: usecases.NewMarkNotificationAsReadUseCase(notificationRepo, logger),
		markAllAsRead:          usecases.NewMarkAllAsReadUseCase(notificationRepo, logger),
		deleteNotification:     usecases.NewDeleteNotificationUseCase(notificationRepo, logger),

		getPreferences:    usecases.NewGetPreferencesUseCase(prefsRepo, logger),
		updatePreferences: usecases.NewUpdatePreferencesUseCase(prefsRepo, logger),
	}
}

func (s *ServiceDDD) ListNotifications(ctx context.Context, query usecases.ListNotificationsQuery) (*commondto.Page[dto.NotificationDTO], error) {
	return s.listNotifications.Execute(ctx, query)
}

func (s *ServiceDDD) GetUnreadCount(ctx context.Context, userID uint) (*dto.UnreadCountDTO, error) {
	return s.getUnreadCount.Execute(ctx, userID)
}

func (s *ServiceDDD) MarkNotificationAsRead(ctx context.Context, id, userID uint) (*dto.NotificationDTO, error) {
	return s.markNotificationAsRead.Execute(ctx, usecases.MarkNotificationAsReadCommand{NotificationID: id, UserID: userID})
}

func (s *ServiceDDD) MarkAllNotificationsAsRead(ctx context.Context, userID uint) (*dto.MarkAllReadDTO, error) {
	return s.markAllAsRead.Execute(ctx, userID)
}

func (s *ServiceDDD) DeleteNotification(ctx context.Context, id, userID uint) error {
	return s.deleteNotification.Execute(ctx, usecases.DeleteNotificationCommand{NotificationID: id, UserID: userID})
}

func (s *ServiceDDD) GetPreferences(ctx context.Context, userID uint) (*dto.PreferencesDTO, error) {
	return s.getPreferences.Execute(ctx, userID)
}

func (s *ServiceDDD) UpdatePreferences(ctx context.Context, cmd usecases.UpdatePreferencesCommand) (*dto.PreferencesDTO, error) {
	return s.updatePreferences.Execute(ctx, cmd)
}
