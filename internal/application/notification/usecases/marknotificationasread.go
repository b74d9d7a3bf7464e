package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/notification/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/notification"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

type MarkNotificationAsReadCommand struct {
	NotificationID uint
	UserID         uint
}

// loadOwned returns the notification when it belongs to userID.
func loadOwned(ctx context.Context, repo notification.NotificationRepository, id, userID uint, log logger.Interface) (*notification.Notification, error) {
	n, err := repo.GetByID(ctx, id)
	if err != nil {
		log.Errorw("failed to find notification", "id", id, "error", err)
		return nil, errors.NewInternalError("failed to get notification")
	}
	if n == nil {
		return nil, errors.NewNotFoundError("notification not found")
	}
	if !n.BelongsTo(userID) {
		log.Warnw("unauthorized access to notification", "id", id, "user_id", userID, "owner_id", n.UserID())
		return nil, errors.NewForbiddenError("you don't have permission to access this notification")
	}
	return n, nil
}

type MarkNotificationAsReadUseCase struct {
	repo   notification.NotificationRepository
	logger logger.Interface
}

func NewMarkNotificationAsReadUseCase(repo notification.NotificationRepository, logger logger.Interface) *MarkNotificationAsReadUseCase {
	return &MarkNotificationAsReadUseCase{repo: repo, logger: logger}
}

func (uc *MarkNotificationAsReadUseCase) Execute(ctx context.Context, cmd MarkNotificationAsReadCommand) (*dto.NotificationDTO, error) {
	uc.logger.Infow("executing mark notification as read use case", "id", cmd.NotificationID, "user_id", cmd.UserID)

	n, err := loadOwned(ctx, uc.repo, cmd.NotificationID, cmd.UserID, uc.logger)
	if err != nil {
		return nil, err
	}

	if !n.IsRead() {
		n.MarkAsRead()
		if err := uc.repo.Update(ctx, n); err != nil {
			uc.logger.Errorw("failed to persist notification update", "id", n.ID(), "error", err)
			return nil, errors.NewInternalError("failed to save notification")
		}
	}

	result := dto.ToNotificationDTO(n)
	return &result, nil
}

type MarkAllAsReadUseCase struct {
	repo   notification.NotificationRepository
	logger logger.Interface
}

func NewMarkAllAsReadUseCase(repo notification.NotificationRepository, logger logger.Interface) *MarkAllAsReadUseCase {
	return &MarkAllAsReadUseCase{repo: repo, logger: logger}
}

func (uc *MarkAllAsReadUseCase) Execute(ctx context.Context, userID uint) (*dto.MarkAllReadDTO, error) {
	uc.logger.Infow("executing mark all as read use case", "user_id", userID)

	updated, err := uc.repo.MarkAllRead(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to mark all notifications as read", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to mark notifications as read")
	}
	return &dto.MarkAllReadDTO{Updated: updated}, nil
}

type DeleteNotificationCommand struct {
	NotificationID uint
	UserID         uint
}

type DeleteNotificationUseCase struct {
	repo   notification.NotificationRepository
	logger logger.Interface
}

func NewDeleteNotificationUseCase(repo notification.NotificationRepository, logger logger.Interface) *DeleteNotificationUseCase {
	return &DeleteNotificationUseCase{repo: repo, logger: logger}
}

func (uc *DeleteNotificationUseCase) Execute(ctx context.Context, cmd DeleteNotificationCommand) error {
	uc.logger.Infow("executing delete notification use case", "id", cmd.NotificationID, "user_id", cmd.UserID)

	n, err := loadOwned(ctx, uc.repo, cmd.NotificationID, cmd.UserID, uc.logger)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, n.ID()); err != nil {
		uc.logger.Errorw("failed to delete notification", "id", n.ID(), "error", err)
		return errors.NewInternalError("failed to delete notification")
	}
	return nil
}
