package usecases

import (
	"context"

	commondto "github.com/helpdeskhq/helpdesk/internal/application/common/dto"
	"github.com/helpdeskhq/helpdesk/internal/application/notification/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/notification"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/query"
)

type ListNotificationsQuery struct {
	UserID     uint
	UnreadOnly bool
	Page       int
	PageSize   int
}

type ListNotificationsUseCase struct {
	repo   notification.NotificationRepository
	logger logger.Interface
}

func NewListNotificationsUseCase(repo notification.NotificationRepository, logger logger.Interface) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{repo: repo, logger: logger}
}

// Execute lists the user's notifications newest first.
func (uc *ListNotificationsUseCase) Execute(ctx context.Context, q ListNotificationsQuery) (*commondto.Page[dto.NotificationDTO], error) {
	page := query.PageFilter{Page: q.Page, PageSize: q.PageSize}
	if page.Page <= 0 {
		page.Page = 1
	}
	page.PageSize = page.Limit()

	items, total, err := uc.repo.ListByUser(ctx, q.UserID, q.UnreadOnly, page)
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "user_id", q.UserID, "error", err)
		return nil, errors.NewInternalError("failed to list notifications")
	}

	result := make([]dto.NotificationDTO, 0, len(items))
	for _, n := range items {
		result = append(result, dto.ToNotificationDTO(n))
	}
	return commondto.NewPage(result, total, page.Page, page.PageSize), nil
}

type GetUnreadCountUseCase struct {
	repo   notification.NotificationRepository
	logger logger.Interface
}

func NewGetUnreadCountUseCase(repo notification.NotificationRepository, logger logger.Interface) *GetUnreadCountUseCase {
	return &GetUnreadCountUseCase{repo: repo, logger: logger}
}

func (uc *GetUnreadCountUseCase) Execute(ctx context.Context, userID uint) (*dto.UnreadCountDTO, error) {
	count, err := uc.repo.CountUnread(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to count unread notifications", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to count unread notifications")
	}
	return &dto.UnreadCountDTO{Count: count}, nil
}
