package mappers

import (
	"github.com/helpdeskhq/helpdesk/internal/domain/notification"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/notification/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/persistence/models"
)

func NotificationToModel(n *notification.Notification) *models.NotificationModel {
	return &models.NotificationModel{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Type:      n.Type().String(),
		Title:     n.Title(),
		Message:   n.Message(),
		TicketID:  n.TicketID(),
		IsRead:    n.IsRead(),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
	}
}

func NotificationToDomain(model *models.NotificationModel) (*notification.Notification, error) {
	t, err := vo.NewNotificationType(model.Type)
	if err != nil {
		return nil, err
	}
	return notification.ReconstructNotification(
		model.ID,
		model.UserID,
		t,
		model.Title,
		model.Message,
		model.TicketID,
		model.IsRead,
		model.ReadAt,
		model.CreatedAt,
	)
}

func PreferencesToModel(p *notification.Preferences) *models.NotificationPreferencesModel {
	return &models.NotificationPreferencesModel{
		UserID:           p.UserID,
		EmailEnabled:     p.EmailEnabled,
		InAppEnabled:     p.InAppEnabled,
		OnTicketCreated:  p.OnTicketCreated,
		OnTicketAssigned: p.OnTicketAssigned,
		OnStatusChanged:  p.OnStatusChanged,
		OnCommentAdded:   p.OnCommentAdded,
		OnSLABreached:    p.OnSLABreached,
		UpdatedAt:        p.UpdatedAt,
	}
}

func PreferencesToDomain(model *models.NotificationPreferencesModel) *notification.Preferences {
	return &notification.Preferences{
		UserID:           model.UserID,
		EmailEnabled:     model.EmailEnabled,
		InAppEnabled:     model.InAppEnabled,
		OnTicketCreated:  model.OnTicketCreated,
		OnTicketAssigned: model.OnTicketAssigned,
		OnStatusChanged:  model.OnStatusChanged,
		OnCommentAdded:   model.OnCommentAdded,
		OnSLABreached:    model.OnSLABreached,
		UpdatedAt:        model.UpdatedAt,
	}
}
