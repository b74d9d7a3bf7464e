package dto

import (
	"time"

	"github.com/helpdeskhq/helpdesk/internal/domain/notification"
)

type NotificationDTO struct {
	ID        uint       `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	TicketID  *uint      `json:"ticket_id"`
	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

type UnreadCountDTO struct {
	Count int64 `json:"count"`
}

type MarkAllReadDTO struct {
	Updated int64 `json:"updated"`
}

type PreferencesDTO struct {
	EmailEnabled     bool      `json:"email_enabled"`
	InAppEnabled     bool      `json:"in_app_enabled"`
	OnTicketCreated  bool      `json:"on_ticket_created"`
	OnTicketAssigned bool      `json:"on_ticket_assigned"`
	OnStatusChanged  bool      `json:"on_status_changed"`
	OnCommentAdded   bool      `json:"on_comment_added"`
	OnSLABreached    bool      `json:"on_sla_breached"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func ToNotificationDTO(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID(),
		Type:      n.Type().String(),
		Title:     n.Title(),
		Message:   n.Message(),
		TicketID:  n.TicketID(),
		IsRead:    n.IsRead(),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
	}
}

func ToPreferencesDTO(p *notification.Preferences) PreferencesDTO {
	return PreferencesDTO{
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
