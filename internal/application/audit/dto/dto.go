package dto

import (
	"time"

	"github.com/helpdeskhq/helpdesk/internal/domain/audit"
)

type AuditLogDTO struct {
	ID         uint           `json:"id"`
	ActorID    *uint          `json:"actor_id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   uint           `json:"entity_id"`
	Details    map[string]any `json:"details"`
	IPAddress  string         `json:"ip_address,omitempty"`
	UserAgent  string         `json:"user_agent,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func ToAuditLogDTO(l *audit.Log) AuditLogDTO {
	details := l.Details
	if details == nil {
		details = map[string]any{}
	}
	return AuditLogDTO{
		ID:         l.ID,
		ActorID:    l.ActorID,
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Details:    details,
		IPAddress:  l.IPAddress,
		UserAgent:  l.UserAgent,
		CreatedAt:  l.CreatedAt,
	}
}

func ToAuditLogDTOs(items []*audit.Log) []AuditLogDTO {
	out := make([]AuditLogDTO, 0, len(items))
	for _, l := range items {
		out = append(out, ToAuditLogDTO(l))
	}
	return out
}
