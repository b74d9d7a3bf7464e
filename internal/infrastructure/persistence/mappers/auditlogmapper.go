package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/helpdeskhq/helpdesk/internal/domain/audit"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/persistence/models"
)

func AuditLogToModel(l *audit.Log) (*models.AuditLogModel, error) {
	var details datatypes.JSON
	if len(l.Details) > 0 {
		raw, err := json.Marshal(l.Details)
		if err != nil {
			return nil, fmt.Errorf("failed to encode audit details: %w", err)
		}
		details = datatypes.JSON(raw)
	}
	return &models.AuditLogModel{
		ID:         l.ID,
		ActorID:    l.ActorID,
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Details:    details,
		IPAddress:  l.IPAddress,
		UserAgent:  l.UserAgent,
		CreatedAt:  l.CreatedAt,
	}, nil
}

func AuditLogToDomain(model *models.AuditLogModel) (*audit.Log, error) {
	var details map[string]any
	if len(model.Details) > 0 {
		if err := json.Unmarshal(model.Details, &details); err != nil {
			return nil, fmt.Errorf("failed to decode audit details for log %d: %w", model.ID, err)
		}
	}
	return &audit.Log{
		ID:         model.ID,
		ActorID:    model.ActorID,
		Action:     model.Action,
		EntityType: model.EntityType,
		EntityID:   model.EntityID,
		Details:    details,
		IPAddress:  model.IPAddress,
		UserAgent:  model.UserAgent,
		CreatedAt:  model.CreatedAt,
	}, nil
}
