package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/helpdeskhq/helpdesk/internal/domain/audit"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/persistence/models"
	"github.com/helpdeskhq/helpdesk/internal/shared/db"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, entry *audit.Log) error {
	model, err := mappers.AuditLogToModel(entry)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	entry.ID = model.ID
	return nil
}

func (r *AuditLogRepository) List(ctx context.Context, filter audit.ListFilter) ([]*audit.Log, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.AuditLogModel{})

	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != nil {
		q = q.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.ActorID != nil {
		q = q.Where("actor_id = ?", *filter.ActorID)
	}
	if action := strings.TrimSpace(filter.Action); action != "" {
		q = q.Where("action = ?", action)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var list []models.AuditLogModel
	if err := q.Order("created_at DESC").Order("id DESC").
		Limit(filter.Limit()).
		Offset(filter.Offset()).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}

	out := make([]*audit.Log, 0, len(list))
	for i := range list {
		entry, err := mappers.AuditLogToDomain(&list[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, entry)
	}
	return out, total, nil
}
