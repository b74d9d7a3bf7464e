package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/helpdeskhq/helpdesk/internal/shared/constants"
)

type AuditLogModel struct {
	ID         uint           `gorm:"primaryKey"`
	ActorID    *uint          `gorm:"index"`
	Action     string         `gorm:"size:64;not null;index"`
	EntityType string         `gorm:"size:32;not null;index:idx_audit_entity,priority:1"`
	EntityID   uint           `gorm:"not null;index:idx_audit_entity,priority:2"`
	Details    datatypes.JSON `gorm:"type:json"`
	IPAddress  string         `gorm:"size:45"`
	UserAgent  string         `gorm:"size:500"`
	CreatedAt  time.Time      `gorm:"not null;index"`
}

func (AuditLogModel) TableName() string {
	return constants.TableAuditLogs
}

// All returns every model managed by AutoMigrate, in dependency order.
func All() []any {
	return []any{
		&UserModel{},
		&TicketModel{},
		&CommentModel{},
		&FileCategoryModel{},
		&FileTagModel{},
		&AttachmentModel{},
		&AttachmentTagModel{},
		&NotificationModel{},
		&NotificationPreferencesModel{},
		&AuditLogModel{},
	}
}
