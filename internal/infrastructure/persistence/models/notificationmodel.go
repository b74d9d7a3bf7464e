package models

import (
	"time"

	"github.com/helpdeskhq/helpdesk/internal/shared/constants"
)

type NotificationModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index:idx_notifications_user_read,priority:1"`
	Type      string `gorm:"size:32;not null"`
	Title     string `gorm:"size:200;not null"`
	Message   string `gorm:"type:text"`
	TicketID  *uint  `gorm:"index"`
	IsRead    bool   `gorm:"not null;default:false;index:idx_notifications_user_read,priority:2"`
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"not null;index"`
}

func (NotificationModel) TableName() string {
	return constants.TableNotifications
}

// NotificationPreferencesModel has no gorm defaults; column defaults live in
// the SQL scripts only.
type NotificationPreferencesModel struct {
	UserID           uint      `gorm:"primaryKey;autoIncrement:false"`
	EmailEnabled     bool      `gorm:"not null"`
	InAppEnabled     bool      `gorm:"not null"`
	OnTicketCreated  bool      `gorm:"not null"`
	OnTicketAssigned bool      `gorm:"not null"`
	OnStatusChanged  bool      `gorm:"not null"`
	OnCommentAdded   bool      `gorm:"not null"`
	OnSLABreached    bool      `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (NotificationPreferencesModel) TableName() string {
	return constants.TableNotificationPreferences
}
