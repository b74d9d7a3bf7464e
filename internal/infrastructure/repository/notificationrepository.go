package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/helpdeskhq/helpdesk/internal/domain/notification"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/persistence/models"
	"github.com/helpdeskhq/helpdesk/internal/shared/db"
	"github.com/helpdeskhq/helpdesk/internal/shared/query"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	model := mappers.NotificationToModel(n)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return n.SetID(model.ID)
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uint) (*notification.Notification, error) {
	var model models.NotificationModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return mappers.NotificationToDomain(&model)
}

func (r *NotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.NotificationModel{}).
		Where("id = ?", n.ID()).
		Updates(map[string]any{
			"is_read": n.IsRead(),
			"read_at": n.ReadAt(),
		}).Error; err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.NotificationModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// ListByUser returns newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint, unreadOnly bool, page query.PageFilter) ([]*notification.Notification, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.NotificationModel{}).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var list []models.NotificationModel
	if err := q.Order("created_at DESC").Order("id DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	out := make([]*notification.Notification, 0, len(list))
	for i := range list {
		n, err := mappers.NotificationToDomain(&list[i])
		if err != nil {
			return nil, 0, fmt.Errorf("failed to map notification %d: %w", list[i].ID, err)
		}
		out = append(out, n)
	}
	return out, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *NotificationRepository) DeleteByTicket(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.NotificationModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket notifications: %w", err)
	}
	return nil
}

type PreferencesRepository struct {
	db *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

func (r *PreferencesRepository) Get(ctx context.Context, userID uint) (*notification.Preferences, error) {
	var model models.NotificationPreferencesModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notification.DefaultPreferences(userID), nil
		}
		return nil, fmt.Errorf("failed to get notification preferences: %w", err)
	}
	return mappers.PreferencesToDomain(&model), nil
}

// GetMany fills users without stored preferences with the defaults.
func (r *PreferencesRepository) GetMany(ctx context.Context, userIDs []uint) (map[uint]*notification.Preferences, error) {
	out := make(map[uint]*notification.Preferences, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var list []models.NotificationPreferencesModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("user_id IN ?", userIDs).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get notification preferences: %w", err)
	}
	for i := range list {
		out[list[i].UserID] = mappers.PreferencesToDomain(&list[i])
	}
	for _, id := range userIDs {
		if _, ok := out[id]; !ok {
			out[id] = notification.DefaultPreferences(id)
		}
	}
	return out, nil
}

var preferenceColumns = []string{
	"email_enabled",
	"in_app_enabled",
	"on_ticket_created",
	"on_ticket_assigned",
	"on_status_changed",
	"on_comment_added",
	"on_sla_breached",
	"updated_at",
}

// Save upserts on user_id. Every column is written, including false
// toggles.
func (r *PreferencesRepository) Save(ctx context.Context, prefs *notification.Preferences) error {
	if prefs.UpdatedAt.IsZero() {
		prefs.UpdatedAt = time.Now().UTC()
	}
	model := mappers.PreferencesToModel(prefs)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Select("*").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(preferenceColumns),
	}).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save notification preferences: %w", err)
	}
	return nil
}
