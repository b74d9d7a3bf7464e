package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/persistence/models"
	"github.com/helpdeskhq/helpdesk/internal/shared/constants"
	"github.com/helpdeskhq/helpdesk/internal/shared/db"
)

type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) Create(ctx context.Context, a *attachment.Attachment) error {
	model := mappers.AttachmentToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}
	return a.SetID(model.ID)
}

func (r *AttachmentRepository) GetByID(ctx context.Context, id uint) (*attachment.Attachment, error) {
	var model models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attachment: %w", err)
	}

	list, err := r.toDomain(ctx, []models.AttachmentModel{model})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

// Delete removes the row and its tag links.
func (r *AttachmentRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attachment_id = ?", id).Delete(&models.AttachmentTagModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete attachment tags: %w", err)
		}
		if err := tx.Delete(&models.AttachmentModel{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete attachment: %w", err)
		}
		return nil
	})
}

func (r *AttachmentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*attachment.Attachment, error) {
	var list []models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("ticket_id = ?", ticketID).Order("created_at ASC").Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return r.toDomain(ctx, list)
}

func (r *AttachmentRepository) CountByTicket(ctx context.Context, ticketID uint) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.AttachmentModel{}).Where("ticket_id = ?", ticketID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count attachments: %w", err)
	}
	return count, nil
}

func (r *AttachmentRepository) UpdateCategory(ctx context.Context, id uint, categoryID *uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.AttachmentModel{}).Where("id = ?", id).Update("category_id", categoryID).Error; err != nil {
		return fmt.Errorf("failed to update attachment category: %w", err)
	}
	return nil
}

func (r *AttachmentRepository) ReplaceTags(ctx context.Context, id uint, tagIDs []uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attachment_id = ?", id).Delete(&models.AttachmentTagModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear attachment tags: %w", err)
		}
		if len(tagIDs) == 0 {
			return nil
		}
		links := make([]models.AttachmentTagModel, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			links = append(links, models.AttachmentTagModel{AttachmentID: id, TagID: tagID})
		}
		if err := tx.Create(&links).Error; err != nil {
			return fmt.Errorf("failed to link attachment tags: %w", err)
		}
		return nil
	})
}

func (r *AttachmentRepository) List(ctx context.Context, filter attachment.ListFilter) ([]*attachment.Attachment, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.AttachmentModel{})

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		query = query.Where(
			"id IN (?)",
			tx.Table(constants.TableAttachmentTags+" AS links").
				Select("links.attachment_id").
				Joins("JOIN "+constants.TableFileTags+" AS tags ON tags.id = links.tag_id").
				Where("tags.name = ?", strings.ToLower(tag)),
		)
	}
	if filter.VisibleToUserID != nil {
		query = query.Where(
			"ticket_id IN (?)",
			tx.Model(&models.TicketModel{}).Select("id").Where("creator_id = ?", *filter.VisibleToUserID),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count attachments: %w", err)
	}

	var list []models.AttachmentModel
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit()).
		Offset(filter.Offset()).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list attachments: %w", err)
	}

	attachments, err := r.toDomain(ctx, list)
	if err != nil {
		return nil, 0, err
	}
	return attachments, total, nil
}

type attachmentTagRow struct {
	AttachmentID uint
	Name         string
}

// toDomain loads tag names for all rows with one join query.
func (r *AttachmentRepository) toDomain(ctx context.Context, list []models.AttachmentModel) ([]*attachment.Attachment, error) {
	out := make([]*attachment.Attachment, 0, len(list))
	if len(list) == 0 {
		return out, nil
	}

	ids := make([]uint, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.ID)
	}

	var rows []attachmentTagRow
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Table(constants.TableAttachmentTags+" AS links").
		Select("links.attachment_id, tags.name").
		Joins("JOIN "+constants.TableFileTags+" AS tags ON tags.id = links.tag_id").
		Where("links.attachment_id IN ?", ids).
		Order("tags.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load attachment tags: %w", err)
	}

	tags := make(map[uint][]string, len(list))
	for _, row := range rows {
		tags[row.AttachmentID] = append(tags[row.AttachmentID], row.Name)
	}

	for i := range list {
		a, err := mappers.AttachmentToDomain(&list[i], tags[list[i].ID])
		if err != nil {
			return nil, fmt.Errorf("failed to map attachment %d: %w", list[i].ID, err)
		}
		out = append(out, a)
	}
	return out, nil
}
