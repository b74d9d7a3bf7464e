package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/helpdeskhq/helpdesk/internal/domain/fileorg"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/persistence/models"
	"github.com/helpdeskhq/helpdesk/internal/shared/db"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *fileorg.Category) error {
	model := mappers.CategoryToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return c.SetID(model.ID)
}

func (r *CategoryRepository) Update(ctx context.Context, c *fileorg.Category) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.FileCategoryModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]any{
			"name":        c.Name(),
			"description": c.Description(),
			"color":       c.Color(),
			"updated_at":  c.UpdatedAt(),
		}).Error; err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// Delete detaches the category from its attachments before removing it.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.AttachmentModel{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach category: %w", err)
		}
		if err := tx.Delete(&models.FileCategoryModel{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*fileorg.Category, error) {
	var model models.FileCategoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return mappers.CategoryToDomain(&model), nil
}

// ExistsByName compares case-insensitively; excludeID skips the category
// being renamed.
func (r *CategoryRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.FileCategoryModel{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return count > 0, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*fileorg.Category, error) {
	var list []models.FileCategoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	out := make([]*fileorg.Category, 0, len(list))
	for i := range list {
		out = append(out, mappers.CategoryToDomain(&list[i]))
	}
	return out, nil
}

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(ctx context.Context, t *fileorg.Tag) error {
	model := mappers.TagToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return t.SetID(model.ID)
}

// Delete also unlinks the tag from every attachment.
func (r *TagRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.AttachmentTagModel{}).Error; err != nil {
			return fmt.Errorf("failed to unlink tag: %w", err)
		}
		if err := tx.Delete(&models.FileTagModel{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}
		return nil
	})
}

func (r *TagRepository) GetByID(ctx context.Context, id uint) (*fileorg.Tag, error) {
	var model models.FileTagModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return mappers.TagToDomain(&model), nil
}

// GetByNames expects normalized (lower-case) names.
func (r *TagRepository) GetByNames(ctx context.Context, names []string) ([]*fileorg.Tag, error) {
	out := make([]*fileorg.Tag, 0, len(names))
	if len(names) == 0 {
		return out, nil
	}
	var list []models.FileTagModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("name IN ?", names).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	for i := range list {
		out = append(out, mappers.TagToDomain(&list[i]))
	}
	return out, nil
}

func (r *TagRepository) List(ctx context.Context) ([]*fileorg.Tag, error) {
	var list []models.FileTagModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	out := make([]*fileorg.Tag, 0, len(list))
	for i := range list {
		out = append(out, mappers.TagToDomain(&list[i]))
	}
	return out, nil
}
