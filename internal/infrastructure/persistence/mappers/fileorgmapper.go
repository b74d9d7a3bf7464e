package mappers

import (
	"github.com/helpdeskhq/helpdesk/internal/domain/fileorg"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/persistence/models"
)

func CategoryToModel(c *fileorg.Category) *models.FileCategoryModel {
	return &models.FileCategoryModel{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		Color:       c.Color(),
		CreatedBy:   c.CreatedBy(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func CategoryToDomain(model *models.FileCategoryModel) *fileorg.Category {
	return fileorg.ReconstructCategory(model.ID, model.Name, model.Description, model.Color, model.CreatedBy, model.CreatedAt, model.UpdatedAt)
}

func TagToModel(t *fileorg.Tag) *models.FileTagModel {
	return &models.FileTagModel{
		ID:        t.ID(),
		Name:      t.Name(),
		Color:     t.Color(),
		CreatedAt: t.CreatedAt(),
	}
}

func TagToDomain(model *models.FileTagModel) *fileorg.Tag {
	return fileorg.ReconstructTag(model.ID, model.Name, model.Color, model.CreatedAt)
}
