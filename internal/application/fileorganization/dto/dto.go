package dto

import (
	"time"

	"github.com/helpdeskhq/helpdesk/internal/domain/fileorg"
)

type CategoryDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedBy   uint      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TagDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

func ToCategoryDTO(c *fileorg.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		Color:       c.Color(),
		CreatedBy:   c.CreatedBy(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func ToCategoryDTOs(items []*fileorg.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(items))
	for _, c := range items {
		out = append(out, ToCategoryDTO(c))
	}
	return out
}

func ToTagDTO(t *fileorg.Tag) TagDTO {
	return TagDTO{
		ID:        t.ID(),
		Name:      t.Name(),
		Color:     t.Color(),
		CreatedAt: t.CreatedAt(),
	}
}

func ToTagDTOs(items []*fileorg.Tag) []TagDTO {
	out := make([]TagDTO, 0, len(items))
	for _, t := range items {
		out = append(out, ToTagDTO(t))
	}
	return out
}
