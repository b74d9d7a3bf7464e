// Package fileorg models the categories and tags used to organise
// attachments.
package fileorg

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
)

const DefaultColor = "#6B7280"

var colorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Category struct {
	id          uint
	name        string
	description string
	color       string
	createdBy   uint
	createdAt   time.Time
	updatedAt   time.Time
}

func NewCategory(name, description, color string, createdBy uint) (*Category, error) {
	c := &Category{createdBy: createdBy}
	if err := c.apply(name, description, color); err != nil {
		return nil, err
	}
	now := biztime.NowUTC()
	c.createdAt = now
	c.updatedAt = now
	return c, nil
}

func ReconstructCategory(id uint, name, description, color string, createdBy uint, createdAt, updatedAt time.Time) *Category {
	return &Category{
		id:          id,
		name:        name,
		description: description,
		color:       color,
		createdBy:   createdBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (c *Category) ID() uint             { return c.id }
func (c *Category) Name() string         { return c.name }
func (c *Category) Description() string  { return c.description }
func (c *Category) Color() string        { return c.color }
func (c *Category) CreatedBy() uint      { return c.createdBy }
func (c *Category) CreatedAt() time.Time { return c.createdAt }
func (c *Category) UpdatedAt() time.Time { return c.updatedAt }

func (c *Category) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("category ID is already set")
	}
	c.id = id
	return nil
}

func (c *Category) Update(name, description, color string) error {
	if err := c.apply(name, description, color); err != nil {
		return err
	}
	c.updatedAt = biztime.NowUTC()
	return nil
}

func (c *Category) apply(name, description, color string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name is required")
	}
	if utf8.RuneCountInString(name) > 100 {
		return fmt.Errorf("category name exceeds maximum length of 100 characters")
	}
	if utf8.RuneCountInString(description) > 500 {
		return fmt.Errorf("category description exceeds maximum length of 500 characters")
	}
	color, err := normalizeColor(color)
	if err != nil {
		return err
	}
	c.name = name
	c.description = strings.TrimSpace(description)
	c.color = color
	return nil
}

func normalizeColor(color string) (string, error) {
	if color == "" {
		return DefaultColor, nil
	}
	if !colorRegex.MatchString(color) {
		return "", fmt.Errorf("color must be a #RRGGBB hex value")
	}
	return strings.ToUpper(color), nil
}
