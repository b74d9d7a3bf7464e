package models

import (
	"time"

	"github.com/helpdeskhq/helpdesk/internal/shared/constants"
)

type TicketModel struct {
	ID              uint      `gorm:"primaryKey"`
	Number          string    `gorm:"uniqueIndex;size:32;not null"`
	Title           string    `gorm:"size:200;not null"`
	Description     string    `gorm:"type:text;not null"`
	Priority        string    `gorm:"size:20;not null;index"`
	Status          string    `gorm:"size:20;not null;index"`
	CreatorID       uint      `gorm:"not null;index"`
	AssigneeID      *uint     `gorm:"index"`
	SLADueAt        time.Time `gorm:"not null;index"`
	FirstResponseAt *time.Time
	ResolvedAt      *time.Time
	ClosedAt        *time.Time
	SLABreachedAt   *time.Time
	Version         int       `gorm:"not null;default:1"`
	CreatedAt       time.Time `gorm:"not null;index"`
	UpdatedAt       time.Time `gorm:"not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

type CommentModel struct {
	ID         uint      `gorm:"primaryKey"`
	TicketID   uint      `gorm:"not null;index"`
	AuthorID   uint      `gorm:"not null;index"`
	Content    string    `gorm:"type:text;not null"`
	IsInternal bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"not null;index"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (CommentModel) TableName() string {
	return constants.TableComments
}
