package models

import (
	"time"

	"github.com/helpdeskhq/helpdesk/internal/shared/constants"
)

type FileCategoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"uniqueIndex;size:100;not null"`
	Description string    `gorm:"size:500"`
	Color       string    `gorm:"size:7;not null"`
	CreatedBy   uint      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (FileCategoryModel) TableName() string {
	return constants.TableFileCategories
}

type FileTagModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:50;not null"`
	Color     string    `gorm:"size:7;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (FileTagModel) TableName() string {
	return constants.TableFileTags
}
