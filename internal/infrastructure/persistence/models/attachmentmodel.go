package models

import (
	"time"

	"github.com/helpdeskhq/helpdesk/internal/shared/constants"
)

type AttachmentModel struct {
	ID           uint   `gorm:"primaryKey"`
	TicketID     uint   `gorm:"not null;index"`
	UploaderID   uint   `gorm:"not null;index"`
	OriginalName string `gorm:"size:255;not null"`
	StorageKey   string `gorm:"uniqueIndex;size:255;not null"`
	MimeType     string `gorm:"size:100;not null"`
	Size         int64  `gorm:"not null"`
	Checksum     string `gorm:"size:64;not null"`
	Width        *int
	Height       *int
	ThumbnailKey *string   `gorm:"size:255"`
	CategoryID   *uint     `gorm:"index"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

func (AttachmentModel) TableName() string {
	return constants.TableAttachments
}

// AttachmentTagModel links attachments to file tags.
type AttachmentTagModel struct {
	AttachmentID uint `gorm:"primaryKey"`
	TagID        uint `gorm:"primaryKey;index"`
}

func (AttachmentTagModel) TableName() string {
	return constants.TableAttachmentTags
}
