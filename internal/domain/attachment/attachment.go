package attachment

import (
	"fmt"
	"strings"
	"time"

	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
)

// Attachment is the metadata of a file stored under StorageKey.
type Attachment struct {
	id           uint
	ticketID     uint
	uploaderID   uint
	originalName string
	storageKey   string
	mimeType     string
	size         int64
	checksum     string
	width        *int
	height       *int
	thumbnailKey *string
	categoryID   *uint
	tags         []string
	createdAt    time.Time
}

// Params groups the processed properties of an uploaded file.
type Params struct {
	TicketID     uint
	UploaderID   uint
	OriginalName string
	StorageKey   string
	MimeType     string
	Size         int64
	Checksum     string
	Width        *int
	Height       *int
	ThumbnailKey *string
}

func NewAttachment(p Params) (*Attachment, error) {
	if p.TicketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if p.UploaderID == 0 {
		return nil, fmt.Errorf("uploader ID is required")
	}
	if p.OriginalName == "" || p.StorageKey == "" {
		return nil, fmt.Errorf("file name and storage key are required")
	}
	if p.Size <= 0 {
		return nil, fmt.Errorf("file is empty")
	}
	return &Attachment{
		ticketID:     p.TicketID,
		uploaderID:   p.UploaderID,
		originalName: p.OriginalName,
		storageKey:   p.StorageKey,
		mimeType:     p.MimeType,
		size:         p.Size,
		checksum:     p.Checksum,
		width:        p.Width,
		height:       p.Height,
		thumbnailKey: p.ThumbnailKey,
		tags:         []string{},
		createdAt:    biztime.NowUTC(),
	}, nil
}

func ReconstructAttachment(id uint, p Params, categoryID *uint, tags []string, createdAt time.Time) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	if tags == nil {
		tags = []string{}
	}
	return &Attachment{
		id:           id,
		ticketID:     p.TicketID,
		uploaderID:   p.UploaderID,
		originalName: p.OriginalName,
		storageKey:   p.StorageKey,
		mimeType:     p.MimeType,
		size:         p.Size,
		checksum:     p.Checksum,
		width:        p.Width,
		height:       p.Height,
		thumbnailKey: p.ThumbnailKey,
		categoryID:   categoryID,
		tags:         tags,
		createdAt:    createdAt,
	}, nil
}

func (a *Attachment) ID() uint              { return a.id }
func (a *Attachment) TicketID() uint        { return a.ticketID }
func (a *Attachment) UploaderID() uint      { return a.uploaderID }
func (a *Attachment) OriginalName() string  { return a.originalName }
func (a *Attachment) StorageKey() string    { return a.storageKey }
func (a *Attachment) MimeType() string      { return a.mimeType }
func (a *Attachment) Size() int64           { return a.size }
func (a *Attachment) Checksum() string      { return a.checksum }
func (a *Attachment) Width() *int           { return a.width }
func (a *Attachment) Height() *int          { return a.height }
func (a *Attachment) ThumbnailKey() *string { return a.thumbnailKey }
func (a *Attachment) CategoryID() *uint     { return a.categoryID }
func (a *Attachment) CreatedAt() time.Time  { return a.createdAt }

func (a *Attachment) Tags() []string {
	out := make([]string, len(a.tags))
	copy(out, a.tags)
	return out
}

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	a.id = id
	return nil
}

func (a *Attachment) IsImage() bool {
	return strings.HasPrefix(a.mimeType, "image/")
}

func (a *Attachment) HasThumbnail() bool {
	return a.thumbnailKey != nil && *a.thumbnailKey != ""
}

// IsPreviewable is true for types browsers render inline.
func (a *Attachment) IsPreviewable() bool {
	return a.IsImage() || a.mimeType == "application/pdf" || strings.HasPrefix(a.mimeType, "text/")
}

// CheckDeletableBy allows the uploader and admins.
func (a *Attachment) CheckDeletableBy(actor authorization.Actor) error {
	if actor.CanAccessOwned(a.uploaderID) {
		return nil
	}
	return fmt.Errorf("only the uploader can delete this attachment")
}

func (a *Attachment) SetCategory(categoryID *uint) {
	a.categoryID = categoryID
}

func (a *Attachment) SetTags(tags []string) {
	a.tags = append([]string{}, tags...)
}
