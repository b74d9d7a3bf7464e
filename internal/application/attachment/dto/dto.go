package dto

import (
	"fmt"
	"time"

	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
)

type AttachmentDTO struct {
	ID            uint      `json:"id"`
	TicketID      uint      `json:"ticket_id"`
	UploaderID    uint      `json:"uploader_id"`
	OriginalName  string    `json:"original_name"`
	MimeType      string    `json:"mime_type"`
	Size          int64     `json:"size"`
	Checksum      string    `json:"checksum"`
	Width         *int      `json:"width,omitempty"`
	Height        *int      `json:"height,omitempty"`
	IsImage       bool      `json:"is_image"`
	IsPreviewable bool      `json:"is_previewable"`
	HasThumbnail  bool      `json:"has_thumbnail"`
	CategoryID    *uint     `json:"category_id"`
	Tags          []string  `json:"tags"`
	DownloadURL   string    `json:"download_url"`
	PreviewURL    string    `json:"preview_url,omitempty"`
	ThumbnailURL  string    `json:"thumbnail_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToAttachmentDTO(a *attachment.Attachment) AttachmentDTO {
	base := fmt.Sprintf("/api/attachments/%d", a.ID())
	d := AttachmentDTO{
		ID:            a.ID(),
		TicketID:      a.TicketID(),
		UploaderID:    a.UploaderID(),
		OriginalName:  a.OriginalName(),
		MimeType:      a.MimeType(),
		Size:          a.Size(),
		Checksum:      a.Checksum(),
		Width:         a.Width(),
		Height:        a.Height(),
		IsImage:       a.IsImage(),
		IsPreviewable: a.IsPreviewable(),
		HasThumbnail:  a.HasThumbnail(),
		CategoryID:    a.CategoryID(),
		Tags:          a.Tags(),
		DownloadURL:   base + "/download",
		CreatedAt:     a.CreatedAt(),
	}
	if a.IsPreviewable() {
		d.PreviewURL = base + "/preview"
	}
	if a.HasThumbnail() {
		d.ThumbnailURL = base + "/thumbnail"
	}
	return d
}

func ToAttachmentDTOs(items []*attachment.Attachment) []AttachmentDTO {
	out := make([]AttachmentDTO, 0, len(items))
	for _, a := range items {
		out = append(out, ToAttachmentDTO(a))
	}
	return out
}
