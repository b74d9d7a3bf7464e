package services

import (
	"strings"

	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
)

// PreviewTarget tells the caller which stored object to stream and how.
type PreviewTarget struct {
	StorageKey  string
	ContentType string
	Inline      bool
}

type FilePreviewService struct{}

func NewFilePreviewService() *FilePreviewService {
	return &FilePreviewService{}
}

// Download always streams the original as an attachment.
func (s *FilePreviewService) Download(a *attachment.Attachment) PreviewTarget {
	return PreviewTarget{StorageKey: a.StorageKey(), ContentType: contentType(a.MimeType()), Inline: false}
}

// Preview streams images, PDFs and text inline.
func (s *FilePreviewService) Preview(a *attachment.Attachment) (PreviewTarget, error) {
	if !a.IsPreviewable() {
		return PreviewTarget{}, errors.NewPreviewNotAvailableError(a.MimeType())
	}
	ct := contentType(a.MimeType())
	if strings.HasPrefix(ct, "text/") {
		// plain text stops browsers from rendering uploaded HTML or CSV as markup
		ct = "text/plain; charset=utf-8"
	}
	return PreviewTarget{StorageKey: a.StorageKey(), ContentType: ct, Inline: true}, nil
}

func (s *FilePreviewService) Thumbnail(a *attachment.Attachment) (PreviewTarget, error) {
	if !a.HasThumbnail() {
		return PreviewTarget{}, errors.NewPreviewNotAvailableError(a.MimeType())
	}
	return PreviewTarget{StorageKey: *a.ThumbnailKey(), ContentType: "image/jpeg", Inline: true}, nil
}

func contentType(mime string) string {
	if mime == "" {
		return "application/octet-stream"
	}
	return mime
}
