package mappers

import (
	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/persistence/models"
)

func AttachmentToModel(a *attachment.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:           a.ID(),
		TicketID:     a.TicketID(),
		UploaderID:   a.UploaderID(),
		OriginalName: a.OriginalName(),
		StorageKey:   a.StorageKey(),
		MimeType:     a.MimeType(),
		Size:         a.Size(),
		Checksum:     a.Checksum(),
		Width:        a.Width(),
		Height:       a.Height(),
		ThumbnailKey: a.ThumbnailKey(),
		CategoryID:   a.CategoryID(),
		CreatedAt:    a.CreatedAt(),
	}
}

// AttachmentToDomain attaches tags loaded separately from the join table.
func AttachmentToDomain(model *models.AttachmentModel, tags []string) (*attachment.Attachment, error) {
	return attachment.ReconstructAttachment(model.ID, attachment.Params{
		TicketID:     model.TicketID,
		UploaderID:   model.UploaderID,
		OriginalName: model.OriginalName,
		StorageKey:   model.StorageKey,
		MimeType:     model.MimeType,
		Size:         model.Size,
		Checksum:     model.Checksum,
		Width:        model.Width,
		Height:       model.Height,
		ThumbnailKey: model.ThumbnailKey,
	}, model.CategoryID, tags, model.CreatedAt)
}
