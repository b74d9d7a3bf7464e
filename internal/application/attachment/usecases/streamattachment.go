package usecases

import (
	"context"
	"io"

	"github.com/helpdeskhq/helpdesk/internal/application/attachment/services"
	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

// StreamVariant selects which representation of an attachment to stream.
type StreamVariant string

const (
	VariantDownload  StreamVariant = "download"
	VariantPreview   StreamVariant = "preview"
	VariantThumbnail StreamVariant = "thumbnail"
)

// FileStream is an open stored file. The caller must close Reader.
type FileStream struct {
	Reader      io.ReadCloser
	ContentType string
	FileName    string
	Size        int64
	Inline      bool
}

type StreamAttachmentQuery struct {
	AttachmentID uint
	Variant      StreamVariant
	Actor        authorization.Actor
}

type StreamAttachmentUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo attachment.Repository
	storage        attachment.FileStorage
	previewer      *services.FilePreviewService
	logger         logger.Interface
}

func NewStreamAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo attachment.Repository,
	storage attachment.FileStorage,
	previewer *services.FilePreviewService,
	logger logger.Interface,
) *StreamAttachmentUseCase {
	return &StreamAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		storage:        storage,
		previewer:      previewer,
		logger:         logger,
	}
}

func (uc *StreamAttachmentUseCase) Execute(ctx context.Context, query StreamAttachmentQuery) (*FileStream, error) {
	a, err := LoadVisibleAttachment(ctx, uc.attachmentRepo, uc.ticketRepo, query.AttachmentID, query.Actor, uc.logger)
	if err != nil {
		return nil, err
	}

	var target services.PreviewTarget
	switch query.Variant {
	case VariantDownload, "":
		target = uc.previewer.Download(a)
	case VariantPreview:
		target, err = uc.previewer.Preview(a)
	case VariantThumbnail:
		target, err = uc.previewer.Thumbnail(a)
	default:
		return nil, errors.NewValidationError("unknown stream variant: " + string(query.Variant))
	}
	if err != nil {
		return nil, err
	}

	reader, err := uc.storage.Open(ctx, target.StorageKey)
	if err != nil {
		uc.logger.Errorw("failed to open stored file",
			"attachment_id", a.ID(),
			"key", target.StorageKey,
			"error", err,
		)
		return nil, errors.NewNotFoundError("file content is no longer available")
	}

	size := a.Size()
	name := a.OriginalName()
	if query.Variant == VariantThumbnail {
		size = -1
		name = "thumbnail.jpg"
	}
	return &FileStream{
		Reader:      reader,
		ContentType: target.ContentType,
		FileName:    name,
		Size:        size,
		Inline:      target.Inline,
	}, nil
}
