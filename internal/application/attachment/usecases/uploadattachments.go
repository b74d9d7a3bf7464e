package usecases

import (
	"context"
	"fmt"
	"io"

	"github.com/helpdeskhq/helpdesk/internal/application/attachment/dto"
	"github.com/helpdeskhq/helpdesk/internal/application/attachment/services"
	"github.com/helpdeskhq/helpdesk/internal/application/common"
	ticketusecases "github.com/helpdeskhq/helpdesk/internal/application/ticket/usecases"
	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

const DefaultMaxFiles = 5

// UploadFile is one part of a multipart upload. Size is the size the client
// declared; the content is measured again while reading.
type UploadFile struct {
	Name   string
	Size   int64
	Reader io.Reader
}

type UploadAttachmentsCommand struct {
	TicketID uint
	Files    []UploadFile
	Actor    authorization.Actor
}

type UploadAttachmentsUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo attachment.Repository
	validator      *services.FileValidationService
	processor      *services.FileProcessingService
	txManager      TransactionRunner
	publisher      events.EventPublisher
	maxFiles       int
	logger         logger.Interface
}

func NewUploadAttachmentsUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo attachment.Repository,
	validator *services.FileValidationService,
	processor *services.FileProcessingService,
	txManager TransactionRunner,
	publisher events.EventPublisher,
	maxFiles int,
	logger logger.Interface,
) *UploadAttachmentsUseCase {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	return &UploadAttachmentsUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		validator:      validator,
		processor:      processor,
		txManager:      txManager,
		publisher:      publisher,
		maxFiles:       maxFiles,
		logger:         logger,
	}
}

// Execute stores every file or none of them.
func (uc *UploadAttachmentsUseCase) Execute(ctx context.Context, cmd UploadAttachmentsCommand) ([]dto.AttachmentDTO, error) {
	uc.logger.Infow("executing upload attachments use case",
		"ticket_id", cmd.TicketID,
		"files", len(cmd.Files),
		"actor_id", cmd.Actor.UserID,
	)

	if len(cmd.Files) == 0 {
		return nil, errors.NewValidationError("at least one file is required")
	}
	if len(cmd.Files) > uc.maxFiles {
		return nil, errors.NewValidationError(fmt.Sprintf("at most %d files can be uploaded at once", uc.maxFiles))
	}

	t, err := ticketusecases.LoadVisibleTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.Actor, uc.logger)
	if err != nil {
		return nil, err
	}

	validated := make([]*services.ValidatedFile, 0, len(cmd.Files))
	for _, f := range cmd.Files {
		v, err := uc.readAndValidate(f)
		if err != nil {
			uc.logger.Warnw("rejected upload", "ticket_id", t.ID(), "file", f.Name, "error", err)
			return nil, err
		}
		validated = append(validated, v)
	}

	processed := make([]*services.ProcessedFile, 0, len(validated))
	discardAll := func() {
		for _, p := range processed {
			uc.processor.Discard(ctx, p)
		}
	}
	for _, v := range validated {
		p, err := uc.processor.Process(ctx, v)
		if err != nil {
			uc.logger.Errorw("failed to process upload", "ticket_id", t.ID(), "file", v.Name, "error", err)
			discardAll()
			return nil, errors.NewInternalError("failed to store file")
		}
		processed = append(processed, p)
	}

	created := make([]*attachment.Attachment, 0, len(processed))
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		for i, p := range processed {
			a, err := attachment.NewAttachment(attachment.Params{
				TicketID:     t.ID(),
				UploaderID:   cmd.Actor.UserID,
				OriginalName: validated[i].Name,
				StorageKey:   p.StorageKey,
				MimeType:     validated[i].MimeType,
				Size:         p.Size,
				Checksum:     p.Checksum,
				Width:        p.Width,
				Height:       p.Height,
				ThumbnailKey: p.ThumbnailKey,
			})
			if err != nil {
				return err
			}
			if err := uc.attachmentRepo.Create(txCtx, a); err != nil {
				return err
			}
			created = append(created, a)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to save attachments", "ticket_id", t.ID(), "error", err)
		discardAll()
		return nil, errors.NewInternalError("failed to save attachments")
	}

	for _, a := range created {
		common.PublishEvent(uc.publisher, attachment.NewAttachmentEvent(attachment.EventAttachmentUploaded, a, cmd.Actor.UserID), uc.logger)
	}

	uc.logger.Infow("attachments uploaded successfully", "ticket_id", t.ID(), "count", len(created))
	return dto.ToAttachmentDTOs(created), nil
}

func (uc *UploadAttachmentsUseCase) readAndValidate(f UploadFile) (*services.ValidatedFile, error) {
	limit := uc.validator.MaxFileSize()
	name := services.SanitizeFileName(f.Name)
	if f.Size > limit {
		return nil, errors.NewFileTooLargeError(name, limit)
	}
	if f.Reader == nil {
		return nil, errors.NewValidationError(fmt.Sprintf("file %q is empty", name))
	}

	content, err := io.ReadAll(io.LimitReader(f.Reader, limit+1))
	if err != nil {
		return nil, errors.NewBadRequestError(fmt.Sprintf("failed to read file %q", name))
	}
	return uc.validator.Validate(f.Name, content)
}
