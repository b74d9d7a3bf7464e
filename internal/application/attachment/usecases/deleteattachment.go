package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/common"
	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

type DeleteAttachmentCommand struct {
	AttachmentID uint
	Actor        authorization.Actor
}

type DeleteAttachmentUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo attachment.Repository
	storage        attachment.FileStorage
	publisher      events.EventPublisher
	logger         logger.Interface
}

func NewDeleteAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo attachment.Repository,
	storage attachment.FileStorage,
	publisher events.EventPublisher,
	logger logger.Interface,
) *DeleteAttachmentUseCase {
	return &DeleteAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		storage:        storage,
		publisher:      publisher,
		logger:         logger,
	}
}

func (uc *DeleteAttachmentUseCase) Execute(ctx context.Context, cmd DeleteAttachmentCommand) error {
	uc.logger.Infow("executing delete attachment use case", "attachment_id", cmd.AttachmentID, "actor_id", cmd.Actor.UserID)

	a, err := LoadVisibleAttachment(ctx, uc.attachmentRepo, uc.ticketRepo, cmd.AttachmentID, cmd.Actor, uc.logger)
	if err != nil {
		return err
	}
	if err := a.CheckDeletableBy(cmd.Actor); err != nil {
		return errors.NewForbiddenError(err.Error())
	}

	if err := uc.attachmentRepo.Delete(ctx, a.ID()); err != nil {
		uc.logger.Errorw("failed to delete attachment", "attachment_id", a.ID(), "error", err)
		return errors.NewInternalError("failed to delete attachment")
	}

	keys := []string{a.StorageKey()}
	if a.HasThumbnail() {
		keys = append(keys, *a.ThumbnailKey())
	}
	for _, key := range keys {
		if err := uc.storage.Delete(ctx, key); err != nil {
			uc.logger.Warnw("failed to delete attachment file", "attachment_id", a.ID(), "key", key, "error", err)
		}
	}

	common.PublishEvent(uc.publisher, attachment.NewAttachmentEvent(attachment.EventAttachmentDeleted, a, cmd.Actor.UserID), uc.logger)

	uc.logger.Infow("attachment deleted successfully", "attachment_id", a.ID(), "ticket_id", a.TicketID())
	return nil
}
