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

// NotificationCleaner removes notifications that point at a ticket.
type NotificationCleaner interface {
	DeleteByTicket(ctx context.Context, ticketID uint) error
}

type DeleteTicketCommand struct {
	TicketID uint
	Actor    authorization.Actor
}

type DeleteTicketUseCase struct {
	ticketRepo       ticket.TicketRepository
	commentRepo      ticket.CommentRepository
	attachmentRepo   attachment.Repository
	notificationRepo NotificationCleaner
	storage          attachment.FileStorage
	txManager        TransactionRunner
	publisher        events.EventPublisher
	logger           logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	attachmentRepo attachment.Repository,
	notificationRepo NotificationCleaner,
	storage attachment.FileStorage,
	txManager TransactionRunner,
	publisher events.EventPublisher,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo:       ticketRepo,
		commentRepo:      commentRepo,
		attachmentRepo:   attachmentRepo,
		notificationRepo: notificationRepo,
		storage:          storage,
		txManager:        txManager,
		publisher:        publisher,
		logger:           logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	uc.logger.Infow("executing delete ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.UserID)

	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if !cmd.Actor.IsAdmin() {
		return errors.NewForbiddenError("only admins can delete tickets")
	}

	t, err := LoadVisibleTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.Actor, uc.logger)
	if err != nil {
		return err
	}

	attachments, err := uc.attachmentRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list ticket attachments", "ticket_id", t.ID(), "error", err)
		return errors.NewInternalError("failed to delete ticket")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.commentRepo.DeleteByTicket(txCtx, t.ID()); err != nil {
			return err
		}
		for _, a := range attachments {
			if err := uc.attachmentRepo.Delete(txCtx, a.ID()); err != nil {
				return err
			}
		}
		if err := uc.notificationRepo.DeleteByTicket(txCtx, t.ID()); err != nil {
			return err
		}
		return uc.ticketRepo.Delete(txCtx, t.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", t.ID(), "error", err)
		return errors.NewInternalError("failed to delete ticket")
	}

	// Files go only after the rows are committed.
	for _, a := range attachments {
		uc.removeFiles(ctx, a)
	}

	common.PublishEvent(uc.publisher, ticket.NewTicketDeletedEvent(t, cmd.Actor.UserID), uc.logger)

	uc.logger.Infow("ticket deleted successfully", "ticket_id", t.ID(), "attachments", len(attachments))
	return nil
}

func (uc *DeleteTicketUseCase) removeFiles(ctx context.Context, a *attachment.Attachment) {
	keys := []string{a.StorageKey()}
	if a.HasThumbnail() {
		keys = append(keys, *a.ThumbnailKey())
	}
	for _, key := range keys {
		if err := uc.storage.Delete(ctx, key); err != nil {
			uc.logger.Warnw("failed to delete attachment file", "attachment_id", a.ID(), "key", key, "error", err)
		}
	}
}
