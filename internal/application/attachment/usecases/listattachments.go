package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/attachment/dto"
	ticketusecases "github.com/helpdeskhq/helpdesk/internal/application/ticket/usecases"
	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

type ListAttachmentsQuery struct {
	TicketID uint
	Actor    authorization.Actor
}

type ListAttachmentsUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo attachment.Repository
	logger         logger.Interface
}

func NewListAttachmentsUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo attachment.Repository,
	logger logger.Interface,
) *ListAttachmentsUseCase {
	return &ListAttachmentsUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}
}

func (uc *ListAttachmentsUseCase) Execute(ctx context.Context, query ListAttachmentsQuery) ([]dto.AttachmentDTO, error) {
	t, err := ticketusecases.LoadVisibleTicket(ctx, uc.ticketRepo, query.TicketID, query.Actor, uc.logger)
	if err != nil {
		return nil, err
	}

	items, err := uc.attachmentRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list attachments", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to list attachments")
	}
	return dto.ToAttachmentDTOs(items), nil
}

type GetAttachmentQuery struct {
	AttachmentID uint
	Actor        authorization.Actor
}

type GetAttachmentUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo attachment.Repository
	logger         logger.Interface
}

func NewGetAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo attachment.Repository,
	logger logger.Interface,
) *GetAttachmentUseCase {
	return &GetAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}
}

func (uc *GetAttachmentUseCase) Execute(ctx context.Context, query GetAttachmentQuery) (*dto.AttachmentDTO, error) {
	a, err := LoadVisibleAttachment(ctx, uc.attachmentRepo, uc.ticketRepo, query.AttachmentID, query.Actor, uc.logger)
	if err != nil {
		return nil, err
	}
	result := dto.ToAttachmentDTO(a)
	return &result, nil
}
