package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/ticket/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/services/markdown"
)

type GetTicketQuery struct {
	TicketID uint
	Actor    authorization.Actor
}

type GetTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	commentRepo    ticket.CommentRepository
	attachmentRepo attachment.Repository
	userRepo       user.Repository
	markdownSvc    markdown.MarkdownService
	logger         logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	attachmentRepo attachment.Repository,
	userRepo user.Repository,
	markdownSvc markdown.MarkdownService,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		userRepo:       userRepo,
		markdownSvc:    markdownSvc,
		logger:         logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	t, err := LoadVisibleTicket(ctx, uc.ticketRepo, query.TicketID, query.Actor, uc.logger)
	if err != nil {
		return nil, err
	}

	comments, err := uc.commentRepo.ListByTicket(ctx, t.ID(), query.Actor.IsStaff())
	if err != nil {
		uc.logger.Errorw("failed to list ticket comments", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}

	attachmentCount, err := uc.attachmentRepo.CountByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Warnw("failed to count attachments", "ticket_id", t.ID(), "error", err)
	}

	ids := dto.ReferencedUserIDs([]*ticket.Ticket{t})
	for _, c := range comments {
		ids = append(ids, c.AuthorID())
	}
	users := LoadUserDirectory(ctx, uc.userRepo, ids, uc.logger)

	result := dto.ToTicketDTO(t, users, biztime.NowUTC())
	result.DescriptionHTML = markdown.RenderOrEmpty(uc.markdownSvc, t.Description())
	result.AttachmentCount = attachmentCount
	for _, c := range comments {
		if !c.IsVisibleTo(query.Actor) {
			continue
		}
		result.Comments = append(result.Comments,
			dto.ToCommentDTO(c, users, markdown.RenderOrEmpty(uc.markdownSvc, c.Content())))
	}

	return result, nil
}
