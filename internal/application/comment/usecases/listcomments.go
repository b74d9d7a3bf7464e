package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/ticket/dto"
	ticketusecases "github.com/helpdeskhq/helpdesk/internal/application/ticket/usecases"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/services/markdown"
)

type ListCommentsQuery struct {
	TicketID uint
	Actor    authorization.Actor
}

type ListCommentsUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	userRepo    user.Repository
	markdownSvc markdown.MarkdownService
	logger      logger.Interface
}

func NewListCommentsUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	userRepo user.Repository,
	markdownSvc markdown.MarkdownService,
	logger logger.Interface,
) *ListCommentsUseCase {
	return &ListCommentsUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		markdownSvc: markdownSvc,
		logger:      logger,
	}
}

// Execute lists comments oldest first; internal notes only for staff.
func (uc *ListCommentsUseCase) Execute(ctx context.Context, query ListCommentsQuery) ([]dto.CommentDTO, error) {
	t, err := ticketusecases.LoadVisibleTicket(ctx, uc.ticketRepo, query.TicketID, query.Actor, uc.logger)
	if err != nil {
		return nil, err
	}

	comments, err := uc.commentRepo.ListByTicket(ctx, t.ID(), query.Actor.IsStaff())
	if err != nil {
		uc.logger.Errorw("failed to list comments", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to list comments")
	}

	ids := make([]uint, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorID())
	}
	users := ticketusecases.LoadUserDirectory(ctx, uc.userRepo, ids, uc.logger)

	result := make([]dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		if !c.IsVisibleTo(query.Actor) {
			continue
		}
		result = append(result, dto.ToCommentDTO(c, users, markdown.RenderOrEmpty(uc.markdownSvc, c.Content())))
	}
	return result, nil
}
