package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/common"
	"github.com/helpdeskhq/helpdesk/internal/application/ticket/dto"
	ticketusecases "github.com/helpdeskhq/helpdesk/internal/application/ticket/usecases"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/services/markdown"
)

type AddCommentCommand struct {
	TicketID   uint
	Content    string
	IsInternal bool
	Actor      authorization.Actor
}

type AddCommentUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	userRepo    user.Repository
	txManager   TransactionRunner
	markdownSvc markdown.MarkdownService
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	userRepo user.Repository,
	txManager TransactionRunner,
	markdownSvc markdown.MarkdownService,
	publisher events.EventPublisher,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		markdownSvc: markdownSvc,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error) {
	uc.logger.Infow("executing add comment use case",
		"ticket_id", cmd.TicketID,
		"author_id", cmd.Actor.UserID,
		"is_internal", cmd.IsInternal,
	)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.IsInternal && !cmd.Actor.IsStaff() {
		return nil, errors.NewForbiddenError("only agents and admins can post internal notes")
	}

	t, err := ticketusecases.LoadVisibleTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.Actor, uc.logger)
	if err != nil {
		return nil, err
	}

	c, err := ticket.NewComment(t.ID(), cmd.Actor.UserID, cmd.Content, cmd.IsInternal)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.commentRepo.Create(txCtx, c); err != nil {
			return err
		}
		if t.RecordComment(cmd.Actor.UserID, cmd.IsInternal) {
			return uc.ticketRepo.Update(txCtx, t)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to add comment", "ticket_id", t.ID(), "error", err)
		return nil, ticketusecases.PersistError(err, "failed to add comment")
	}

	common.PublishEvent(uc.publisher, ticket.NewCommentEvent(ticket.EventCommentAdded, t, c, cmd.Actor.UserID), uc.logger)

	uc.logger.Infow("comment added successfully", "ticket_id", t.ID(), "comment_id", c.ID())

	users := ticketusecases.LoadUserDirectory(ctx, uc.userRepo, []uint{c.AuthorID()}, uc.logger)
	result := dto.ToCommentDTO(c, users, markdown.RenderOrEmpty(uc.markdownSvc, c.Content()))
	return &result, nil
}
