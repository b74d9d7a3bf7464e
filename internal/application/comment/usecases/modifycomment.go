package usecases

import (
	"context"
	"fmt"

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

type UpdateCommentCommand struct {
	CommentID uint
	Content   string
	Actor     authorization.Actor
}

type DeleteCommentCommand struct {
	CommentID uint
	Actor     authorization.Actor
}

// commentLoader resolves a comment together with its ticket and checks that
// the actor may modify it.
type commentLoader struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	logger      logger.Interface
}

func (l commentLoader) loadModifiable(ctx context.Context, commentID uint, actor authorization.Actor) (*ticket.Comment, *ticket.Ticket, error) {
	if commentID == 0 {
		return nil, nil, errors.NewValidationError("comment ID is required")
	}

	c, err := l.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		l.logger.Errorw("failed to get comment", "comment_id", commentID, "error", err)
		return nil, nil, errors.NewInternalError("failed to get comment")
	}
	if c == nil || !c.IsVisibleTo(actor) {
		return nil, nil, errors.NewNotFoundError(fmt.Sprintf("comment %d not found", commentID))
	}

	t, err := ticketusecases.LoadVisibleTicket(ctx, l.ticketRepo, c.TicketID(), actor, l.logger)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, nil, errors.NewNotFoundError(fmt.Sprintf("comment %d not found", commentID))
		}
		return nil, nil, err
	}

	if err := c.CheckModifiableBy(actor); err != nil {
		return nil, nil, ticketusecases.MapDomainError(err)
	}
	return c, t, nil
}

type UpdateCommentUseCase struct {
	loader      commentLoader
	commentRepo ticket.CommentRepository
	userRepo    user.Repository
	markdownSvc markdown.MarkdownService
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewUpdateCommentUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	userRepo user.Repository,
	markdownSvc markdown.MarkdownService,
	publisher events.EventPublisher,
	logger logger.Interface,
) *UpdateCommentUseCase {
	return &UpdateCommentUseCase{
		loader:      commentLoader{ticketRepo: ticketRepo, commentRepo: commentRepo, logger: logger},
		commentRepo: commentRepo,
		userRepo:    userRepo,
		markdownSvc: markdownSvc,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *UpdateCommentUseCase) Execute(ctx context.Context, cmd UpdateCommentCommand) (*dto.CommentDTO, error) {
	uc.logger.Infow("executing update comment use case", "comment_id", cmd.CommentID, "actor_id", cmd.Actor.UserID)

	c, t, err := uc.loader.loadModifiable(ctx, cmd.CommentID, cmd.Actor)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateContent(cmd.Content); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.commentRepo.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to update comment", "comment_id", c.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update comment")
	}

	common.PublishEvent(uc.publisher, ticket.NewCommentEvent(ticket.EventCommentUpdated, t, c, cmd.Actor.UserID), uc.logger)

	users := ticketusecases.LoadUserDirectory(ctx, uc.userRepo, []uint{c.AuthorID()}, uc.logger)
	result := dto.ToCommentDTO(c, users, markdown.RenderOrEmpty(uc.markdownSvc, c.Content()))
	return &result, nil
}

type DeleteCommentUseCase struct {
	loader      commentLoader
	commentRepo ticket.CommentRepository
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewDeleteCommentUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *DeleteCommentUseCase {
	return &DeleteCommentUseCase{
		loader:      commentLoader{ticketRepo: ticketRepo, commentRepo: commentRepo, logger: logger},
		commentRepo: commentRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *DeleteCommentUseCase) Execute(ctx context.Context, cmd DeleteCommentCommand) error {
	uc.logger.Infow("executing delete comment use case", "comment_id", cmd.CommentID, "actor_id", cmd.Actor.UserID)

	c, t, err := uc.loader.loadModifiable(ctx, cmd.CommentID, cmd.Actor)
	if err != nil {
		return err
	}

	if err := uc.commentRepo.Delete(ctx, c.ID()); err != nil {
		uc.logger.Errorw("failed to delete comment", "comment_id", c.ID(), "error", err)
		return errors.NewInternalError("failed to delete comment")
	}

	common.PublishEvent(uc.publisher, ticket.NewCommentEvent(ticket.EventCommentDeleted, t, c, cmd.Actor.UserID), uc.logger)

	uc.logger.Infow("comment deleted successfully", "comment_id", c.ID(), "ticket_id", t.ID())
	return nil
}
