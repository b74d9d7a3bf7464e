package usecases

import (
	"context"
	"fmt"

	"github.com/helpdeskhq/helpdesk/internal/application/common"
	"github.com/helpdeskhq/helpdesk/internal/application/ticket/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

// AssignTicketCommand assigns the ticket to AssigneeID, or unassigns it
// when AssigneeID is nil.
type AssignTicketCommand struct {
	TicketID   uint
	AssigneeID *uint
	Actor      authorization.Actor
}

type AssignTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	publisher  events.EventPublisher
	logger     logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing assign ticket use case", "ticket_id", cmd.TicketID, "assignee_id", cmd.AssigneeID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if !cmd.Actor.IsStaff() {
		return nil, errors.NewForbiddenError("only agents and admins can assign tickets")
	}

	t, err := LoadVisibleTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.Actor, uc.logger)
	if err != nil {
		return nil, err
	}

	users := dto.UserDirectory{}
	if cmd.AssigneeID != nil {
		assignee, err := uc.loadAssignee(ctx, *cmd.AssigneeID)
		if err != nil {
			return nil, err
		}
		users[assignee.ID()] = assignee
	}

	previous := t.AssigneeID()
	if !t.AssignTo(cmd.AssigneeID) {
		return dto.ToTicketDTO(t, users, biztime.NowUTC()), nil
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to assign ticket", "ticket_id", t.ID(), "error", err)
		return nil, PersistError(err, "failed to assign ticket")
	}

	common.PublishEvent(uc.publisher, ticket.NewTicketAssignedEvent(t, cmd.Actor.UserID, previous), uc.logger)

	uc.logger.Infow("ticket assigned successfully", "ticket_id", t.ID(), "assignee_id", cmd.AssigneeID)

	return dto.ToTicketDTO(t, users, biztime.NowUTC()), nil
}

func (uc *AssignTicketUseCase) loadAssignee(ctx context.Context, id uint) (*user.User, error) {
	assignee, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get assignee", "assignee_id", id, "error", err)
		return nil, errors.NewInternalError("failed to assign ticket")
	}
	if assignee == nil {
		return nil, errors.NewValidationError(fmt.Sprintf("assignee %d not found", id))
	}
	if !assignee.IsAssignable() {
		return nil, errors.NewValidationError("assignee must be an active agent or admin")
	}
	return assignee, nil
}
