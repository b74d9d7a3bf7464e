package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/common"
	"github.com/helpdeskhq/helpdesk/internal/application/ticket/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

type ChangeStatusCommand struct {
	TicketID  uint
	NewStatus string
	Actor     authorization.Actor
}

type ChangeStatusUseCase struct {
	ticketRepo ticket.TicketRepository
	publisher  events.EventPublisher
	logger     logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.TicketRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing change status use case", "ticket_id", cmd.TicketID, "new_status", cmd.NewStatus)

	next, err := uc.validateCommand(cmd)
	if err != nil {
		uc.logger.Warnw("invalid change status command", "error", err)
		return nil, err
	}

	t, err := LoadVisibleTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.Actor, uc.logger)
	if err != nil {
		return nil, err
	}

	oldStatus := t.Status()
	if err := t.ChangeStatus(next, cmd.Actor.Role); err != nil {
		uc.logger.Warnw("rejected status change",
			"ticket_id", t.ID(),
			"from", oldStatus,
			"to", next,
			"role", cmd.Actor.Role,
			"error", err,
		)
		return nil, MapDomainError(err)
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
		return nil, PersistError(err, "failed to update ticket")
	}

	common.PublishEvent(uc.publisher,
		ticket.NewTicketStatusChangedEvent(t, cmd.Actor.UserID, oldStatus.String()), uc.logger)

	uc.logger.Infow("ticket status changed successfully", "ticket_id", t.ID(), "old_status", oldStatus, "new_status", next)

	return dto.ToTicketDTO(t, nil, biztime.NowUTC()), nil
}

func (uc *ChangeStatusUseCase) validateCommand(cmd ChangeStatusCommand) (vo.TicketStatus, error) {
	if cmd.TicketID == 0 {
		return "", errors.NewValidationError("ticket ID is required")
	}
	next, err := vo.NewTicketStatus(cmd.NewStatus)
	if err != nil {
		return "", errors.NewValidationError(err.Error())
	}
	return next, nil
}
