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
	"github.com/helpdeskhq/helpdesk/internal/shared/services/markdown"
)

type UpdateTicketCommand struct {
	TicketID    uint
	Title       *string
	Description *string
	Priority    *string
	Actor       authorization.Actor
}

type UpdateTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	markdownSvc markdown.MarkdownService
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	markdownSvc markdown.MarkdownService,
	publisher events.EventPublisher,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo:  ticketRepo,
		markdownSvc: markdownSvc,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.UserID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.Title == nil && cmd.Description == nil && cmd.Priority == nil {
		return nil, errors.NewValidationError("no fields to update")
	}

	t, err := LoadVisibleTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.Actor, uc.logger)
	if err != nil {
		return nil, err
	}
	if err := t.CheckEditableBy(cmd.Actor); err != nil {
		return nil, MapDomainError(err)
	}

	fields := changedFields(t, cmd)

	if err := t.UpdateDetails(cmd.Title, cmd.Description); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Priority != nil {
		priority, err := vo.NewPriority(*cmd.Priority)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if err := t.ChangePriority(priority); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if len(fields) > 0 {
		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
			return nil, PersistError(err, "failed to update ticket")
		}
		common.PublishEvent(uc.publisher, ticket.NewTicketUpdatedEvent(t, cmd.Actor.UserID, fields), uc.logger)
		uc.logger.Infow("ticket updated successfully", "ticket_id", t.ID(), "fields", fields)
	}

	result := dto.ToTicketDTO(t, nil, biztime.NowUTC())
	result.DescriptionHTML = markdown.RenderOrEmpty(uc.markdownSvc, t.Description())
	return result, nil
}

func changedFields(t *ticket.Ticket, cmd UpdateTicketCommand) []string {
	var fields []string
	if cmd.Title != nil && *cmd.Title != t.Title() {
		fields = append(fields, "title")
	}
	if cmd.Description != nil && *cmd.Description != t.Description() {
		fields = append(fields, "description")
	}
	if cmd.Priority != nil {
		if p, err := vo.NewPriority(*cmd.Priority); err == nil && p != t.Priority() {
			fields = append(fields, "priority")
		}
	}
	return fields
}
