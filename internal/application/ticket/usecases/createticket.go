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

// maxNumberAttempts bounds retries when two requests draw the same number.
const maxNumberAttempts = 3

type CreateTicketCommand struct {
	Title       string
	Description string
	Priority    string
	Actor       authorization.Actor
}

type CreateTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	numberGen   ticket.NumberGenerator
	markdownSvc markdown.MarkdownService
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	numberGen ticket.NumberGenerator,
	markdownSvc markdown.MarkdownService,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:  ticketRepo,
		numberGen:   numberGen,
		markdownSvc: markdownSvc,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create ticket use case", "creator_id", cmd.Actor.UserID, "priority", cmd.Priority)

	priority, err := uc.validateCommand(cmd)
	if err != nil {
		uc.logger.Warnw("invalid create ticket command", "error", err)
		return nil, err
	}

	t, err := uc.create(ctx, cmd, priority)
	if err != nil {
		return nil, err
	}

	common.PublishEvent(uc.publisher, ticket.NewTicketCreatedEvent(t, cmd.Actor.UserID), uc.logger)

	uc.logger.Infow("ticket created successfully", "ticket_id", t.ID(), "number", t.Number())

	result := dto.ToTicketDTO(t, nil, biztime.NowUTC())
	result.DescriptionHTML = markdown.RenderOrEmpty(uc.markdownSvc, t.Description())
	return result, nil
}

// create draws a number and inserts the ticket, starting over with a fresh
// number when a concurrent insert took the same one.
func (uc *CreateTicketUseCase) create(ctx context.Context, cmd CreateTicketCommand, priority vo.Priority) (*ticket.Ticket, error) {
	var number string
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		t, err := ticket.NewTicket(cmd.Title, cmd.Description, priority, cmd.Actor.UserID)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}

		number, err = uc.numberGen.Generate(ctx)
		if err != nil {
			uc.logger.Errorw("failed to generate ticket number", "error", err)
			return nil, errors.NewInternalError("failed to generate ticket number")
		}
		if err := t.SetNumber(number); err != nil {
			return nil, errors.NewInternalError("failed to generate ticket number")
		}

		err = uc.ticketRepo.Create(ctx, t)
		if err == nil {
			return t, nil
		}
		if !errors.IsDuplicateError(err) {
			uc.logger.Errorw("failed to save ticket", "number", number, "error", err)
			return nil, errors.NewInternalError("failed to save ticket")
		}
		uc.logger.Warnw("ticket number collision, retrying", "number", number, "attempt", attempt)
	}
	uc.logger.Errorw("exhausted ticket number attempts", "last_number", number)
	return nil, errors.NewConflictError("could not allocate a ticket number, please retry")
}

func (uc *CreateTicketUseCase) validateCommand(cmd CreateTicketCommand) (vo.Priority, error) {
	if cmd.Actor.UserID == 0 {
		return "", errors.NewUnauthorizedError("authentication required")
	}
	priority := vo.PriorityMedium
	if cmd.Priority != "" {
		p, err := vo.NewPriority(cmd.Priority)
		if err != nil {
			return "", errors.NewValidationError(err.Error())
		}
		priority = p
	}
	return priority, nil
}
