package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/common"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

const defaultOverdueBatchSize = 100

type CheckOverdueResult struct {
	Scanned  int
	Breached int
}

// CheckOverdueTicketsUseCase marks active tickets past their SLA as breached
// and emits one SLABreachedEvent per ticket.
type CheckOverdueTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	publisher  events.EventPublisher
	batchSize  int
	logger     logger.Interface
}

func NewCheckOverdueTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CheckOverdueTicketsUseCase {
	return &CheckOverdueTicketsUseCase{
		ticketRepo: ticketRepo,
		publisher:  publisher,
		batchSize:  defaultOverdueBatchSize,
		logger:     logger,
	}
}

func (uc *CheckOverdueTicketsUseCase) Execute(ctx context.Context) (*CheckOverdueResult, error) {
	now := biztime.NowUTC()

	overdue, err := uc.ticketRepo.ListOverdue(ctx, now, uc.batchSize)
	if err != nil {
		uc.logger.Errorw("failed to list overdue tickets", "error", err)
		return nil, errors.NewInternalError("failed to list overdue tickets")
	}

	result := &CheckOverdueResult{Scanned: len(overdue)}
	for _, t := range overdue {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if !t.MarkSLABreached(now) {
			continue
		}
		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			uc.logger.Warnw("failed to mark ticket as SLA breached", "ticket_id", t.ID(), "error", err)
			continue
		}
		common.PublishEvent(uc.publisher, ticket.NewSLABreachedEvent(t), uc.logger)
		result.Breached++
	}

	if result.Breached > 0 {
		uc.logger.Infow("SLA breaches recorded", "scanned", result.Scanned, "breached", result.Breached)
	}
	return result, nil
}
