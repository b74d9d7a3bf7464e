package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/dashboard/dto"
	ticketdto "github.com/helpdeskhq/helpdesk/internal/application/ticket/dto"
	ticketusecases "github.com/helpdeskhq/helpdesk/internal/application/ticket/usecases"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/query"
)

const RecentTicketsLimit = 10

type GetRecentTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	logger     logger.Interface
}

func NewGetRecentTicketsUseCase(ticketRepo ticket.TicketRepository, userRepo user.Repository, logger logger.Interface) *GetRecentTicketsUseCase {
	return &GetRecentTicketsUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Execute returns the newest tickets the actor can see.
func (uc *GetRecentTicketsUseCase) Execute(ctx context.Context, actor authorization.Actor) (*dto.RecentTicketsDTO, error) {
	filter := ticket.TicketFilter{
		BaseFilter: query.NewBaseFilter(
			query.WithPage(1, RecentTicketsLimit),
			query.WithSort("created_at", "desc"),
		),
	}
	if !actor.IsStaff() {
		creatorID := actor.UserID
		filter.CreatorID = &creatorID
	}

	tickets, _, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list recent tickets", "user_id", actor.UserID, "error", err)
		return nil, errors.NewInternalError("failed to load recent tickets")
	}

	users := ticketusecases.LoadUserDirectory(ctx, uc.userRepo, ticketdto.ReferencedUserIDs(tickets), uc.logger)
	return &dto.RecentTicketsDTO{Tickets: ticketdto.ToTicketListItemDTOs(tickets, users, biztime.NowUTC())}, nil
}
