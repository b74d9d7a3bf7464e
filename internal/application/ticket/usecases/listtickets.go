package usecases

import (
	"context"

	commondto "github.com/helpdeskhq/helpdesk/internal/application/common/dto"
	"github.com/helpdeskhq/helpdesk/internal/application/ticket/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
	"github.com/helpdeskhq/helpdesk/internal/shared/constants"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/query"
)

type ListTicketsQuery struct {
	Status     string
	Priority   string
	CreatorID  *uint
	AssigneeID *uint
	Unassigned bool
	Search     string
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
	Actor      authorization.Actor
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*commondto.Page[dto.TicketListItemDTO], error) {
	filter, err := uc.buildFilter(q)
	if err != nil {
		return nil, err
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	users := LoadUserDirectory(ctx, uc.userRepo, dto.ReferencedUserIDs(tickets), uc.logger)
	items := dto.ToTicketListItemDTOs(tickets, users, biztime.NowUTC())

	return commondto.NewPage(items, total, filter.Page, filter.Limit()), nil
}

func (uc *ListTicketsUseCase) buildFilter(q ListTicketsQuery) (ticket.TicketFilter, error) {
	page := q.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	filter := ticket.TicketFilter{
		BaseFilter: query.NewBaseFilter(
			query.WithPage(page, q.PageSize),
			query.WithSort(q.SortBy, q.SortOrder),
		),
		CreatorID:  q.CreatorID,
		AssigneeID: q.AssigneeID,
		Unassigned: q.Unassigned,
		Search:     q.Search,
	}

	if q.Status != "" {
		status, err := vo.NewTicketStatus(q.Status)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if q.Priority != "" {
		priority, err := vo.NewPriority(q.Priority)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Priority = &priority
	}

	// USER callers only ever see their own tickets.
	if !q.Actor.IsStaff() {
		creatorID := q.Actor.UserID
		filter.CreatorID = &creatorID
	}

	return filter, nil
}
