package usecases

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/helpdeskhq/helpdesk/internal/application/common"
	"github.com/helpdeskhq/helpdesk/internal/application/dashboard/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

const (
	DefaultStatsTTL = 60 * time.Second

	// CacheKeyPattern matches every dashboard entry.
	CacheKeyPattern = "dashboard:*"
)

func statsCacheKey(actor authorization.Actor) string {
	return fmt.Sprintf("dashboard:stats:%s:%d", actor.Role, actor.UserID)
}

type GetStatsUseCase struct {
	ticketRepo ticket.TicketRepository
	cache      common.Cache
	ttl        time.Duration
	logger     logger.Interface
	now        func() time.Time
}

// NewGetStatsUseCase builds the use case; cache may be nil.
func NewGetStatsUseCase(ticketRepo ticket.TicketRepository, cache common.Cache, ttl time.Duration, logger logger.Interface) *GetStatsUseCase {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &GetStatsUseCase{
		ticketRepo: ticketRepo,
		cache:      cache,
		ttl:        ttl,
		logger:     logger,
		now:        biztime.NowUTC,
	}
}

func (uc *GetStatsUseCase) Execute(ctx context.Context, actor authorization.Actor) (*dto.StatsDTO, error) {
	if actor.UserID == 0 {
		return nil, errors.NewUnauthorizedError("authentication required")
	}

	stats, err := common.GetOrSet(ctx, uc.cache, statsCacheKey(actor), uc.ttl, func(ctx context.Context) (*dto.StatsDTO, error) {
		return uc.load(ctx, actor)
	}, uc.logger)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (uc *GetStatsUseCase) load(ctx context.Context, actor authorization.Actor) (*dto.StatsDTO, error) {
	now := uc.now()
	scope := ticket.StatsScope{
		DayStart: biztime.StartOfDayUTC(now),
		DayEnd:   biztime.EndOfDayUTC(now),
		Now:      now,
	}
	userID := actor.UserID
	if actor.IsStaff() {
		scope.AssigneeID = &userID
	} else {
		scope.CreatorID = &userID
	}

	stats, err := uc.ticketRepo.Stats(ctx, scope)
	if err != nil {
		uc.logger.Errorw("failed to load dashboard stats", "user_id", actor.UserID, "error", err)
		return nil, errors.NewInternalError("failed to load dashboard stats")
	}

	result := &dto.StatsDTO{
		Total:              stats.Total,
		ByStatus:           make(map[string]int64, len(vo.AllStatuses())),
		ByPriority:         make(map[string]int64, len(vo.AllPriorities())),
		AssignedToMe:       stats.AssignedToMe,
		Unassigned:         stats.Unassigned,
		Overdue:            stats.Overdue,
		CreatedToday:       stats.CreatedToday,
		ResolvedToday:      stats.ResolvedToday,
		AvgResolutionHours: math.Round(stats.AvgResolutionHours*10) / 10,
		GeneratedAt:        now,
	}
	for _, s := range vo.AllStatuses() {
		result.ByStatus[s.String()] = stats.ByStatus[s]
	}
	for _, p := range vo.AllPriorities() {
		result.ByPriority[p.String()] = stats.ByPriority[p]
	}

	if actor.IsStaff() {
		result.MyOpen = stats.AssignedToMe
	} else {
		result.MyOpen = stats.ByStatus[vo.StatusOpen] + stats.ByStatus[vo.StatusInProgress]
		result.AssignedToMe = 0
	}

	uc.logger.Debugw("dashboard stats computed", "user_id", actor.UserID, "total", result.Total)
	return result, nil
}
