package usecases

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/application/dashboard/dto"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
)

type GetStatsExecutor interface {
	Execute(ctx context.Context, actor authorization.Actor) (*dto.StatsDTO, error)
}

type GetRecentTicketsExecutor interface {
	Execute(ctx context.Context, actor authorization.Actor) (*dto.RecentTicketsDTO, error)
}
