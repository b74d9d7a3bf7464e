package usecases

import (
	"context"
	"fmt"

	"github.com/helpdeskhq/helpdesk/internal/application/common"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

// StatsInvalidator drops every cached dashboard stats entry when a ticket
// changes.
type StatsInvalidator struct {
	cache  common.Cache
	logger logger.Interface
}

func NewStatsInvalidator(cache common.Cache, logger logger.Interface) *StatsInvalidator {
	return &StatsInvalidator{cache: cache, logger: logger}
}

func (h *StatsInvalidator) Subscribe(subscriber events.EventSubscriber) error {
	for _, eventType := range []string{
		ticket.EventTicketCreated,
		ticket.EventTicketAssigned,
		ticket.EventTicketStatusChanged,
		ticket.EventTicketDeleted,
		ticket.EventSLABreached,
	} {
		if err := subscriber.Subscribe(eventType, h); err != nil {
			return fmt.Errorf("failed to subscribe dashboard invalidator to %s: %w", eventType, err)
		}
	}
	return nil
}

func (h *StatsInvalidator) Handle(ctx context.Context, event events.DomainEvent) error {
	if h.cache == nil {
		return nil
	}
	if err := h.cache.DeleteByPattern(ctx, CacheKeyPattern); err != nil {
		h.logger.Warnw("failed to invalidate dashboard cache", "event_type", event.GetEventType(), "error", err)
	}
	return nil
}
