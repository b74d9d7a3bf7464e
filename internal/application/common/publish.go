// Package common holds helpers shared by the use case packages.
package common

import (
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

// PublishEvent hands event to publisher. Delivery failures are logged and
// never fail the calling use case.
func PublishEvent(publisher events.EventPublisher, event events.DomainEvent, log logger.Interface) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(event); err != nil {
		log.Warnw("failed to publish event",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"error", err,
		)
	}
}
