// Package services writes the audit trail from domain events.
package services

import (
	"context"
	"fmt"

	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/domain/audit"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

// auditedEvents maps every recorded event type to its entity type.
var auditedEvents = map[string]string{
	ticket.EventTicketCreated:          audit.EntityTicket,
	ticket.EventTicketUpdated:          audit.EntityTicket,
	ticket.EventTicketAssigned:         audit.EntityTicket,
	ticket.EventTicketStatusChanged:    audit.EntityTicket,
	ticket.EventTicketDeleted:          audit.EntityTicket,
	ticket.EventSLABreached:            audit.EntityTicket,
	ticket.EventCommentAdded:           audit.EntityComment,
	ticket.EventCommentUpdated:         audit.EntityComment,
	ticket.EventCommentDeleted:         audit.EntityComment,
	attachment.EventAttachmentUploaded: audit.EntityAttachment,
	attachment.EventAttachmentDeleted:  audit.EntityAttachment,
	user.EventUserRegistered:           audit.EntityUser,
	user.EventUserLoggedIn:             audit.EntityUser,
	user.EventUserRoleChanged:          audit.EntityUser,
	user.EventUserStatusChanged:        audit.EntityUser,
}

type Recorder struct {
	auditRepo audit.Repository
	logger    logger.Interface
}

func NewRecorder(auditRepo audit.Repository, logger logger.Interface) *Recorder {
	return &Recorder{auditRepo: auditRepo, logger: logger}
}

func (r *Recorder) Subscribe(subscriber events.EventSubscriber) error {
	for eventType := range auditedEvents {
		if err := subscriber.Subscribe(eventType, r); err != nil {
			return fmt.Errorf("failed to subscribe audit recorder to %s: %w", eventType, err)
		}
	}
	return nil
}

func (r *Recorder) Handle(ctx context.Context, event events.DomainEvent) error {
	entityType, ok := auditedEvents[event.GetEventType()]
	if !ok {
		return nil
	}

	entry := &audit.Log{
		Action:     event.GetEventType(),
		EntityType: entityType,
		EntityID:   event.GetAggregateID(),
		CreatedAt:  event.GetOccurredAt(),
	}
	describe(entry, event)

	if err := r.auditRepo.Create(ctx, entry); err != nil {
		r.logger.Errorw("failed to write audit log",
			"action", entry.Action,
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID,
			"error", err,
		)
		return err
	}
	return nil
}

// describe fills actor and details from the concrete event.
func describe(entry *audit.Log, event events.DomainEvent) {
	setActor := func(id uint) {
		if id != 0 {
			entry.ActorID = &id
		}
	}

	switch e := event.(type) {
	case ticket.TicketCreatedEvent:
		setActor(e.ActorID)
		entry.Details = map[string]any{"number": e.Number, "title": e.Title, "priority": e.Priority}
	case ticket.TicketUpdatedEvent:
		setActor(e.ActorID)
		entry.Details = map[string]any{"number": e.Number, "fields": e.Fields}
	case ticket.TicketAssignedEvent:
		setActor(e.ActorID)
		entry.Details = map[string]any{"number": e.Number, "assignee_id": e.AssigneeID, "previous_assignee_id": e.PreviousAssignee}
	case ticket.TicketStatusChangedEvent:
		setActor(e.ActorID)
		entry.Details = map[string]any{"number": e.Number, "old_status": e.OldStatus, "new_status": e.NewStatus}
	case ticket.TicketDeletedEvent:
		setActor(e.ActorID)
		entry.Details = map[string]any{"number": e.Number, "title": e.Title}
	case ticket.SLABreachedEvent:
		entry.Details = map[string]any{"number": e.Number, "due_at": e.DueAt}
	case ticket.CommentEvent:
		setActor(e.ActorID)
		entry.Details = map[string]any{"ticket_id": e.TicketID, "number": e.Number, "is_internal": e.IsInternal}
	case attachment.AttachmentEvent:
		setActor(e.ActorID)
		entry.Details = map[string]any{"ticket_id": e.TicketID, "original_name": e.OriginalName, "mime_type": e.MimeType, "size": e.Size}
	case user.UserEvent:
		setActor(e.ActorID)
		entry.IPAddress = e.IPAddress
		entry.UserAgent = e.UserAgent
		entry.Details = map[string]any{"email": e.Email}
		if e.OldValue != "" || e.NewValue != "" {
			entry.Details["old_value"] = e.OldValue
			entry.Details["new_value"] = e.NewValue
		}
	}
}
