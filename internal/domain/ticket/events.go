package ticket

import (
	"time"

	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
)

const (
	EventTicketCreated       = "ticket.created"
	EventTicketUpdated       = "ticket.updated"
	EventTicketAssigned      = "ticket.assigned"
	EventTicketStatusChanged = "ticket.status_changed"
	EventTicketDeleted       = "ticket.deleted"
	EventSLABreached         = "ticket.sla_breached"
	EventCommentAdded        = "comment.added"
	EventCommentUpdated      = "comment.updated"
	EventCommentDeleted      = "comment.deleted"
)

// TicketRef is the ticket snapshot every ticket event carries so handlers
// can address recipients without reloading.
type TicketRef struct {
	Number     string `json:"number"`
	Title      string `json:"title"`
	CreatorID  uint   `json:"creator_id"`
	AssigneeID *uint  `json:"assignee_id,omitempty"`
}

func RefOf(t *Ticket) TicketRef {
	return TicketRef{
		Number:     t.Number(),
		Title:      t.Title(),
		CreatorID:  t.CreatorID(),
		AssigneeID: t.AssigneeID(),
	}
}

type TicketCreatedEvent struct {
	events.BaseEvent
	TicketRef
	ActorID  uint   `json:"actor_id"`
	Priority string `json:"priority"`
}

func NewTicketCreatedEvent(t *Ticket, actorID uint) TicketCreatedEvent {
	return TicketCreatedEvent{
		BaseEvent: events.NewBaseEvent(EventTicketCreated, t.ID()),
		TicketRef: RefOf(t),
		ActorID:   actorID,
		Priority:  t.Priority().String(),
	}
}

type TicketUpdatedEvent struct {
	events.BaseEvent
	TicketRef
	ActorID uint     `json:"actor_id"`
	Fields  []string `json:"fields"`
}

func NewTicketUpdatedEvent(t *Ticket, actorID uint, fields []string) TicketUpdatedEvent {
	return TicketUpdatedEvent{
		BaseEvent: events.NewBaseEvent(EventTicketUpdated, t.ID()),
		TicketRef: RefOf(t),
		ActorID:   actorID,
		Fields:    fields,
	}
}

type TicketAssignedEvent struct {
	events.BaseEvent
	TicketRef
	ActorID          uint  `json:"actor_id"`
	PreviousAssignee *uint `json:"previous_assignee_id,omitempty"`
}

func NewTicketAssignedEvent(t *Ticket, actorID uint, previous *uint) TicketAssignedEvent {
	return TicketAssignedEvent{
		BaseEvent:        events.NewBaseEvent(EventTicketAssigned, t.ID()),
		TicketRef:        RefOf(t),
		ActorID:          actorID,
		PreviousAssignee: previous,
	}
}

type TicketStatusChangedEvent struct {
	events.BaseEvent
	TicketRef
	ActorID   uint   `json:"actor_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

func NewTicketStatusChangedEvent(t *Ticket, actorID uint, oldStatus string) TicketStatusChangedEvent {
	return TicketStatusChangedEvent{
		BaseEvent: events.NewBaseEvent(EventTicketStatusChanged, t.ID()),
		TicketRef: RefOf(t),
		ActorID:   actorID,
		OldStatus: oldStatus,
		NewStatus: t.Status().String(),
	}
}

type TicketDeletedEvent struct {
	events.BaseEvent
	TicketRef
	ActorID uint `json:"actor_id"`
}

func NewTicketDeletedEvent(t *Ticket, actorID uint) TicketDeletedEvent {
	return TicketDeletedEvent{
		BaseEvent: events.NewBaseEvent(EventTicketDeleted, t.ID()),
		TicketRef: RefOf(t),
		ActorID:   actorID,
	}
}

type SLABreachedEvent struct {
	events.BaseEvent
	TicketRef
	DueAt time.Time `json:"due_at"`
}

func NewSLABreachedEvent(t *Ticket) SLABreachedEvent {
	return SLABreachedEvent{
		BaseEvent: events.NewBaseEvent(EventSLABreached, t.ID()),
		TicketRef: RefOf(t),
		DueAt:     t.SLADueAt(),
	}
}

// CommentEvent covers add, update and delete; EventType tells them apart.
type CommentEvent struct {
	events.BaseEvent
	TicketRef
	TicketID   uint `json:"ticket_id"`
	ActorID    uint `json:"actor_id"`
	IsInternal bool `json:"is_internal"`
}

func NewCommentEvent(eventType string, t *Ticket, c *Comment, actorID uint) CommentEvent {
	return CommentEvent{
		BaseEvent:  events.NewBaseEvent(eventType, c.ID()),
		TicketRef:  RefOf(t),
		TicketID:   t.ID(),
		ActorID:    actorID,
		IsInternal: c.IsInternal(),
	}
}
