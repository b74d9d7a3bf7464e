// Package services turns ticket and comment events into in-app
// notifications and e-mails.
package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/helpdeskhq/helpdesk/internal/domain/notification"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/notification/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

// EmailMessage is a rendered ticket notification e-mail.
type EmailMessage struct {
	To            string
	RecipientName string
	Subject       string
	Title         string
	Message       string
	TicketID      *uint
}

type EmailSender interface {
	SendNotificationEmail(ctx context.Context, msg EmailMessage) error
}

// delivery is one notification before recipients are resolved.
type delivery struct {
	notificationType vo.NotificationType
	ticketID         uint
	title            string
	message          string
	recipients       []uint
	// staffOnly drops USER recipients (internal notes).
	staffOnly bool
}

type Notifier struct {
	notificationRepo notification.NotificationRepository
	prefsRepo        notification.PreferencesRepository
	userRepo         user.Repository
	mailer           EmailSender
	logger           logger.Interface
}

// NewNotifier wires the handler. mailer may be nil to disable e-mail.
func NewNotifier(
	notificationRepo notification.NotificationRepository,
	prefsRepo notification.PreferencesRepository,
	userRepo user.Repository,
	mailer EmailSender,
	logger logger.Interface,
) *Notifier {
	return &Notifier{
		notificationRepo: notificationRepo,
		prefsRepo:        prefsRepo,
		userRepo:         userRepo,
		mailer:           mailer,
		logger:           logger,
	}
}

// Subscribe registers the notifier for every event that produces a
// notification.
func (n *Notifier) Subscribe(subscriber events.EventSubscriber) error {
	for _, eventType := range []string{
		ticket.EventTicketCreated,
		ticket.EventTicketAssigned,
		ticket.EventTicketStatusChanged,
		ticket.EventCommentAdded,
		ticket.EventSLABreached,
	} {
		if err := subscriber.Subscribe(eventType, n); err != nil {
			return fmt.Errorf("failed to subscribe notifier to %s: %w", eventType, err)
		}
	}
	return nil
}

func (n *Notifier) Handle(ctx context.Context, event events.DomainEvent) error {
	d, err := n.plan(ctx, event)
	if err != nil {
		return err
	}
	if d == nil || len(d.recipients) == 0 {
		return nil
	}
	return n.deliver(ctx, d)
}

func (n *Notifier) plan(ctx context.Context, event events.DomainEvent) (*delivery, error) {
	switch e := event.(type) {
	case ticket.TicketCreatedEvent:
		recipients := participants(e.TicketRef, e.ActorID)
		if e.AssigneeID == nil {
			staff, err := n.userRepo.ListActiveStaff(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to list staff: %w", err)
			}
			for _, u := range staff {
				recipients = appendUnique(recipients, u.ID(), e.ActorID)
			}
		}
		return &delivery{
			notificationType: vo.TypeTicketCreated,
			ticketID:         e.AggregateID,
			title:            fmt.Sprintf("New ticket %s", e.Number),
			message:          fmt.Sprintf("%s (priority %s)", e.Title, e.Priority),
			recipients:       recipients,
		}, nil

	case ticket.TicketAssignedEvent:
		message := fmt.Sprintf("%s is now unassigned", e.Title)
		if e.AssigneeID != nil {
			message = fmt.Sprintf("%s has a new assignee", e.Title)
		}
		return &delivery{
			notificationType: vo.TypeTicketAssigned,
			ticketID:         e.AggregateID,
			title:            fmt.Sprintf("Ticket %s assigned", e.Number),
			message:          message,
			recipients:       participants(e.TicketRef, e.ActorID),
		}, nil

	case ticket.TicketStatusChangedEvent:
		return &delivery{
			notificationType: vo.TypeStatusChanged,
			ticketID:         e.AggregateID,
			title:            fmt.Sprintf("Ticket %s is now %s", e.Number, e.NewStatus),
			message:          fmt.Sprintf("%s moved from %s to %s", e.Title, e.OldStatus, e.NewStatus),
			recipients:       participants(e.TicketRef, e.ActorID),
		}, nil

	case ticket.CommentEvent:
		if e.EventType != ticket.EventCommentAdded {
			return nil, nil
		}
		return &delivery{
			notificationType: vo.TypeCommentAdded,
			ticketID:         e.TicketID,
			title:            fmt.Sprintf("New comment on %s", e.Number),
			message:          e.Title,
			recipients:       participants(e.TicketRef, e.ActorID),
			staffOnly:        e.IsInternal,
		}, nil

	case ticket.SLABreachedEvent:
		var recipients []uint
		if e.AssigneeID != nil {
			recipients = []uint{*e.AssigneeID}
		} else {
			staff, err := n.userRepo.ListActiveStaff(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to list staff: %w", err)
			}
			for _, u := range staff {
				recipients = appendUnique(recipients, u.ID(), 0)
			}
		}
		return &delivery{
			notificationType: vo.TypeSLABreached,
			ticketID:         e.AggregateID,
			title:            fmt.Sprintf("SLA breached on %s", e.Number),
			message:          fmt.Sprintf("%s was due at %s", e.Title, e.DueAt.UTC().Format("2006-01-02 15:04 MST")),
			recipients:       recipients,
		}, nil
	}
	return nil, nil
}

func (n *Notifier) deliver(ctx context.Context, d *delivery) error {
	users, err := n.userRepo.GetByIDs(ctx, d.recipients)
	if err != nil {
		return fmt.Errorf("failed to load recipients: %w", err)
	}
	prefs, err := n.prefsRepo.GetMany(ctx, d.recipients)
	if err != nil {
		return fmt.Errorf("failed to load notification preferences: %w", err)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].ID() < users[j].ID() })

	ticketID := d.ticketID
	var created, mailed int
	for _, u := range users {
		if !u.IsActive() || (d.staffOnly && !u.Role().IsStaff()) {
			continue
		}
		p, ok := prefs[u.ID()]
		if !ok || p == nil {
			p = notification.DefaultPreferences(u.ID())
		}

		if p.WantsInApp(d.notificationType) {
			item, err := notification.NewNotification(u.ID(), d.notificationType, truncate(d.title, 200), truncate(d.message, 1000), &ticketID)
			if err != nil {
				n.logger.Warnw("failed to build notification", "user_id", u.ID(), "error", err)
			} else if err := n.notificationRepo.Create(ctx, item); err != nil {
				n.logger.Errorw("failed to create notification", "user_id", u.ID(), "ticket_id", ticketID, "error", err)
			} else {
				created++
			}
		}

		if n.mailer != nil && p.WantsEmail(d.notificationType) {
			err := n.mailer.SendNotificationEmail(ctx, EmailMessage{
				To:            u.Email().String(),
				RecipientName: u.Name().String(),
				Subject:       d.title,
				Title:         d.title,
				Message:       d.message,
				TicketID:      &ticketID,
			})
			if err != nil {
				n.logger.Warnw("failed to send notification email", "user_id", u.ID(), "ticket_id", ticketID, "error", err)
			} else {
				mailed++
			}
		}
	}

	n.logger.Debugw("notifications delivered",
		"type", d.notificationType,
		"ticket_id", ticketID,
		"in_app", created,
		"email", mailed,
	)
	return nil
}

// participants returns creator and assignee without the actor.
func participants(ref ticket.TicketRef, actorID uint) []uint {
	recipients := appendUnique(nil, ref.CreatorID, actorID)
	if ref.AssigneeID != nil {
		recipients = appendUnique(recipients, *ref.AssigneeID, actorID)
	}
	return recipients
}

func appendUnique(ids []uint, id, exclude uint) []uint {
	if id == 0 || id == exclude {
		return ids
	}
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
