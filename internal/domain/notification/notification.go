package notification

import (
	"fmt"
	"time"
	"unicode/utf8"

	vo "github.com/helpdeskhq/helpdesk/internal/domain/notification/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
)

type Notification struct {
	id               uint
	userID           uint
	notificationType vo.NotificationType
	title            string
	message          string
	ticketID         *uint
	isRead           bool
	readAt           *time.Time
	createdAt        time.Time
}

func NewNotification(
	userID uint,
	notificationType vo.NotificationType,
	title string,
	message string,
	ticketID *uint,
) (*Notification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type: %s", notificationType)
	}
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if utf8.RuneCountInString(message) > 1000 {
		return nil, fmt.Errorf("message exceeds maximum length of 1000 characters")
	}

	return &Notification{
		userID:           userID,
		notificationType: notificationType,
		title:            title,
		message:          message,
		ticketID:         ticketID,
		createdAt:        biztime.NowUTC(),
	}, nil
}

func ReconstructNotification(
	id, userID uint,
	notificationType vo.NotificationType,
	title, message string,
	ticketID *uint,
	isRead bool,
	readAt *time.Time,
	createdAt time.Time,
) (*Notification, error) {
	if id == 0 {
		return nil, fmt.Errorf("notification ID cannot be zero")
	}
	return &Notification{
		id:               id,
		userID:           userID,
		notificationType: notificationType,
		title:            title,
		message:          message,
		ticketID:         ticketID,
		isRead:           isRead,
		readAt:           readAt,
		createdAt:        createdAt,
	}, nil
}

func (n *Notification) ID() uint                   { return n.id }
func (n *Notification) UserID() uint               { return n.userID }
func (n *Notification) Type() vo.NotificationType  { return n.notificationType }
func (n *Notification) Title() string              { return n.title }
func (n *Notification) Message() string            { return n.message }
func (n *Notification) TicketID() *uint            { return n.ticketID }
func (n *Notification) IsRead() bool               { return n.isRead }
func (n *Notification) ReadAt() *time.Time         { return n.readAt }
func (n *Notification) CreatedAt() time.Time       { return n.createdAt }
func (n *Notification) BelongsTo(userID uint) bool { return n.userID == userID }

func (n *Notification) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	n.id = id
	return nil
}

// MarkAsRead is idempotent and keeps the first read time.
func (n *Notification) MarkAsRead() {
	if n.isRead {
		return
	}
	now := biztime.NowUTC()
	n.isRead = true
	n.readAt = &now
}
