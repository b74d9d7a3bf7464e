package notification

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/shared/query"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	GetByID(ctx context.Context, id uint) (*Notification, error)
	Update(ctx context.Context, notification *Notification) error
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint, unreadOnly bool, page query.PageFilter) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	DeleteByTicket(ctx context.Context, ticketID uint) error
}

type PreferencesRepository interface {
	// Get returns DefaultPreferences when the user has none stored.
	Get(ctx context.Context, userID uint) (*Preferences, error)
	GetMany(ctx context.Context, userIDs []uint) (map[uint]*Preferences, error)
	Save(ctx context.Context, prefs *Preferences) error
}
