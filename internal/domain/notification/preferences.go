package notification

import (
	"time"

	vo "github.com/helpdeskhq/helpdesk/internal/domain/notification/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
)

// Preferences controls which notifications a user receives and on which
// channel. A missing row means DefaultPreferences.
type Preferences struct {
	UserID           uint
	EmailEnabled     bool
	InAppEnabled     bool
	OnTicketCreated  bool
	OnTicketAssigned bool
	OnStatusChanged  bool
	OnCommentAdded   bool
	OnSLABreached    bool
	UpdatedAt        time.Time
}

func DefaultPreferences(userID uint) *Preferences {
	return &Preferences{
		UserID:           userID,
		EmailEnabled:     true,
		InAppEnabled:     true,
		OnTicketCreated:  true,
		OnTicketAssigned: true,
		OnStatusChanged:  true,
		OnCommentAdded:   true,
		OnSLABreached:    true,
		UpdatedAt:        biztime.NowUTC(),
	}
}

// Wants reports whether the user subscribed to the type at all.
func (p *Preferences) Wants(t vo.NotificationType) bool {
	switch t {
	case vo.TypeTicketCreated:
		return p.OnTicketCreated
	case vo.TypeTicketAssigned:
		return p.OnTicketAssigned
	case vo.TypeStatusChanged:
		return p.OnStatusChanged
	case vo.TypeCommentAdded:
		return p.OnCommentAdded
	case vo.TypeSLABreached:
		return p.OnSLABreached
	}
	return false
}

func (p *Preferences) WantsInApp(t vo.NotificationType) bool {
	return p.InAppEnabled && p.Wants(t)
}

func (p *Preferences) WantsEmail(t vo.NotificationType) bool {
	return p.EmailEnabled && p.Wants(t)
}
