package user

import "github.com/helpdeskhq/helpdesk/internal/domain/shared/events"

const (
	EventUserRegistered    = "user.registered"
	EventUserLoggedIn      = "user.logged_in"
	EventUserRoleChanged   = "user.role_changed"
	EventUserStatusChanged = "user.status_changed"
)

type UserEvent struct {
	events.BaseEvent
	ActorID   uint   `json:"actor_id"`
	Email     string `json:"email"`
	OldValue  string `json:"old_value,omitempty"`
	NewValue  string `json:"new_value,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

func NewUserEvent(eventType string, u *User, actorID uint) UserEvent {
	return UserEvent{
		BaseEvent: events.NewBaseEvent(eventType, u.ID()),
		ActorID:   actorID,
		Email:     u.Email().String(),
	}
}
