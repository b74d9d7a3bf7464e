package valueobjects

import "fmt"

type NotificationType string

const (
	TypeTicketCreated  NotificationType = "TICKET_CREATED"
	TypeTicketAssigned NotificationType = "TICKET_ASSIGNED"
	TypeStatusChanged  NotificationType = "STATUS_CHANGED"
	TypeCommentAdded   NotificationType = "COMMENT_ADDED"
	TypeSLABreached    NotificationType = "SLA_BREACHED"
)

var validNotificationTypes = map[NotificationType]bool{
	TypeTicketCreated:  true,
	TypeTicketAssigned: true,
	TypeStatusChanged:  true,
	TypeCommentAdded:   true,
	TypeSLABreached:    true,
}

func (t NotificationType) String() string {
	return string(t)
}

func (t NotificationType) IsValid() bool {
	return validNotificationTypes[t]
}

func NewNotificationType(s string) (NotificationType, error) {
	t := NotificationType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid notification type: %s", s)
	}
	return t, nil
}
