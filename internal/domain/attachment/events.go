package attachment

import "github.com/helpdeskhq/helpdesk/internal/domain/shared/events"

const (
	EventAttachmentUploaded = "attachment.uploaded"
	EventAttachmentDeleted  = "attachment.deleted"
)

type AttachmentEvent struct {
	events.BaseEvent
	TicketID     uint   `json:"ticket_id"`
	ActorID      uint   `json:"actor_id"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
}

func NewAttachmentEvent(eventType string, a *Attachment, actorID uint) AttachmentEvent {
	return AttachmentEvent{
		BaseEvent:    events.NewBaseEvent(eventType, a.ID()),
		TicketID:     a.TicketID(),
		ActorID:      actorID,
		OriginalName: a.OriginalName(),
		MimeType:     a.MimeType(),
		Size:         a.Size(),
	}
}
