package attachment

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, a *Attachment) error
	GetByID(ctx context.Context, id uint) (*Attachment, error)
	Delete(ctx context.Context, id uint) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Attachment, error)
	CountByTicket(ctx context.Context, ticketID uint) (int64, error)
	// UpdateCategory sets or clears the category of one attachment.
	UpdateCategory(ctx context.Context, id uint, categoryID *uint) error
	// ReplaceTags links the attachment to exactly tagIDs.
	ReplaceTags(ctx context.Context, id uint, tagIDs []uint) error
	List(ctx context.Context, filter ListFilter) ([]*Attachment, int64, error)
}

// ListFilter narrows the file-organization listing. VisibleToUserID limits
// the result to attachments on tickets created by that user.
type ListFilter struct {
	query.PageFilter
	CategoryID      *uint
	Tag             string
	VisibleToUserID *uint
}
