package ticket

import (
	"context"
	"time"

	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/query"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *Ticket) error
	// Update fails with a conflict when the stored version moved on.
	Update(ctx context.Context, ticket *Ticket) error
	Delete(ctx context.Context, ticketID uint) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	GetByNumber(ctx context.Context, number string) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	// ListOverdue returns active tickets past their SLA with no breach recorded.
	ListOverdue(ctx context.Context, now time.Time, limit int) ([]*Ticket, error)
	// LastNumberWithPrefix returns "" when no ticket carries the prefix.
	LastNumberWithPrefix(ctx context.Context, prefix string) (string, error)
	Stats(ctx context.Context, scope StatsScope) (*Stats, error)
}

type TicketFilter struct {
	query.BaseFilter
	Status     *vo.TicketStatus
	Priority   *vo.Priority
	CreatorID  *uint
	AssigneeID *uint
	Unassigned bool
	Search     string
}

// StatsScope narrows dashboard aggregates; CreatorID limits to one
// requester, AssigneeID adds the "assigned to me" counter.
type StatsScope struct {
	CreatorID  *uint
	AssigneeID *uint
	DayStart   time.Time
	DayEnd     time.Time
	Now        time.Time
}

type Stats struct {
	Total              int64
	ByStatus           map[vo.TicketStatus]int64
	ByPriority         map[vo.Priority]int64
	AssignedToMe       int64
	Unassigned         int64
	Overdue            int64
	CreatedToday       int64
	ResolvedToday      int64
	AvgResolutionHours float64
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	Update(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, commentID uint) error
	GetByID(ctx context.Context, commentID uint) (*Comment, error)
	ListByTicket(ctx context.Context, ticketID uint, includeInternal bool) ([]*Comment, error)
	DeleteByTicket(ctx context.Context, ticketID uint) error
}
