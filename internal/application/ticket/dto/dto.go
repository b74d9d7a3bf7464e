package dto

import (
	"time"

	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
)

// UserRefDTO is the short form of a user embedded in ticket responses.
type UserRefDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type TicketDTO struct {
	ID              uint         `json:"id"`
	Number          string       `json:"number"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	DescriptionHTML string       `json:"description_html"`
	Priority        string       `json:"priority"`
	Status          string       `json:"status"`
	CreatorID       uint         `json:"creator_id"`
	Creator         *UserRefDTO  `json:"creator,omitempty"`
	AssigneeID      *uint        `json:"assignee_id"`
	Assignee        *UserRefDTO  `json:"assignee,omitempty"`
	SLADueAt        time.Time    `json:"sla_due_at"`
	IsOverdue       bool         `json:"is_overdue"`
	FirstResponseAt *time.Time   `json:"first_response_at"`
	ResolvedAt      *time.Time   `json:"resolved_at"`
	ClosedAt        *time.Time   `json:"closed_at"`
	Version         int          `json:"version"`
	AttachmentCount int64        `json:"attachment_count"`
	Comments        []CommentDTO `json:"comments"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type TicketListItemDTO struct {
	ID         uint        `json:"id"`
	Number     string      `json:"number"`
	Title      string      `json:"title"`
	Status     string      `json:"status"`
	Priority   string      `json:"priority"`
	CreatorID  uint        `json:"creator_id"`
	Creator    *UserRefDTO `json:"creator,omitempty"`
	AssigneeID *uint       `json:"assignee_id"`
	Assignee   *UserRefDTO `json:"assignee,omitempty"`
	SLADueAt   time.Time   `json:"sla_due_at"`
	IsOverdue  bool        `json:"is_overdue"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type CommentDTO struct {
	ID          uint        `json:"id"`
	TicketID    uint        `json:"ticket_id"`
	AuthorID    uint        `json:"author_id"`
	Author      *UserRefDTO `json:"author,omitempty"`
	Content     string      `json:"content"`
	ContentHTML string      `json:"content_html"`
	IsInternal  bool        `json:"is_internal"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func ToUserRefDTO(u *user.User) *UserRefDTO {
	if u == nil {
		return nil
	}
	return &UserRefDTO{
		ID:    u.ID(),
		Name:  u.Name().String(),
		Email: u.Email().String(),
		Role:  u.Role().String(),
	}
}

// UserDirectory resolves user references from a preloaded batch.
type UserDirectory map[uint]*user.User

func NewUserDirectory(users []*user.User) UserDirectory {
	dir := make(UserDirectory, len(users))
	for _, u := range users {
		dir[u.ID()] = u
	}
	return dir
}

func (d UserDirectory) Ref(id *uint) *UserRefDTO {
	if id == nil || d == nil {
		return nil
	}
	return ToUserRefDTO(d[*id])
}

// ToTicketDTO leaves DescriptionHTML, AttachmentCount and Comments for the
// caller to fill in.
func ToTicketDTO(t *ticket.Ticket, users UserDirectory, now time.Time) *TicketDTO {
	if t == nil {
		return nil
	}
	creatorID := t.CreatorID()
	return &TicketDTO{
		ID:              t.ID(),
		Number:          t.Number(),
		Title:           t.Title(),
		Description:     t.Description(),
		Priority:        t.Priority().String(),
		Status:          t.Status().String(),
		CreatorID:       creatorID,
		Creator:         users.Ref(&creatorID),
		AssigneeID:      t.AssigneeID(),
		Assignee:        users.Ref(t.AssigneeID()),
		SLADueAt:        t.SLADueAt(),
		IsOverdue:       t.IsOverdue(now),
		FirstResponseAt: t.FirstResponseAt(),
		ResolvedAt:      t.ResolvedAt(),
		ClosedAt:        t.ClosedAt(),
		Version:         t.Version(),
		Comments:        []CommentDTO{},
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
	}
}

func ToTicketListItemDTO(t *ticket.Ticket, users UserDirectory, now time.Time) TicketListItemDTO {
	creatorID := t.CreatorID()
	return TicketListItemDTO{
		ID:         t.ID(),
		Number:     t.Number(),
		Title:      t.Title(),
		Status:     t.Status().String(),
		Priority:   t.Priority().String(),
		CreatorID:  creatorID,
		Creator:    users.Ref(&creatorID),
		AssigneeID: t.AssigneeID(),
		Assignee:   users.Ref(t.AssigneeID()),
		SLADueAt:   t.SLADueAt(),
		IsOverdue:  t.IsOverdue(now),
		CreatedAt:  t.CreatedAt(),
		UpdatedAt:  t.UpdatedAt(),
	}
}

func ToTicketListItemDTOs(tickets []*ticket.Ticket, users UserDirectory, now time.Time) []TicketListItemDTO {
	items := make([]TicketListItemDTO, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, ToTicketListItemDTO(t, users, now))
	}
	return items
}

func ToCommentDTO(c *ticket.Comment, users UserDirectory, contentHTML string) CommentDTO {
	authorID := c.AuthorID()
	return CommentDTO{
		ID:          c.ID(),
		TicketID:    c.TicketID(),
		AuthorID:    authorID,
		Author:      users.Ref(&authorID),
		Content:     c.Content(),
		ContentHTML: contentHTML,
		IsInternal:  c.IsInternal(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

// ReferencedUserIDs collects creator and assignee IDs without duplicates.
func ReferencedUserIDs(tickets []*ticket.Ticket) []uint {
	seen := make(map[uint]struct{})
	ids := make([]uint, 0, len(tickets)*2)
	add := func(id uint) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, t := range tickets {
		add(t.CreatorID())
		if a := t.AssigneeID(); a != nil {
			add(*a)
		}
	}
	return ids
}
