package ticket

import (
	"fmt"
	"time"
	"unicode/utf8"

	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
)

type Ticket struct {
	id              uint
	number          string
	title           string
	description     string
	priority        vo.Priority
	status          vo.TicketStatus
	creatorID       uint
	assigneeID      *uint
	slaDueAt        time.Time
	firstResponseAt *time.Time
	resolvedAt      *time.Time
	closedAt        *time.Time
	slaBreachedAt   *time.Time
	version         int
	storedVersion   int
	createdAt       time.Time
	updatedAt       time.Time
}

func NewTicket(title, description string, priority vo.Priority, creatorID uint) (*Ticket, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := biztime.NowUTC()
	return &Ticket{
		title:       title,
		description: description,
		priority:    priority,
		status:      vo.StatusOpen,
		creatorID:   creatorID,
		slaDueAt:    slaDue(now, priority),
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructTicket rebuilds a persisted ticket without applying creation
// rules.
func ReconstructTicket(
	id uint,
	number string,
	title string,
	description string,
	priority vo.Priority,
	status vo.TicketStatus,
	creatorID uint,
	assigneeID *uint,
	slaDueAt time.Time,
	firstResponseAt *time.Time,
	resolvedAt *time.Time,
	closedAt *time.Time,
	slaBreachedAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if number == "" {
		return nil, fmt.Errorf("ticket number is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &Ticket{
		id:              id,
		number:          number,
		title:           title,
		description:     description,
		priority:        priority,
		status:          status,
		creatorID:       creatorID,
		assigneeID:      assigneeID,
		slaDueAt:        slaDueAt,
		firstResponseAt: firstResponseAt,
		resolvedAt:      resolvedAt,
		closedAt:        closedAt,
		slaBreachedAt:   slaBreachedAt,
		version:         version,
		storedVersion:   version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (t *Ticket) ID() uint                    { return t.id }
func (t *Ticket) Number() string              { return t.number }
func (t *Ticket) Title() string               { return t.title }
func (t *Ticket) Description() string         { return t.description }
func (t *Ticket) Priority() vo.Priority       { return t.priority }
func (t *Ticket) Status() vo.TicketStatus     { return t.status }
func (t *Ticket) CreatorID() uint             { return t.creatorID }
func (t *Ticket) AssigneeID() *uint           { return t.assigneeID }
func (t *Ticket) SLADueAt() time.Time         { return t.slaDueAt }
func (t *Ticket) FirstResponseAt() *time.Time { return t.firstResponseAt }
func (t *Ticket) ResolvedAt() *time.Time      { return t.resolvedAt }
func (t *Ticket) ClosedAt() *time.Time        { return t.closedAt }
func (t *Ticket) SLABreachedAt() *time.Time   { return t.slaBreachedAt }
func (t *Ticket) Version() int                { return t.version }
func (t *Ticket) CreatedAt() time.Time        { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time        { return t.updatedAt }

// StoredVersion is the version the ticket had when it was loaded; updates
// are conditional on it.
func (t *Ticket) StoredVersion() int { return t.storedVersion }

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetNumber(number string) error {
	if t.number != "" {
		return fmt.Errorf("ticket number is already set")
	}
	if number == "" {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// UpdateDetails changes title and/or description; nil leaves a field as is.
func (t *Ticket) UpdateDetails(title, description *string) error {
	if title != nil {
		if err := validateTitle(*title); err != nil {
			return err
		}
	}
	if description != nil {
		if err := validateDescription(*description); err != nil {
			return err
		}
	}

	changed := false
	if title != nil && *title != t.title {
		t.title = *title
		changed = true
	}
	if description != nil && *description != t.description {
		t.description = *description
		changed = true
	}
	if changed {
		t.touch()
	}
	return nil
}

// ChangePriority recomputes the SLA deadline from the creation time.
func (t *Ticket) ChangePriority(p vo.Priority) error {
	if !p.IsValid() {
		return fmt.Errorf("invalid priority: %s", p)
	}
	if t.priority == p {
		return nil
	}
	t.priority = p
	t.slaDueAt = slaDue(t.createdAt, p)
	t.touch()
	return nil
}

// AssignTo sets or, with nil, clears the assignee. It returns false when the
// assignee did not change.
func (t *Ticket) AssignTo(assigneeID *uint) bool {
	if sameAssignee(t.assigneeID, assigneeID) {
		return false
	}
	if assigneeID == nil {
		t.assigneeID = nil
	} else {
		id := *assigneeID
		t.assigneeID = &id
	}
	t.touch()
	return true
}

// ChangeStatus applies one lifecycle step. role gates reopening a CLOSED
// ticket, which requires AGENT or ADMIN.
func (t *Ticket) ChangeStatus(next vo.TicketStatus, role authorization.UserRole) error {
	if !next.IsValid() {
		return fmt.Errorf("invalid status: %s", next)
	}
	if !t.status.CanTransitionTo(next) {
		return &TransitionError{From: t.status, To: next}
	}
	if t.status.IsClosed() && next.IsOpen() && !role.IsStaff() {
		return ErrReopenNotAllowed
	}

	now := biztime.NowUTC()
	switch next {
	case vo.StatusResolved:
		t.resolvedAt = &now
	case vo.StatusClosed:
		t.closedAt = &now
	case vo.StatusOpen:
		t.resolvedAt = nil
		t.closedAt = nil
		t.slaBreachedAt = nil
	}
	t.status = next
	t.touch()
	return nil
}

// RecordComment marks the first response when someone other than the creator
// posts a public comment. It reports whether the ticket changed.
func (t *Ticket) RecordComment(authorID uint, isInternal bool) bool {
	if t.firstResponseAt != nil || isInternal || authorID == t.creatorID {
		return false
	}
	now := biztime.NowUTC()
	t.firstResponseAt = &now
	t.touch()
	return true
}

// IsOverdue is true for active tickets past their SLA deadline.
func (t *Ticket) IsOverdue(now time.Time) bool {
	return t.status.IsActive() && now.After(t.slaDueAt)
}

// MarkSLABreached records the breach once; later calls return false.
func (t *Ticket) MarkSLABreached(now time.Time) bool {
	if t.slaBreachedAt != nil || !t.IsOverdue(now) {
		return false
	}
	t.slaBreachedAt = &now
	t.touch()
	return true
}

// IsVisibleTo lets staff see every ticket and users only their own.
func (t *Ticket) IsVisibleTo(actor authorization.Actor) bool {
	return actor.IsStaff() || t.creatorID == actor.UserID
}

// CheckEditableBy enforces who may change title, description and priority.
func (t *Ticket) CheckEditableBy(actor authorization.Actor) error {
	if actor.IsStaff() {
		return nil
	}
	if t.creatorID != actor.UserID {
		return ErrNotTicketOwner
	}
	if t.status.IsClosed() {
		return ErrTicketClosed
	}
	return nil
}

func (t *Ticket) touch() {
	t.updatedAt = biztime.NowUTC()
	t.version++
}

func slaDue(from time.Time, p vo.Priority) time.Time {
	return from.Add(time.Duration(p.GetSLAHours()) * time.Hour)
}

func sameAssignee(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func validateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n == 0 {
		return fmt.Errorf("title is required")
	}
	if n > MaxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", MaxTitleLength)
	}
	return nil
}

func validateDescription(description string) error {
	n := utf8.RuneCountInString(description)
	if n == 0 {
		return fmt.Errorf("description is required")
	}
	if n > MaxDescriptionLength {
		return fmt.Errorf("description exceeds maximum length of %d characters", MaxDescriptionLength)
	}
	return nil
}
