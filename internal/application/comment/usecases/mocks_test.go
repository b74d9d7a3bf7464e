package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
)

var (
	creator  = authorization.Actor{UserID: 10, Role: authorization.RoleUser}
	stranger = authorization.Actor{UserID: 11, Role: authorization.RoleUser}
	agent    = authorization.Actor{UserID: 5, Role: authorization.RoleAgent}
	admin    = authorization.Actor{UserID: 1, Role: authorization.RoleAdmin}
)

// mockTicketRepository embeds the interface so only the methods the comment
// use cases call need bodies.
type mockTicketRepository struct {
	ticket.TicketRepository
	tickets map[uint]*ticket.Ticket
	updated []*ticket.Ticket
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return m.tickets[id], nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	m.updated = append(m.updated, t)
	return nil
}

type mockCommentRepository struct {
	comments map[uint]*ticket.Comment
	created  []*ticket.Comment
	updated  []*ticket.Comment
	deleted  []uint
	createFn func(c *ticket.Comment) error
}

func (m *mockCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	if m.createFn != nil {
		if err := m.createFn(c); err != nil {
			return err
		}
	}
	if err := c.SetID(uint(100 + len(m.created))); err != nil {
		return err
	}
	m.created = append(m.created, c)
	return nil
}

func (m *mockCommentRepository) Update(ctx context.Context, c *ticket.Comment) error {
	m.updated = append(m.updated, c)
	return nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, id uint) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, id uint) (*ticket.Comment, error) {
	return m.comments[id], nil
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Comment, error) {
	var out []*ticket.Comment
	for _, c := range m.comments {
		if c.TicketID() == ticketID && (includeInternal || !c.IsInternal()) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCommentRepository) DeleteByTicket(ctx context.Context, ticketID uint) error {
	return nil
}

type mockUserRepository struct {
	user.Repository
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	return nil, nil
}

type mockTxRunner struct{}

func (mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockPublisher struct {
	events []events.DomainEvent
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	m.events = append(m.events, event)
	return nil
}

func newTicketRepo(t *testing.T, status vo.TicketStatus) *mockTicketRepository {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ticket.ReconstructTicket(7, "HD-20240311-0001", "Printer offline", "No output",
		vo.PriorityMedium, status, creator.UserID, nil, now.Add(24*time.Hour),
		nil, nil, nil, nil, 1, now, now)
	require.NoError(t, err)
	return &mockTicketRepository{tickets: map[uint]*ticket.Ticket{7: tk}}
}

func newComment(t *testing.T, id, authorID uint, internal bool) *ticket.Comment {
	t.Helper()
	now := time.Now().UTC()
	c, err := ticket.ReconstructComment(id, 7, authorID, "Have you tried *turning it off*?", internal, now, now)
	require.NoError(t, err)
	return c
}
