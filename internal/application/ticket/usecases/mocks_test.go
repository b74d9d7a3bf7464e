package usecases

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	uservo "github.com/helpdeskhq/helpdesk/internal/domain/user/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
)

var (
	creator  = authorization.Actor{UserID: 10, Role: authorization.RoleUser}
	stranger = authorization.Actor{UserID: 11, Role: authorization.RoleUser}
	agent    = authorization.Actor{UserID: 5, Role: authorization.RoleAgent}
	admin    = authorization.Actor{UserID: 1, Role: authorization.RoleAdmin}
)

type mockTicketRepository struct {
	CreateFunc               func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc               func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc               func(ctx context.Context, ticketID uint) error
	GetByIDFunc              func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	GetByNumberFunc          func(ctx context.Context, number string) (*ticket.Ticket, error)
	ListFunc                 func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	ListOverdueFunc          func(ctx context.Context, now time.Time, limit int) ([]*ticket.Ticket, error)
	LastNumberWithPrefixFunc func(ctx context.Context, prefix string) (string, error)
	StatsFunc                func(ctx context.Context, scope ticket.StatsScope) (*ticket.Stats, error)

	updated []*ticket.Ticket
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return t.SetID(1)
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	m.updated = append(m.updated, t)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, ticketID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) ListOverdue(ctx context.Context, now time.Time, limit int) ([]*ticket.Ticket, error) {
	if m.ListOverdueFunc != nil {
		return m.ListOverdueFunc(ctx, now, limit)
	}
	return nil, nil
}

func (m *mockTicketRepository) LastNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	if m.LastNumberWithPrefixFunc != nil {
		return m.LastNumberWithPrefixFunc(ctx, prefix)
	}
	return "", nil
}

func (m *mockTicketRepository) Stats(ctx context.Context, scope ticket.StatsScope) (*ticket.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, scope)
	}
	return &ticket.Stats{}, nil
}

type mockCommentRepository struct {
	ListByTicketFunc   func(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Comment, error)
	DeleteByTicketFunc func(ctx context.Context, ticketID uint) error
}

func (m *mockCommentRepository) Create(ctx context.Context, c *ticket.Comment) error { return nil }
func (m *mockCommentRepository) Update(ctx context.Context, c *ticket.Comment) error { return nil }
func (m *mockCommentRepository) Delete(ctx context.Context, id uint) error           { return nil }

func (m *mockCommentRepository) GetByID(ctx context.Context, id uint) (*ticket.Comment, error) {
	return nil, nil
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Comment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID, includeInternal)
	}
	return nil, nil
}

func (m *mockCommentRepository) DeleteByTicket(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketFunc != nil {
		return m.DeleteByTicketFunc(ctx, ticketID)
	}
	return nil
}

type mockAttachmentRepository struct {
	ListByTicketFunc  func(ctx context.Context, ticketID uint) ([]*attachment.Attachment, error)
	CountByTicketFunc func(ctx context.Context, ticketID uint) (int64, error)
	DeleteFunc        func(ctx context.Context, id uint) error
}

func (m *mockAttachmentRepository) Create(ctx context.Context, a *attachment.Attachment) error {
	return nil
}

func (m *mockAttachmentRepository) GetByID(ctx context.Context, id uint) (*attachment.Attachment, error) {
	return nil, nil
}

func (m *mockAttachmentRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockAttachmentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*attachment.Attachment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) CountByTicket(ctx context.Context, ticketID uint) (int64, error) {
	if m.CountByTicketFunc != nil {
		return m.CountByTicketFunc(ctx, ticketID)
	}
	return 0, nil
}

func (m *mockAttachmentRepository) UpdateCategory(ctx context.Context, id uint, categoryID *uint) error {
	return nil
}

func (m *mockAttachmentRepository) ReplaceTags(ctx context.Context, id uint, tagIDs []uint) error {
	return nil
}

func (m *mockAttachmentRepository) List(ctx context.Context, filter attachment.ListFilter) ([]*attachment.Attachment, int64, error) {
	return nil, 0, nil
}

type mockUserRepository struct {
	users map[uint]*user.User
	err   error
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error { return nil }
func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users[id], nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*user.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepository) ListActiveStaff(ctx context.Context) ([]*user.User, error) {
	return nil, nil
}

func (m *mockUserRepository) CountByRole(ctx context.Context, role authorization.UserRole) (int64, error) {
	return 0, nil
}

type mockNotificationRepository struct {
	deletedTickets []uint
}

func (m *mockNotificationRepository) DeleteByTicket(ctx context.Context, ticketID uint) error {
	m.deletedTickets = append(m.deletedTickets, ticketID)
	return nil
}

type mockStorage struct {
	deleted []string
}

func (m *mockStorage) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	return io.Copy(io.Discard, r)
}

func (m *mockStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

type mockTxRunner struct {
	calls int
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.GetEventType())
	}
	return out
}

type mockNumberGenerator struct {
	numbers []string
	calls   int
}

func (m *mockNumberGenerator) Generate(ctx context.Context) (string, error) {
	n := m.numbers[m.calls%len(m.numbers)]
	m.calls++
	return n, nil
}

func newTestTicket(t *testing.T, id uint, status vo.TicketStatus, assigneeID *uint) *ticket.Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ticket.ReconstructTicket(id, "HD-20240311-0001", "Printer offline", "It **does not** print",
		vo.PriorityMedium, status, creator.UserID, assigneeID, now.Add(24*time.Hour),
		nil, nil, nil, nil, 1, now.Add(-time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)
	return tk
}

func newTestUser(t *testing.T, id uint, role authorization.UserRole, active bool) *user.User {
	t.Helper()
	email, err := uservo.NewEmail("user" + string(rune('a'+id%26)) + "@example.com")
	require.NoError(t, err)
	name, err := uservo.NewName("Test User")
	require.NoError(t, err)
	u, err := user.ReconstructUser(id, email, name, "hash", role, active, nil, time.Now(), time.Now())
	require.NoError(t, err)
	return u
}

func byID(tickets ...*ticket.Ticket) func(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return func(ctx context.Context, id uint) (*ticket.Ticket, error) {
		for _, t := range tickets {
			if t.ID() == id {
				return t, nil
			}
		}
		return nil, nil
	}
}
