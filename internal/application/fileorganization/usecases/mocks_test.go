package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/domain/fileorg"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
)

var (
	owner    = authorization.Actor{UserID: 10, Role: authorization.RoleUser}
	stranger = authorization.Actor{UserID: 11, Role: authorization.RoleUser}
	agent    = authorization.Actor{UserID: 5, Role: authorization.RoleAgent}
)

type memoryCategories struct {
	items   map[uint]*fileorg.Category
	deleted []uint
	nextID  uint
}

func newMemoryCategories() *memoryCategories {
	return &memoryCategories{items: map[uint]*fileorg.Category{}, nextID: 1}
}

func (m *memoryCategories) Create(ctx context.Context, c *fileorg.Category) error {
	if err := c.SetID(m.nextID); err != nil {
		return err
	}
	m.nextID++
	m.items[c.ID()] = c
	return nil
}

func (m *memoryCategories) Update(ctx context.Context, c *fileorg.Category) error {
	m.items[c.ID()] = c
	return nil
}

func (m *memoryCategories) Delete(ctx context.Context, id uint) error {
	m.deleted = append(m.deleted, id)
	delete(m.items, id)
	return nil
}

func (m *memoryCategories) GetByID(ctx context.Context, id uint) (*fileorg.Category, error) {
	return m.items[id], nil
}

func (m *memoryCategories) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	for id, c := range m.items {
		if id != excludeID && c.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryCategories) List(ctx context.Context) ([]*fileorg.Category, error) {
	out := make([]*fileorg.Category, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, nil
}

type memoryTags struct {
	items  map[uint]*fileorg.Tag
	nextID uint
}

func newMemoryTags(names ...string) *memoryTags {
	m := &memoryTags{items: map[uint]*fileorg.Tag{}, nextID: 1}
	for _, n := range names {
		t, _ := fileorg.NewTag(n, "")
		_ = m.Create(context.Background(), t)
	}
	return m
}

func (m *memoryTags) Create(ctx context.Context, t *fileorg.Tag) error {
	if err := t.SetID(m.nextID); err != nil {
		return err
	}
	m.nextID++
	m.items[t.ID()] = t
	return nil
}

func (m *memoryTags) Delete(ctx context.Context, id uint) error {
	delete(m.items, id)
	return nil
}

func (m *memoryTags) GetByID(ctx context.Context, id uint) (*fileorg.Tag, error) {
	return m.items[id], nil
}

func (m *memoryTags) GetByNames(ctx context.Context, names []string) ([]*fileorg.Tag, error) {
	var out []*fileorg.Tag
	for _, t := range m.items {
		for _, n := range names {
			if t.Name() == n {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (m *memoryTags) List(ctx context.Context) ([]*fileorg.Tag, error) {
	out := make([]*fileorg.Tag, 0, len(m.items))
	for _, t := range m.items {
		out = append(out, t)
	}
	return out, nil
}

type stubTickets struct {
	ticket.TicketRepository
	tickets map[uint]*ticket.Ticket
}

func (s stubTickets) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return s.tickets[id], nil
}

type mockAttachments struct {
	attachment.Repository
	items         map[uint]*attachment.Attachment
	categoryCalls map[uint]*uint
	tagCalls      map[uint][]uint
	lastFilter    attachment.ListFilter
}

func (m *mockAttachments) GetByID(ctx context.Context, id uint) (*attachment.Attachment, error) {
	return m.items[id], nil
}

func (m *mockAttachments) UpdateCategory(ctx context.Context, id uint, categoryID *uint) error {
	m.categoryCalls[id] = categoryID
	return nil
}

func (m *mockAttachments) ReplaceTags(ctx context.Context, id uint, tagIDs []uint) error {
	m.tagCalls[id] = tagIDs
	return nil
}

func (m *mockAttachments) List(ctx context.Context, filter attachment.ListFilter) ([]*attachment.Attachment, int64, error) {
	m.lastFilter = filter
	out := make([]*attachment.Attachment, 0, len(m.items))
	for _, a := range m.items {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

type inlineTx struct{}

func (inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixture: ticket 1 created by owner, attachment 7 uploaded by owner on it.
func newFixture(t *testing.T) (stubTickets, *mockAttachments) {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ticket.ReconstructTicket(1, "HD-20240311-0001", "Printer offline", "It is offline.",
		vo.PriorityMedium, vo.StatusOpen, owner.UserID, nil, now.Add(24*time.Hour),
		nil, nil, nil, nil, 1, now, now)
	require.NoError(t, err)

	a, err := attachment.ReconstructAttachment(7, attachment.Params{
		TicketID: 1, UploaderID: owner.UserID, OriginalName: "log.txt", StorageKey: "2024/03/x.txt",
		MimeType: "text/plain; charset=utf-8", Size: 10,
	}, nil, nil, now)
	require.NoError(t, err)

	return stubTickets{tickets: map[uint]*ticket.Ticket{1: tk}},
		&mockAttachments{
			items:         map[uint]*attachment.Attachment{7: a},
			categoryCalls: map[uint]*uint{},
			tagCalls:      map[uint][]uint{},
		}
}

func requireType(t *testing.T, err error, errType errors.ErrorType) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.HasType(err, errType), "expected %s, got %v", errType, err)
}
