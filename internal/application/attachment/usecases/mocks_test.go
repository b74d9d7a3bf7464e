package usecases

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
)

var (
	creator  = authorization.Actor{UserID: 10, Role: authorization.RoleUser}
	stranger = authorization.Actor{UserID: 11, Role: authorization.RoleUser}
	agent    = authorization.Actor{UserID: 5, Role: authorization.RoleAgent}
	admin    = authorization.Actor{UserID: 1, Role: authorization.RoleAdmin}
)

type mockTicketRepository struct {
	ticket.TicketRepository
	tickets map[uint]*ticket.Ticket
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return m.tickets[id], nil
}

func newTicketRepo(t *testing.T) *mockTicketRepository {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ticket.ReconstructTicket(7, "HD-20240311-0001", "Printer offline", "No output",
		vo.PriorityMedium, vo.StatusOpen, creator.UserID, nil, now.Add(24*time.Hour),
		nil, nil, nil, nil, 1, now, now)
	require.NoError(t, err)
	return &mockTicketRepository{tickets: map[uint]*ticket.Ticket{7: tk}}
}

type mockAttachmentRepository struct {
	attachment.Repository
	items     map[uint]*attachment.Attachment
	created   []*attachment.Attachment
	deleted   []uint
	createErr error
}

func newAttachmentRepo() *mockAttachmentRepository {
	return &mockAttachmentRepository{items: map[uint]*attachment.Attachment{}}
}

func (m *mockAttachmentRepository) Create(ctx context.Context, a *attachment.Attachment) error {
	if m.createErr != nil {
		return m.createErr
	}
	id := uint(200 + len(m.created))
	if err := a.SetID(id); err != nil {
		return err
	}
	m.items[id] = a
	m.created = append(m.created, a)
	return nil
}

func (m *mockAttachmentRepository) GetByID(ctx context.Context, id uint) (*attachment.Attachment, error) {
	return m.items[id], nil
}

func (m *mockAttachmentRepository) Delete(ctx context.Context, id uint) error {
	m.deleted = append(m.deleted, id)
	delete(m.items, id)
	return nil
}

func (m *mockAttachmentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*attachment.Attachment, error) {
	var out []*attachment.Attachment
	for _, a := range m.items {
		if a.TicketID() == ticketID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memoryStorage struct {
	files   map[string][]byte
	deleted []string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: map[string][]byte{}}
}

func (m *memoryStorage) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.files[key] = data
	return int64(len(data)), nil
}

func (m *memoryStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.files[key]
	if !ok {
		return nil, fmt.Errorf("no such key %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.files, key)
	return nil
}

type stubImages struct{}

func (stubImages) Dimensions(content []byte) (int, int, error) { return 800, 600, nil }

func (stubImages) Thumbnail(content []byte, maxSize int) ([]byte, error) {
	return []byte("thumb"), nil
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

// storeAttachment places a file and its row as if it had been uploaded.
func storeAttachment(t *testing.T, repo *mockAttachmentRepository, storage *memoryStorage, id, uploaderID uint, mime string, thumb bool) *attachment.Attachment {
	t.Helper()
	p := attachment.Params{
		TicketID: 7, UploaderID: uploaderID, OriginalName: "file", StorageKey: fmt.Sprintf("2024/03/%d", id),
		MimeType: mime, Size: 4, Checksum: "abc",
	}
	storage.files[p.StorageKey] = []byte("data")
	if thumb {
		key := p.StorageKey + "_thumb.jpg"
		p.ThumbnailKey = &key
		storage.files[key] = []byte("jpg")
	}
	a, err := attachment.ReconstructAttachment(id, p, nil, nil, time.Now())
	require.NoError(t, err)
	repo.items[id] = a
	return a
}
