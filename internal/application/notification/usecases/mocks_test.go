package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/domain/notification"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/notification/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/query"
)

type mockNotificationRepository struct {
	items      map[uint]*notification.Notification
	updated    []uint
	deleted    []uint
	lastPage   query.PageFilter
	lastUnread bool
	err        error
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return m.err
}

func (m *mockNotificationRepository) GetByID(ctx context.Context, id uint) (*notification.Notification, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items[id], nil
}

func (m *mockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	m.updated = append(m.updated, n.ID())
	return m.err
}

func (m *mockNotificationRepository) Delete(ctx context.Context, id uint) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockNotificationRepository) ListByUser(ctx context.Context, userID uint, unreadOnly bool, page query.PageFilter) ([]*notification.Notification, int64, error) {
	m.lastPage = page
	m.lastUnread = unreadOnly
	if m.err != nil {
		return nil, 0, m.err
	}
	var out []*notification.Notification
	for _, n := range m.items {
		if n.UserID() == userID && (!unreadOnly || !n.IsRead()) {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockNotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for _, n := range m.items {
		if n.UserID() == userID && !n.IsRead() {
			count++
		}
	}
	return count, m.err
}

func (m *mockNotificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for _, n := range m.items {
		if n.UserID() == userID && !n.IsRead() {
			n.MarkAsRead()
			count++
		}
	}
	return count, m.err
}

func (m *mockNotificationRepository) DeleteByTicket(ctx context.Context, ticketID uint) error {
	return m.err
}

type mockPreferencesRepository struct {
	stored map[uint]*notification.Preferences
	saved  []*notification.Preferences
}

func (m *mockPreferencesRepository) Get(ctx context.Context, userID uint) (*notification.Preferences, error) {
	if p, ok := m.stored[userID]; ok {
		copied := *p
		return &copied, nil
	}
	return notification.DefaultPreferences(userID), nil
}

func (m *mockPreferencesRepository) GetMany(ctx context.Context, userIDs []uint) (map[uint]*notification.Preferences, error) {
	return m.stored, nil
}

func (m *mockPreferencesRepository) Save(ctx context.Context, p *notification.Preferences) error {
	m.saved = append(m.saved, p)
	return nil
}

func newNotificationRepo(t *testing.T) *mockNotificationRepository {
	t.Helper()
	repo := &mockNotificationRepository{items: map[uint]*notification.Notification{}}
	now := time.Now().UTC()
	for id, owner := range map[uint]uint{1: 10, 2: 10, 3: 20} {
		n, err := notification.ReconstructNotification(id, owner, vo.TypeCommentAdded, "New comment", "", nil, false, nil, now)
		require.NoError(t, err)
		repo.items[id] = n
	}
	return repo
}
