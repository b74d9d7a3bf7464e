package usecases

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/user/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
)

type mockUserRepository struct {
	users     map[uint]*user.User
	updated   []uint
	lastQuery user.ListFilter
	createErr error
}

func newUserRepo() *mockUserRepository {
	return &mockUserRepository{users: map[uint]*user.User{}}
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if err := u.SetID(uint(len(m.users) + 100)); err != nil {
		return err
	}
	m.users[u.ID()] = u
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	m.updated = append(m.updated, u.ID())
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email().String() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := m.GetByEmail(ctx, email)
	return u != nil, nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	m.lastQuery = filter
	var out []*user.User
	for _, u := range m.users {
		if filter.Role == nil || u.Role() == *filter.Role {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockUserRepository) ListActiveStaff(ctx context.Context) ([]*user.User, error) {
	var out []*user.User
	for _, u := range m.users {
		if u.IsAssignable() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) CountByRole(ctx context.Context, role authorization.UserRole) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role() == role {
			n++
		}
	}
	return n, nil
}

// fakeHasher stores "hashed:<password>".
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

// fakeTokens encodes "<type>:<user>:<jti>" and never expires.
type fakeTokens struct {
	issued int
}

func (f *fakeTokens) Generate(userID uint, role authorization.UserRole) (*TokenPair, error) {
	f.issued++
	return &TokenPair{
		AccessToken:  fmt.Sprintf("access:%d:a%d", userID, f.issued),
		RefreshToken: fmt.Sprintf("refresh:%d:r%d", userID, f.issued),
		ExpiresIn:    900,
	}, nil
}

func (f *fakeTokens) Verify(token string, expected TokenType) (*TokenClaims, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 || TokenType(parts[0]) != expected {
		return nil, errors.NewTokenInvalidError(string(expected) + " token")
	}
	var id uint
	if _, err := fmt.Sscanf(parts[1], "%d", &id); err != nil {
		return nil, errors.NewTokenInvalidError(string(expected) + " token")
	}
	return &TokenClaims{UserID: id, TokenID: parts[2], Type: expected, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type memoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newRevoker() *memoryRevoker {
	return &memoryRevoker{revoked: map[string]time.Time{}}
}

func (m *memoryRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = until
	return nil
}

func (m *memoryRevoker) RevokeOnce(ctx context.Context, tokenID string, until time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.revoked[tokenID]; ok {
		return false, nil
	}
	m.revoked[tokenID] = until
	return true, nil
}

func (m *memoryRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenID]
	return ok, nil
}

type mockPublisher struct {
	events []events.DomainEvent
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	m.events = append(m.events, event)
	return nil
}

func addUser(t *testing.T, repo *mockUserRepository, id uint, email string, role authorization.UserRole, active bool) *user.User {
	t.Helper()
	e, err := vo.NewEmail(email)
	require.NoError(t, err)
	n, err := vo.NewName("jane doe")
	require.NoError(t, err)
	now := time.Now().UTC()
	u, err := user.ReconstructUser(id, e, n, "hashed:secret123", role, active, nil, now, now)
	require.NoError(t, err)
	repo.users[id] = u
	return u
}
