package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

func TestRegisterUseCase_Execute(t *testing.T) {
	repo := newUserRepo()
	publisher := &mockPublisher{}
	uc := NewRegisterUseCase(repo, fakeHasher{}, &fakeTokens{}, publisher, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), RegisterCommand{
		Email: "  Jane.Doe@Example.com ", Name: "jane   doe", Password: "secret123", IPAddress: "10.0.0.1",
	})

	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", result.User.Email)
	assert.Equal(t, "Jane Doe", result.User.Name)
	assert.Equal(t, "USER", result.User.Role)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.NotEmpty(t, result.AccessToken)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, user.EventUserRegistered, publisher.events[0].GetEventType())
	assert.Equal(t, "10.0.0.1", publisher.events[0].(user.UserEvent).IPAddress)
}

func TestRegisterUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		cmd      RegisterCommand
		wantType errors.ErrorType
	}{
		{"bad email", RegisterCommand{Email: "nope", Name: "Jane", Password: "secret123"}, errors.ErrorTypeValidation},
		{"short password", RegisterCommand{Email: "a@b.co", Name: "Jane", Password: "abc1"}, errors.ErrorTypeValidation},
		{"no digit", RegisterCommand{Email: "a@b.co", Name: "Jane", Password: "abcdefghij"}, errors.ErrorTypeValidation},
		{"taken", RegisterCommand{Email: "taken@example.com", Name: "Jane", Password: "secret123"}, errors.ErrorTypeConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newUserRepo()
			addUser(t, repo, 1, "taken@example.com", authorization.RoleUser, true)
			uc := NewRegisterUseCase(repo, fakeHasher{}, &fakeTokens{}, nil, logger.NewNopLogger())

			_, err := uc.Execute(context.Background(), tt.cmd)

			assert.True(t, errors.HasType(err, tt.wantType), "unexpected error %v", err)
		})
	}
}

func TestLoginUseCase_Execute(t *testing.T) {
	repo := newUserRepo()
	addUser(t, repo, 1, "jane@example.com", authorization.RoleAgent, true)
	addUser(t, repo, 2, "gone@example.com", authorization.RoleUser, false)
	publisher := &mockPublisher{}
	uc := NewLoginUseCase(repo, fakeHasher{}, &fakeTokens{}, publisher, logger.NewNopLogger())
	ctx := context.Background()

	result, err := uc.Execute(ctx, LoginCommand{Email: "JANE@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "AGENT", result.User.Role)
	assert.NotNil(t, result.User.LastLoginAt)
	assert.Equal(t, []uint{1}, repo.updated)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, user.EventUserLoggedIn, publisher.events[0].GetEventType())

	_, err = uc.Execute(ctx, LoginCommand{Email: "jane@example.com", Password: "wrong1234"})
	assert.True(t, errors.HasType(err, errors.ErrorTypeInvalidCredentials))

	_, err = uc.Execute(ctx, LoginCommand{Email: "nobody@example.com", Password: "secret123"})
	assert.True(t, errors.HasType(err, errors.ErrorTypeInvalidCredentials))

	_, err = uc.Execute(ctx, LoginCommand{Email: "gone@example.com", Password: "secret123"})
	assert.True(t, errors.HasType(err, errors.ErrorTypeAccountInactive))
}

func TestRefreshTokenUseCase_Execute_RotatesRefreshToken(t *testing.T) {
	repo := newUserRepo()
	addUser(t, repo, 1, "jane@example.com", authorization.RoleUser, true)
	revoker := newRevoker()
	uc := NewRefreshTokenUseCase(repo, &fakeTokens{}, revoker, logger.NewNopLogger())
	ctx := context.Background()

	result, err := uc.Execute(ctx, RefreshTokenCommand{RefreshToken: "refresh:1:r0"})
	require.NoError(t, err)
	assert.NotEqual(t, "refresh:1:r0", result.RefreshToken)
	assert.Contains(t, revoker.revoked, "r0")

	_, err = uc.Execute(ctx, RefreshTokenCommand{RefreshToken: "refresh:1:r0"})
	assert.True(t, errors.HasType(err, errors.ErrorTypeTokenInvalid), "a rotated token cannot be reused")

	_, err = uc.Execute(ctx, RefreshTokenCommand{RefreshToken: "access:1:a0"})
	assert.True(t, errors.HasType(err, errors.ErrorTypeTokenInvalid))
}

func TestRefreshTokenUseCase_Execute_ConcurrentReuseIssuesOnePair(t *testing.T) {
	repo := newUserRepo()
	addUser(t, repo, 1, "jane@example.com", authorization.RoleUser, true)
	uc := NewRefreshTokenUseCase(repo, &fakeTokens{}, newRevoker(), logger.NewNopLogger())

	const callers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		issued   int
		rejected int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), RefreshTokenCommand{RefreshToken: "refresh:1:r0"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				issued++
			} else if errors.HasType(err, errors.ErrorTypeTokenInvalid) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, issued)
	assert.Equal(t, callers-1, rejected)
}

func TestRefreshTokenUseCase_Execute_InactiveUser(t *testing.T) {
	repo := newUserRepo()
	addUser(t, repo, 1, "jane@example.com", authorization.RoleUser, false)
	uc := NewRefreshTokenUseCase(repo, &fakeTokens{}, newRevoker(), logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), RefreshTokenCommand{RefreshToken: "refresh:1:r0"})

	assert.True(t, errors.HasType(err, errors.ErrorTypeAccountInactive))
}

func TestLogoutUseCase_Execute(t *testing.T) {
	revoker := newRevoker()
	uc := NewLogoutUseCase(&fakeTokens{}, revoker, logger.NewNopLogger())
	exp := time.Now().Add(10 * time.Minute)

	err := uc.Execute(context.Background(), LogoutCommand{
		UserID: 1, AccessTokenID: "a1", AccessExpiresAt: exp, RefreshToken: "refresh:1:r1",
	})
	require.NoError(t, err)
	assert.Equal(t, exp, revoker.revoked["a1"])
	assert.Contains(t, revoker.revoked, "r1")

	err = uc.Execute(context.Background(), LogoutCommand{UserID: 1, AccessTokenID: "a2", RefreshToken: "refresh:2:r2"})
	require.NoError(t, err)
	assert.NotContains(t, revoker.revoked, "r2", "another user's refresh token is left alone")

	err = uc.Execute(context.Background(), LogoutCommand{UserID: 1})
	assert.True(t, errors.HasType(err, errors.ErrorTypeBadRequest))
}
