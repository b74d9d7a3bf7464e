package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/application/user/dto"
	"github.com/helpdeskhq/helpdesk/internal/application/user/usecases"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/handlers/testutil"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/constants"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockRegisterUC struct {
	got usecases.RegisterCommand
	err error
}

func (m *mockRegisterUC) Execute(_ context.Context, cmd usecases.RegisterCommand) (*dto.AuthResultDTO, error) {
	m.got = cmd
	if m.err != nil {
		return nil, m.err
	}
	return testAuthResult(cmd.Email), nil
}

type mockLoginUC struct {
	got usecases.LoginCommand
	err error
}

func (m *mockLoginUC) Execute(_ context.Context, cmd usecases.LoginCommand) (*dto.AuthResultDTO, error) {
	m.got = cmd
	if m.err != nil {
		return nil, m.err
	}
	return testAuthResult(cmd.Email), nil
}

type mockRefreshUC struct {
	got usecases.RefreshTokenCommand
	err error
}

func (m *mockRefreshUC) Execute(_ context.Context, cmd usecases.RefreshTokenCommand) (*dto.AuthResultDTO, error) {
	m.got = cmd
	if m.err != nil {
		return nil, m.err
	}
	return testAuthResult("jane@example.com"), nil
}

type mockLogoutUC struct {
	got    usecases.LogoutCommand
	called bool
	err    error
}

func (m *mockLogoutUC) Execute(_ context.Context, cmd usecases.LogoutCommand) error {
	m.got = cmd
	m.called = true
	return m.err
}

func testAuthResult(email string) *dto.AuthResultDTO {
	return &dto.AuthResultDTO{
		User:         dto.UserDTO{ID: 1, Email: email, Name: "Jane", Role: "USER", IsActive: true},
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}
}

type authMocks struct {
	register *mockRegisterUC
	login    *mockLoginUC
	refresh  *mockRefreshUC
	logout   *mockLogoutUC
}

func newTestAuthHandler() (*AuthHandler, *authMocks) {
	m := &authMocks{
		register: &mockRegisterUC{},
		login:    &mockLoginUC{},
		refresh:  &mockRefreshUC{},
		logout:   &mockLogoutUC{},
	}
	return NewAuthHandler(m.register, m.login, m.refresh, m.logout, testutil.NewMockLogger()), m
}

// =====================================================================
// Tests
// =====================================================================

func TestAuthHandler_Register(t *testing.T) {
	h, m := newTestAuthHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/register", RegisterRequest{
		Email:    "jane@example.com",
		Name:     "Jane",
		Password: "correct-horse",
	})
	c.Request.Header.Set("User-Agent", "helpdesk-test")

	h.Register(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "jane@example.com", m.register.got.Email)
	assert.Equal(t, "helpdesk-test", m.register.got.UserAgent)
	assert.NotEmpty(t, m.register.got.IPAddress)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var result dto.AuthResultDTO
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, "access", result.AccessToken)
	assert.Equal(t, "Bearer", result.TokenType)
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing email", RegisterRequest{Name: "Jane", Password: "correct-horse"}},
		{"bad email", RegisterRequest{Email: "not-an-email", Name: "Jane", Password: "correct-horse"}},
		{"short password", RegisterRequest{Email: "jane@example.com", Name: "Jane", Password: "short"}},
		{"missing name", RegisterRequest{Email: "jane@example.com", Password: "correct-horse"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestAuthHandler()
			c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/register", tt.req)

			h.Register(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, m.register.got.Email)
		})
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	h, m := newTestAuthHandler()
	m.register.err = errors.NewConflictError("email already registered")
	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/register", RegisterRequest{
		Email:    "jane@example.com",
		Name:     "Jane",
		Password: "correct-horse",
	})

	h.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	h, m := newTestAuthHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    "jane@example.com",
		Password: "correct-horse",
	})

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "correct-horse", m.login.got.Password)
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", errors.NewInvalidCredentialsError(), http.StatusUnauthorized},
		{"inactive account", errors.NewAccountInactiveError(), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestAuthHandler()
			m.login.err = tt.err
			c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/login", LoginRequest{
				Email:    "jane@example.com",
				Password: "wrong",
			})

			h.Login(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	h, m := newTestAuthHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/refresh", RefreshTokenRequest{RefreshToken: "old-refresh"})

	h.RefreshToken(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "old-refresh", m.refresh.got.RefreshToken)
}

func TestAuthHandler_RefreshToken_Missing(t *testing.T) {
	h, _ := newTestAuthHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/refresh", map[string]string{})

	h.RefreshToken(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_RefreshToken_Expired(t *testing.T) {
	h, m := newTestAuthHandler()
	m.refresh.err = errors.NewTokenExpiredError("refresh token")
	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/refresh", RefreshTokenRequest{RefreshToken: "old-refresh"})

	h.RefreshToken(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "TOKEN_EXPIRED", resp.Error.Type)
}

func TestAuthHandler_Logout(t *testing.T) {
	h, m := newTestAuthHandler()
	exp := time.Now().Add(10 * time.Minute)
	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/logout", LogoutRequest{RefreshToken: "refresh"})
	testutil.SetAuthContext(c, 1, authorization.RoleUser)
	c.Set(constants.ContextKeyTokenExp, exp)

	h.Logout(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, uint(1), m.logout.got.UserID)
	assert.Equal(t, "test-token-id", m.logout.got.AccessTokenID)
	assert.Equal(t, exp, m.logout.got.AccessExpiresAt)
	assert.Equal(t, "refresh", m.logout.got.RefreshToken)
}

func TestAuthHandler_Logout_WithoutBody(t *testing.T) {
	h, m := newTestAuthHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/logout", nil)
	testutil.SetAuthContext(c, 1, authorization.RoleUser)

	h.Logout(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, m.logout.got.RefreshToken)
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	h, m := newTestAuthHandler()
	c, w := testutil.NewTestContext(http.MethodPost, "/api/auth/logout", nil)

	h.Logout(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, m.logout.called)
}
