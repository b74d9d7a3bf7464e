package ticket

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
)

func TestNewComment(t *testing.T) {
	tests := []struct {
		name     string
		ticketID uint
		authorID uint
		content  string
		errMsg   string
	}{
		{"valid", 1, 2, "Rebooted the spooler", ""},
		{"no ticket", 0, 2, "x", "ticket ID is required"},
		{"no author", 1, 0, "x", "author ID is required"},
		{"empty", 1, 2, "", "content cannot be empty"},
		{"too long", 1, 2, strings.Repeat("c", 5001), "exceeds maximum length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewComment(tt.ticketID, tt.authorID, tt.content, false)
			if tt.errMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.content, c.Content())
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestComment_Visibility(t *testing.T) {
	note, err := NewComment(1, 5, "customer is VIP", true)
	require.NoError(t, err)

	assert.False(t, note.IsVisibleTo(authorization.Actor{UserID: 10, Role: authorization.RoleUser}))
	assert.True(t, note.IsVisibleTo(authorization.Actor{UserID: 6, Role: authorization.RoleAgent}))
}

func TestComment_CheckModifiableBy(t *testing.T) {
	c, err := NewComment(1, 5, "hello", false)
	require.NoError(t, err)

	assert.NoError(t, c.CheckModifiableBy(authorization.Actor{UserID: 5, Role: authorization.RoleUser}))
	assert.NoError(t, c.CheckModifiableBy(authorization.Actor{UserID: 1, Role: authorization.RoleAdmin}))
	assert.ErrorIs(t, c.CheckModifiableBy(authorization.Actor{UserID: 6, Role: authorization.RoleAgent}), ErrNotCommentAuthor)
}

func TestComment_UpdateContent(t *testing.T) {
	c, err := NewComment(1, 5, "hello", false)
	require.NoError(t, err)

	require.NoError(t, c.UpdateContent("hello again"))
	assert.Equal(t, "hello again", c.Content())
	assert.Error(t, c.UpdateContent(""))
}
