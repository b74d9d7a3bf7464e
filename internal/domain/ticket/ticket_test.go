package ticket

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
)

func newValidTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket("Printer offline", "Third floor printer shows error 49", vo.PriorityMedium, 10)
	require.NoError(t, err)
	require.NoError(t, tk.SetID(1))
	require.NoError(t, tk.SetNumber("HD-20240311-0001"))
	return tk
}

func ticketInStatus(t *testing.T, status vo.TicketStatus) *Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ReconstructTicket(1, "HD-20240311-0001", "Title", "Desc",
		vo.PriorityHigh, status, 10, nil, now.Add(8*time.Hour),
		nil, nil, nil, nil, 3, now, now)
	require.NoError(t, err)
	return tk
}

func TestNewTicket_Defaults(t *testing.T) {
	tk := newValidTicket(t)

	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Equal(t, 1, tk.Version())
	assert.Equal(t, uint(10), tk.CreatorID())
	assert.Nil(t, tk.AssigneeID())
	assert.WithinDuration(t, tk.CreatedAt().Add(24*time.Hour), tk.SLADueAt(), time.Second)
}

func TestNewTicket_Validation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		desc    string
		pri     vo.Priority
		creator uint
		errMsg  string
	}{
		{"empty title", "", "d", vo.PriorityLow, 1, "title is required"},
		{"long title", strings.Repeat("x", 201), "d", vo.PriorityLow, 1, "title exceeds maximum length"},
		{"empty description", "t", "", vo.PriorityLow, 1, "description is required"},
		{"long description", "t", strings.Repeat("d", 5001), vo.PriorityLow, 1, "description exceeds maximum length"},
		{"bad priority", "t", "d", vo.Priority("CRITICAL"), 1, "invalid priority"},
		{"no creator", "t", "d", vo.PriorityLow, 0, "creator ID is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewTicket(tt.title, tt.desc, tt.pri, tt.creator)
			require.Error(t, err)
			assert.Nil(t, tk)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewTicket_MultibyteTitleAtLimit(t *testing.T) {
	_, err := NewTicket(strings.Repeat("é", 200), "d", vo.PriorityLow, 1)
	assert.NoError(t, err)
}

func TestChangeStatus_Lifecycle(t *testing.T) {
	tk := newValidTicket(t)

	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress, authorization.RoleAgent))
	require.NoError(t, tk.ChangeStatus(vo.StatusResolved, authorization.RoleAgent))
	assert.NotNil(t, tk.ResolvedAt())

	require.NoError(t, tk.ChangeStatus(vo.StatusClosed, authorization.RoleUser))
	assert.NotNil(t, tk.ClosedAt())

	require.NoError(t, tk.ChangeStatus(vo.StatusOpen, authorization.RoleAdmin))
	assert.Nil(t, tk.ResolvedAt())
	assert.Nil(t, tk.ClosedAt())
	assert.Equal(t, 5, tk.Version())
}

func TestChangeStatus_Rejected(t *testing.T) {
	tests := []struct {
		name string
		from vo.TicketStatus
		to   vo.TicketStatus
	}{
		{"open to resolved", vo.StatusOpen, vo.StatusResolved},
		{"open to closed", vo.StatusOpen, vo.StatusClosed},
		{"in progress to open", vo.StatusInProgress, vo.StatusOpen},
		{"in progress to closed", vo.StatusInProgress, vo.StatusClosed},
		{"closed to resolved", vo.StatusClosed, vo.StatusResolved},
		{"same status", vo.StatusOpen, vo.StatusOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := ticketInStatus(t, tt.from)

			err := tk.ChangeStatus(tt.to, authorization.RoleAdmin)

			var transitionErr *TransitionError
			require.True(t, errors.As(err, &transitionErr))
			assert.Equal(t, tt.from, transitionErr.From)
			assert.Equal(t, tt.to, transitionErr.To)
			assert.Equal(t, tt.from, tk.Status())
			assert.Equal(t, 3, tk.Version())
		})
	}
}

func TestChangeStatus_UserCannotReopenClosed(t *testing.T) {
	tk := ticketInStatus(t, vo.StatusClosed)

	err := tk.ChangeStatus(vo.StatusOpen, authorization.RoleUser)

	assert.ErrorIs(t, err, ErrReopenNotAllowed)
	assert.Equal(t, vo.StatusClosed, tk.Status())
}

func TestChangeStatus_UserCanReopenResolved(t *testing.T) {
	tk := ticketInStatus(t, vo.StatusResolved)

	require.NoError(t, tk.ChangeStatus(vo.StatusOpen, authorization.RoleUser))
	assert.Equal(t, vo.StatusOpen, tk.Status())
}

func TestChangeStatus_AgentReopensClosed(t *testing.T) {
	tk := ticketInStatus(t, vo.StatusClosed)
	require.NoError(t, tk.ChangeStatus(vo.StatusOpen, authorization.RoleAgent))
}

func TestChangePriority_RecomputesSLAFromCreation(t *testing.T) {
	tk := newValidTicket(t)

	require.NoError(t, tk.ChangePriority(vo.PriorityUrgent))

	assert.Equal(t, tk.CreatedAt().Add(2*time.Hour), tk.SLADueAt())
	assert.Equal(t, 2, tk.Version())

	require.NoError(t, tk.ChangePriority(vo.PriorityUrgent))
	assert.Equal(t, 2, tk.Version(), "unchanged priority must not bump version")
}

func TestAssignTo(t *testing.T) {
	tk := newValidTicket(t)
	agent := uint(5)

	assert.True(t, tk.AssignTo(&agent))
	assert.Equal(t, uint(5), *tk.AssigneeID())
	assert.False(t, tk.AssignTo(&agent))

	assert.True(t, tk.AssignTo(nil))
	assert.Nil(t, tk.AssigneeID())
}

func TestUpdateDetails(t *testing.T) {
	tk := newValidTicket(t)
	title := "Printer still offline"

	require.NoError(t, tk.UpdateDetails(&title, nil))
	assert.Equal(t, title, tk.Title())
	assert.Equal(t, 2, tk.Version())

	empty := ""
	assert.Error(t, tk.UpdateDetails(nil, &empty))
	assert.Equal(t, 2, tk.Version())
}

func TestRecordComment_FirstResponse(t *testing.T) {
	tk := newValidTicket(t)

	assert.False(t, tk.RecordComment(10, false), "creator comment is not a response")
	assert.False(t, tk.RecordComment(5, true), "internal note is not a response")
	assert.True(t, tk.RecordComment(5, false))
	assert.NotNil(t, tk.FirstResponseAt())
	assert.False(t, tk.RecordComment(6, false))
}

func TestOverdueAndBreach(t *testing.T) {
	tk := ticketInStatus(t, vo.StatusInProgress)
	later := tk.SLADueAt().Add(time.Minute)

	assert.False(t, tk.IsOverdue(tk.SLADueAt().Add(-time.Minute)))
	assert.True(t, tk.IsOverdue(later))
	assert.True(t, tk.MarkSLABreached(later))
	assert.False(t, tk.MarkSLABreached(later), "breach is recorded once")

	resolved := ticketInStatus(t, vo.StatusResolved)
	assert.False(t, resolved.IsOverdue(later))
}

func TestVisibilityAndEditing(t *testing.T) {
	tk := newValidTicket(t)
	creator := authorization.Actor{UserID: 10, Role: authorization.RoleUser}
	stranger := authorization.Actor{UserID: 11, Role: authorization.RoleUser}
	agent := authorization.Actor{UserID: 5, Role: authorization.RoleAgent}

	assert.True(t, tk.IsVisibleTo(creator))
	assert.False(t, tk.IsVisibleTo(stranger))
	assert.True(t, tk.IsVisibleTo(agent))

	assert.NoError(t, tk.CheckEditableBy(creator))
	assert.ErrorIs(t, tk.CheckEditableBy(stranger), ErrNotTicketOwner)

	closed := ticketInStatus(t, vo.StatusClosed)
	assert.ErrorIs(t, closed.CheckEditableBy(creator), ErrTicketClosed)
	assert.NoError(t, closed.CheckEditableBy(agent))
}

func TestReconstructTicket_Invalid(t *testing.T) {
	now := time.Now()
	_, err := ReconstructTicket(0, "HD-1", "t", "d", vo.PriorityLow, vo.StatusOpen, 1, nil, now, nil, nil, nil, nil, 1, now, now)
	assert.Error(t, err)
	_, err = ReconstructTicket(1, "HD-1", "t", "d", vo.PriorityLow, vo.TicketStatus("new"), 1, nil, now, nil, nil, nil, nil, 1, now, now)
	assert.Error(t, err)
}

func TestNumberFormatting(t *testing.T) {
	day := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "HD-20240311-", NumberDayPrefix(day))
	assert.Equal(t, "HD-20240311-0042", FormatNumber(day, 42))

	seq, err := ParseNumberSequence("HD-20240311-0042")
	require.NoError(t, err)
	assert.Equal(t, 42, seq)

	_, err = ParseNumberSequence("T-20240311-x")
	assert.Error(t, err)
}

func TestStoredVersionTracksLoadedRevision(t *testing.T) {
	tk := ticketInStatus(t, vo.StatusOpen)
	loaded := tk.Version()

	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress, authorization.RoleAgent))
	require.NoError(t, tk.ChangePriority(vo.PriorityLow))

	assert.Equal(t, loaded, tk.StoredVersion())
	assert.Equal(t, loaded+2, tk.Version())
}
