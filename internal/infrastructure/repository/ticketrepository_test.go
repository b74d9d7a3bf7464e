package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/query"
)

type seed struct {
	id       uint
	number   string
	title    string
	status   vo.TicketStatus
	priority vo.Priority
	creator  uint
	assignee *uint
	created  time.Time
	due      time.Time
	resolved *time.Time
	breached *time.Time
}

func seedTicket(t *testing.T, repo *TicketRepository, s seed) *ticket.Ticket {
	t.Helper()
	if s.title == "" {
		s.title = "Ticket " + s.number
	}
	tk, err := ticket.ReconstructTicket(
		s.id, s.number, s.title, "Something is broken", s.priority, s.status,
		s.creator, s.assignee, s.due, nil, s.resolved, nil, s.breached, 1, s.created, s.created,
	)
	require.NoError(t, err)
	// Create assigns the ID; fixtures pin theirs, so the row goes in directly.
	require.NoError(t, repo.db.Create(repo.mapper.ToModel(tk)).Error)
	return tk
}

// seedBoard: 1 overdue unassigned, 2 in progress for agent 5, 3 resolved
// today by agent 5, 4 closed urgent.
func seedBoard(t *testing.T, repo *TicketRepository) {
	resolved3 := at(11, 10)
	resolved4 := at(9, 12)
	seedTicket(t, repo, seed{id: 1, number: "HD-20240311-0001", title: "Printer offline", status: vo.StatusOpen, priority: vo.PriorityHigh, creator: 10, created: at(11, 1), due: at(11, 8)})
	seedTicket(t, repo, seed{id: 2, number: "HD-20240310-0001", title: "VPN 100% broken", status: vo.StatusInProgress, priority: vo.PriorityLow, creator: 10, assignee: uintPtr(5), created: at(10, 9), due: at(14, 0)})
	seedTicket(t, repo, seed{id: 3, number: "HD-20240310-0002", status: vo.StatusResolved, priority: vo.PriorityMedium, creator: 11, assignee: uintPtr(5), created: at(10, 10), due: at(11, 10), resolved: &resolved3})
	seedTicket(t, repo, seed{id: 4, number: "HD-20240309-0001", status: vo.StatusClosed, priority: vo.PriorityUrgent, creator: 11, assignee: uintPtr(6), created: at(9, 0), due: at(9, 2), resolved: &resolved4})
}

func TestTicketRepository_CreateAndGet(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()

	tk, err := ticket.NewTicket("Cannot log in", "The login page spins forever", vo.PriorityHigh, 10)
	require.NoError(t, err)
	require.NoError(t, tk.SetNumber("HD-20240311-0001"))

	require.NoError(t, repo.Create(ctx, tk))
	assert.NotZero(t, tk.ID())

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Cannot log in", found.Title())
	assert.Equal(t, vo.StatusOpen, found.Status())
	assert.Equal(t, 1, found.Version())
	assert.WithinDuration(t, tk.SLADueAt(), found.SLADueAt(), time.Second)

	byNumber, err := repo.GetByNumber(ctx, "HD-20240311-0001")
	require.NoError(t, err)
	assert.Equal(t, tk.ID(), byNumber.ID())

	missing, err := repo.GetByID(ctx, 999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTicketRepository_DuplicateNumber(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()

	for i, want := range []bool{false, true} {
		tk, err := ticket.NewTicket("Ticket", "Body", vo.PriorityLow, uint(i+1))
		require.NoError(t, err)
		require.NoError(t, tk.SetNumber("HD-20240311-0001"))

		err = repo.Create(ctx, tk)
		assert.Equal(t, want, errors.IsDuplicateError(err), "attempt %d: %v", i, err)
	}
}

func TestTicketRepository_Update_OptimisticLock(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	seedBoard(t, repo)

	first, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	require.True(t, first.AssignTo(uintPtr(5)))
	require.NoError(t, repo.Update(ctx, first))

	require.True(t, second.AssignTo(uintPtr(6)))
	err = repo.Update(ctx, second)
	assert.True(t, errors.HasType(err, errors.ErrorTypeConflict), "unexpected error %v", err)

	reloaded, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Version())
	require.NotNil(t, reloaded.AssigneeID())
	assert.Equal(t, uint(5), *reloaded.AssigneeID())
}

func TestTicketRepository_List(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	seedBoard(t, repo)

	ids := func(list []*ticket.Ticket) []uint {
		out := make([]uint, 0, len(list))
		for _, tk := range list {
			out = append(out, tk.ID())
		}
		return out
	}
	open := vo.StatusOpen

	tests := []struct {
		name      string
		filter    ticket.TicketFilter
		wantIDs   []uint
		wantTotal int64
	}{
		{name: "newest first", filter: ticket.TicketFilter{BaseFilter: query.NewBaseFilter()}, wantIDs: []uint{1, 3, 2, 4}, wantTotal: 4},
		{name: "status", filter: ticket.TicketFilter{BaseFilter: query.NewBaseFilter(), Status: &open}, wantIDs: []uint{1}, wantTotal: 1},
		{name: "creator", filter: ticket.TicketFilter{BaseFilter: query.NewBaseFilter(), CreatorID: uintPtr(11)}, wantIDs: []uint{3, 4}, wantTotal: 2},
		{name: "assignee", filter: ticket.TicketFilter{BaseFilter: query.NewBaseFilter(), AssigneeID: uintPtr(5)}, wantIDs: []uint{3, 2}, wantTotal: 2},
		{name: "unassigned", filter: ticket.TicketFilter{BaseFilter: query.NewBaseFilter(), Unassigned: true}, wantIDs: []uint{1}, wantTotal: 1},
		{name: "search is case insensitive", filter: ticket.TicketFilter{BaseFilter: query.NewBaseFilter(), Search: "PRINTER"}, wantIDs: []uint{1}, wantTotal: 1},
		{name: "search escapes wildcards", filter: ticket.TicketFilter{BaseFilter: query.NewBaseFilter(), Search: "100%"}, wantIDs: []uint{2}, wantTotal: 1},
		{name: "search by number", filter: ticket.TicketFilter{BaseFilter: query.NewBaseFilter(), Search: "20240309"}, wantIDs: []uint{4}, wantTotal: 1},
		{name: "priority rank", filter: ticket.TicketFilter{BaseFilter: query.NewBaseFilter(query.WithSort("priority", "desc"))}, wantIDs: []uint{4, 1, 3, 2}, wantTotal: 4},
		{name: "unknown sort falls back", filter: ticket.TicketFilter{BaseFilter: query.NewBaseFilter(query.WithSort("1; DROP TABLE tickets", "asc"))}, wantIDs: []uint{4, 2, 3, 1}, wantTotal: 4},
		{name: "paged", filter: ticket.TicketFilter{BaseFilter: query.NewBaseFilter(query.WithPage(2, 3))}, wantIDs: []uint{4}, wantTotal: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, total, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantIDs, ids(list))
		})
	}
}

func TestTicketRepository_ListOverdue(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	seedBoard(t, repo)
	breached := at(11, 9)
	seedTicket(t, repo, seed{id: 5, number: "HD-20240311-0002", status: vo.StatusOpen, priority: vo.PriorityUrgent, creator: 10, created: at(11, 2), due: at(11, 4), breached: &breached})

	overdue, err := repo.ListOverdue(ctx, at(11, 12), 50)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, uint(1), overdue[0].ID())

	none, err := repo.ListOverdue(ctx, at(11, 7), 50)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTicketRepository_LastNumberWithPrefix(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	seedBoard(t, repo)

	last, err := repo.LastNumberWithPrefix(ctx, "HD-20240310-")
	require.NoError(t, err)
	assert.Equal(t, "HD-20240310-0002", last)

	last, err = repo.LastNumberWithPrefix(ctx, "HD-20240312-")
	require.NoError(t, err)
	assert.Empty(t, last)
}

func TestTicketRepository_Stats(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	seedBoard(t, repo)

	scope := ticket.StatsScope{DayStart: at(11, 0), DayEnd: at(12, 0), Now: at(11, 12)}

	t.Run("staff", func(t *testing.T) {
		s := scope
		s.AssigneeID = uintPtr(5)
		stats, err := repo.Stats(ctx, s)
		require.NoError(t, err)

		assert.Equal(t, int64(4), stats.Total)
		assert.Equal(t, int64(1), stats.ByStatus[vo.StatusOpen])
		assert.Equal(t, int64(1), stats.ByStatus[vo.StatusClosed])
		assert.Equal(t, int64(1), stats.ByPriority[vo.PriorityUrgent])
		assert.Equal(t, int64(1), stats.AssignedToMe)
		assert.Equal(t, int64(1), stats.Unassigned)
		assert.Equal(t, int64(1), stats.Overdue)
		assert.Equal(t, int64(1), stats.CreatedToday)
		assert.Equal(t, int64(1), stats.ResolvedToday)
		assert.InDelta(t, 18.0, stats.AvgResolutionHours, 0.01)
	})

	t.Run("requester", func(t *testing.T) {
		s := scope
		s.CreatorID = uintPtr(10)
		stats, err := repo.Stats(ctx, s)
		require.NoError(t, err)

		assert.Equal(t, int64(2), stats.Total)
		assert.Zero(t, stats.AssignedToMe)
		assert.Equal(t, int64(1), stats.Overdue)
		assert.Zero(t, stats.ResolvedToday)
		assert.Zero(t, stats.AvgResolutionHours)
	})
}

func TestCommentRepository(t *testing.T) {
	repo := NewCommentRepository(setupTestDB(t))
	ctx := context.Background()

	public, err := ticket.NewComment(1, 10, "Any update?", false)
	require.NoError(t, err)
	internal, err := ticket.NewComment(1, 5, "Waiting on vendor", true)
	require.NoError(t, err)
	other, err := ticket.NewComment(2, 10, "Different ticket", false)
	require.NoError(t, err)
	for _, c := range []*ticket.Comment{public, internal, other} {
		require.NoError(t, repo.Create(ctx, c))
	}

	all, err := repo.ListByTicket(ctx, 1, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := repo.ListByTicket(ctx, 1, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, public.ID(), visible[0].ID())

	require.NoError(t, public.UpdateContent("Any update on this?"))
	require.NoError(t, repo.Update(ctx, public))
	found, err := repo.GetByID(ctx, public.ID())
	require.NoError(t, err)
	assert.Equal(t, "Any update on this?", found.Content())

	require.NoError(t, repo.DeleteByTicket(ctx, 1))
	all, err = repo.ListByTicket(ctx, 1, true)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, repo.Delete(ctx, other.ID()))
	gone, err := repo.GetByID(ctx, other.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)
}
