package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/services/markdown"
)

func strPtr(s string) *string { return &s }

func TestUpdateTicketUseCase_Execute_CreatorUpdatesOpenTicket(t *testing.T) {
	tk := newTestTicket(t, 7, vo.StatusOpen, nil)
	repo := &mockTicketRepository{GetByIDFunc: byID(tk)}
	publisher := &mockPublisher{}
	uc := NewUpdateTicketUseCase(repo, markdown.NewMarkdownService(), publisher, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID: 7,
		Title:    strPtr("Printer offline on floor 3"),
		Priority: strPtr("URGENT"),
		Actor:    creator,
	})

	require.NoError(t, err)
	assert.Equal(t, "Printer offline on floor 3", result.Title)
	assert.Equal(t, "URGENT", result.Priority)
	assert.Equal(t, tk.CreatedAt().Add(2*time.Hour), result.SLADueAt)
	require.Len(t, repo.updated, 1)
	require.Len(t, publisher.events, 1)
	evt, ok := publisher.events[0].(ticket.TicketUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, []string{"title", "priority"}, evt.Fields)
}

func TestUpdateTicketUseCase_Execute_NoChangesSkipsWrite(t *testing.T) {
	tk := newTestTicket(t, 7, vo.StatusOpen, nil)
	repo := &mockTicketRepository{GetByIDFunc: byID(tk)}
	publisher := &mockPublisher{}
	uc := NewUpdateTicketUseCase(repo, markdown.NewMarkdownService(), publisher, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID: 7, Title: strPtr(tk.Title()), Actor: agent,
	})

	require.NoError(t, err)
	assert.Empty(t, repo.updated)
	assert.Empty(t, publisher.types())
}

func TestUpdateTicketUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		status  vo.TicketStatus
		cmd     UpdateTicketCommand
		checkFn func(error) bool
	}{
		{
			name:    "creator cannot edit closed ticket",
			status:  vo.StatusClosed,
			cmd:     UpdateTicketCommand{TicketID: 7, Title: strPtr("x"), Actor: creator},
			checkFn: func(err error) bool { return errors.HasType(err, errors.ErrorTypeBadRequest) },
		},
		{
			name:    "other user cannot see ticket",
			status:  vo.StatusOpen,
			cmd:     UpdateTicketCommand{TicketID: 7, Title: strPtr("x"), Actor: stranger},
			checkFn: errors.IsNotFoundError,
		},
		{
			name:    "empty update",
			status:  vo.StatusOpen,
			cmd:     UpdateTicketCommand{TicketID: 7, Actor: creator},
			checkFn: errors.IsValidationError,
		},
		{
			name:    "invalid priority",
			status:  vo.StatusOpen,
			cmd:     UpdateTicketCommand{TicketID: 7, Priority: strPtr("SOON"), Actor: agent},
			checkFn: errors.IsValidationError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newTestTicket(t, 7, tt.status, nil)
			repo := &mockTicketRepository{GetByIDFunc: byID(tk)}
			uc := NewUpdateTicketUseCase(repo, markdown.NewMarkdownService(), &mockPublisher{}, logger.NewNopLogger())

			_, err := uc.Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.True(t, tt.checkFn(err), "unexpected error %v", err)
			assert.Empty(t, repo.updated)
		})
	}
}

func TestUpdateTicketUseCase_Execute_AgentEditsClosedTicket(t *testing.T) {
	tk := newTestTicket(t, 7, vo.StatusClosed, nil)
	repo := &mockTicketRepository{GetByIDFunc: byID(tk)}
	uc := NewUpdateTicketUseCase(repo, markdown.NewMarkdownService(), &mockPublisher{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID: 7, Description: strPtr("Root cause: toner"), Actor: agent,
	})

	require.NoError(t, err)
	assert.Len(t, repo.updated, 1)
}

func TestUpdateTicketUseCase_Execute_VersionConflictPassesThrough(t *testing.T) {
	tk := newTestTicket(t, 7, vo.StatusOpen, nil)
	repo := &mockTicketRepository{
		GetByIDFunc: byID(tk),
		UpdateFunc: func(ctx context.Context, t *ticket.Ticket) error {
			return errors.NewConflictError("ticket was modified concurrently")
		},
	}
	uc := NewUpdateTicketUseCase(repo, markdown.NewMarkdownService(), &mockPublisher{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), UpdateTicketCommand{TicketID: 7, Title: strPtr("New"), Actor: agent})

	assert.True(t, errors.IsConflictError(err))
}
