package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

func TestChangeStatusUseCase_Execute_AllowedTransitions(t *testing.T) {
	tests := []struct {
		name  string
		from  vo.TicketStatus
		to    string
		actor authorization.Actor
	}{
		{"agent starts work", vo.StatusOpen, "IN_PROGRESS", agent},
		{"agent resolves", vo.StatusInProgress, "resolved", agent},
		{"creator closes resolved", vo.StatusResolved, "CLOSED", creator},
		{"creator reopens resolved", vo.StatusResolved, "OPEN", creator},
		{"agent reopens closed", vo.StatusClosed, "OPEN", agent},
		{"admin reopens closed", vo.StatusClosed, "OPEN", admin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newTestTicket(t, 7, tt.from, nil)
			repo := &mockTicketRepository{GetByIDFunc: byID(tk)}
			publisher := &mockPublisher{}
			uc := NewChangeStatusUseCase(repo, publisher, logger.NewNopLogger())

			result, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 7, NewStatus: tt.to, Actor: tt.actor})

			require.NoError(t, err)
			next, _ := vo.NewTicketStatus(tt.to)
			assert.Equal(t, next.String(), result.Status)
			assert.Len(t, repo.updated, 1)
			require.Len(t, publisher.events, 1)
			evt := publisher.events[0].(ticket.TicketStatusChangedEvent)
			assert.Equal(t, tt.from.String(), evt.OldStatus)
			assert.Equal(t, next.String(), evt.NewStatus)
		})
	}
}

func TestChangeStatusUseCase_Execute_RejectsInvalidTransition(t *testing.T) {
	tk := newTestTicket(t, 7, vo.StatusOpen, nil)
	repo := &mockTicketRepository{GetByIDFunc: byID(tk)}
	uc := NewChangeStatusUseCase(repo, &mockPublisher{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 7, NewStatus: "CLOSED", Actor: admin})

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeInvalidStatusTransition, appErr.Type)
	assert.Equal(t, 400, appErr.Code)
	assert.Empty(t, repo.updated)
}

func TestChangeStatusUseCase_Execute_SameStatusRejected(t *testing.T) {
	tk := newTestTicket(t, 7, vo.StatusInProgress, nil)
	uc := NewChangeStatusUseCase(&mockTicketRepository{GetByIDFunc: byID(tk)}, &mockPublisher{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 7, NewStatus: "IN_PROGRESS", Actor: agent})

	assert.True(t, errors.HasType(err, errors.ErrorTypeInvalidStatusTransition))
}

func TestChangeStatusUseCase_Execute_UserCannotReopenClosed(t *testing.T) {
	tk := newTestTicket(t, 7, vo.StatusClosed, nil)
	repo := &mockTicketRepository{GetByIDFunc: byID(tk)}
	uc := NewChangeStatusUseCase(repo, &mockPublisher{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 7, NewStatus: "OPEN", Actor: creator})

	assert.True(t, errors.IsForbiddenError(err))
	assert.Equal(t, vo.StatusClosed, tk.Status())
}

func TestChangeStatusUseCase_Execute_UnknownStatus(t *testing.T) {
	uc := NewChangeStatusUseCase(&mockTicketRepository{}, &mockPublisher{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 7, NewStatus: "ARCHIVED", Actor: admin})

	assert.True(t, errors.IsValidationError(err))
}

func TestChangeStatusUseCase_Execute_StrangerGetsNotFound(t *testing.T) {
	tk := newTestTicket(t, 7, vo.StatusResolved, nil)
	uc := NewChangeStatusUseCase(&mockTicketRepository{GetByIDFunc: byID(tk)}, &mockPublisher{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ChangeStatusCommand{TicketID: 7, NewStatus: "CLOSED", Actor: stranger})

	assert.True(t, errors.IsNotFoundError(err))
}
