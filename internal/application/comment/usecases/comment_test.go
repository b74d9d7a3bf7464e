package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/services/markdown"
)

func newAddComment(tickets *mockTicketRepository, comments *mockCommentRepository, publisher *mockPublisher) *AddCommentUseCase {
	return NewAddCommentUseCase(tickets, comments, &mockUserRepository{}, mockTxRunner{},
		markdown.NewMarkdownService(), publisher, logger.NewNopLogger())
}

func TestAddCommentUseCase_Execute_AgentReplySetsFirstResponse(t *testing.T) {
	tickets := newTicketRepo(t, vo.StatusOpen)
	comments := &mockCommentRepository{}
	publisher := &mockPublisher{}
	uc := newAddComment(tickets, comments, publisher)

	result, err := uc.Execute(context.Background(), AddCommentCommand{
		TicketID: 7, Content: "Looking into it **now**", Actor: agent,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(100), result.ID)
	assert.Contains(t, result.ContentHTML, "<strong>now</strong>")
	require.Len(t, tickets.updated, 1)
	assert.NotNil(t, tickets.updated[0].FirstResponseAt())
	require.Len(t, publisher.events, 1)
	assert.Equal(t, ticket.EventCommentAdded, publisher.events[0].GetEventType())
}

func TestAddCommentUseCase_Execute_CreatorCommentDoesNotTouchTicket(t *testing.T) {
	tickets := newTicketRepo(t, vo.StatusOpen)
	uc := newAddComment(tickets, &mockCommentRepository{}, &mockPublisher{})

	_, err := uc.Execute(context.Background(), AddCommentCommand{TicketID: 7, Content: "Any news?", Actor: creator})

	require.NoError(t, err)
	assert.Empty(t, tickets.updated)
}

func TestAddCommentUseCase_Execute_InternalNotes(t *testing.T) {
	tickets := newTicketRepo(t, vo.StatusOpen)
	uc := newAddComment(tickets, &mockCommentRepository{}, &mockPublisher{})

	_, err := uc.Execute(context.Background(), AddCommentCommand{TicketID: 7, Content: "psst", IsInternal: true, Actor: creator})
	assert.True(t, errors.IsForbiddenError(err))

	result, err := uc.Execute(context.Background(), AddCommentCommand{TicketID: 7, Content: "psst", IsInternal: true, Actor: agent})
	require.NoError(t, err)
	assert.True(t, result.IsInternal)
	assert.Empty(t, tickets.updated, "internal notes are not a first response")
}

func TestAddCommentUseCase_Execute_Rejections(t *testing.T) {
	tickets := newTicketRepo(t, vo.StatusOpen)
	uc := newAddComment(tickets, &mockCommentRepository{}, &mockPublisher{})

	_, err := uc.Execute(context.Background(), AddCommentCommand{TicketID: 7, Content: "hi", Actor: stranger})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = uc.Execute(context.Background(), AddCommentCommand{TicketID: 7, Content: "", Actor: creator})
	assert.True(t, errors.IsValidationError(err))
}

func TestAddCommentUseCase_Execute_PersistFailure(t *testing.T) {
	comments := &mockCommentRepository{createFn: func(c *ticket.Comment) error { return fmt.Errorf("db down") }}
	publisher := &mockPublisher{}
	uc := newAddComment(newTicketRepo(t, vo.StatusOpen), comments, publisher)

	_, err := uc.Execute(context.Background(), AddCommentCommand{TicketID: 7, Content: "hi", Actor: agent})

	assert.True(t, errors.HasType(err, errors.ErrorTypeInternal))
	assert.Empty(t, publisher.events)
}

func TestListCommentsUseCase_Execute_HidesInternalFromUser(t *testing.T) {
	comments := &mockCommentRepository{comments: map[uint]*ticket.Comment{
		1: newComment(t, 1, agent.UserID, false),
		2: newComment(t, 2, agent.UserID, true),
	}}
	uc := NewListCommentsUseCase(newTicketRepo(t, vo.StatusOpen), comments, &mockUserRepository{},
		markdown.NewMarkdownService(), logger.NewNopLogger())

	forUser, err := uc.Execute(context.Background(), ListCommentsQuery{TicketID: 7, Actor: creator})
	require.NoError(t, err)
	require.Len(t, forUser, 1)
	assert.Contains(t, forUser[0].ContentHTML, "<em>turning it off</em>")

	forAgent, err := uc.Execute(context.Background(), ListCommentsQuery{TicketID: 7, Actor: agent})
	require.NoError(t, err)
	assert.Len(t, forAgent, 2)
}

func TestUpdateCommentUseCase_Execute(t *testing.T) {
	tests := []struct {
		name     string
		authorID uint
		internal bool
		actorID  uint
		wantErr  func(error) bool
	}{
		{name: "author edits", authorID: creator.UserID, actorID: creator.UserID},
		{name: "admin edits", authorID: creator.UserID, actorID: admin.UserID},
		{name: "agent cannot edit others", authorID: creator.UserID, actorID: agent.UserID, wantErr: errors.IsForbiddenError},
		{name: "user cannot see internal", authorID: agent.UserID, internal: true, actorID: creator.UserID, wantErr: errors.IsNotFoundError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comments := &mockCommentRepository{comments: map[uint]*ticket.Comment{
				3: newComment(t, 3, tt.authorID, tt.internal),
			}}
			publisher := &mockPublisher{}
			uc := NewUpdateCommentUseCase(newTicketRepo(t, vo.StatusOpen), comments, &mockUserRepository{},
				markdown.NewMarkdownService(), publisher, logger.NewNopLogger())

			actor := creator
			switch tt.actorID {
			case admin.UserID:
				actor = admin
			case agent.UserID:
				actor = agent
			}
			result, err := uc.Execute(context.Background(), UpdateCommentCommand{CommentID: 3, Content: "edited", Actor: actor})

			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error %v", err)
				assert.Empty(t, comments.updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "edited", result.Content)
			assert.Len(t, comments.updated, 1)
			require.Len(t, publisher.events, 1)
			assert.Equal(t, ticket.EventCommentUpdated, publisher.events[0].GetEventType())
		})
	}
}

func TestDeleteCommentUseCase_Execute(t *testing.T) {
	comments := &mockCommentRepository{comments: map[uint]*ticket.Comment{
		3: newComment(t, 3, creator.UserID, false),
	}}
	publisher := &mockPublisher{}
	uc := NewDeleteCommentUseCase(newTicketRepo(t, vo.StatusOpen), comments, publisher, logger.NewNopLogger())

	err := uc.Execute(context.Background(), DeleteCommentCommand{CommentID: 3, Actor: stranger})
	assert.True(t, errors.IsNotFoundError(err), "stranger cannot see the ticket")

	err = uc.Execute(context.Background(), DeleteCommentCommand{CommentID: 3, Actor: creator})
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, comments.deleted)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, ticket.EventCommentDeleted, publisher.events[0].GetEventType())

	err = uc.Execute(context.Background(), DeleteCommentCommand{CommentID: 4, Actor: admin})
	assert.True(t, errors.IsNotFoundError(err))
}
