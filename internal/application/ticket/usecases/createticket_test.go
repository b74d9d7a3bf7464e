package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/services/markdown"
)

func TestCreateTicketUseCase_Execute_Success(t *testing.T) {
	repo := &mockTicketRepository{}
	numbers := &mockNumberGenerator{numbers: []string{"HD-20240311-0007"}}
	publisher := &mockPublisher{}
	uc := NewCreateTicketUseCase(repo, numbers, markdown.NewMarkdownService(), publisher, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title:       "VPN drops",
		Description: "Connection drops **every** hour",
		Priority:    "high",
		Actor:       creator,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), result.ID)
	assert.Equal(t, "HD-20240311-0007", result.Number)
	assert.Equal(t, "OPEN", result.Status)
	assert.Equal(t, "HIGH", result.Priority)
	assert.Equal(t, creator.UserID, result.CreatorID)
	assert.Contains(t, result.DescriptionHTML, "<strong>every</strong>")
	assert.Equal(t, []string{ticket.EventTicketCreated}, publisher.types())
}

func TestCreateTicketUseCase_Execute_DefaultPriority(t *testing.T) {
	uc := NewCreateTicketUseCase(&mockTicketRepository{}, &mockNumberGenerator{numbers: []string{"HD-20240311-0001"}},
		markdown.NewMarkdownService(), &mockPublisher{}, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title: "Question", Description: "How do I reset my password?", Actor: creator,
	})

	require.NoError(t, err)
	assert.Equal(t, "MEDIUM", result.Priority)
}

func TestCreateTicketUseCase_Execute_RetriesOnDuplicateNumber(t *testing.T) {
	attempts := 0
	repo := &mockTicketRepository{
		CreateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			attempts++
			if attempts == 1 {
				return fmt.Errorf("UNIQUE constraint failed: tickets.number")
			}
			return tk.SetID(42)
		},
	}
	numbers := &mockNumberGenerator{numbers: []string{"HD-20240311-0001", "HD-20240311-0002"}}
	uc := NewCreateTicketUseCase(repo, numbers, markdown.NewMarkdownService(), &mockPublisher{}, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title: "Laptop", Description: "Screen flickers", Priority: "LOW", Actor: creator,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "HD-20240311-0002", result.Number)
	assert.Equal(t, uint(42), result.ID)
}

func TestCreateTicketUseCase_Execute_GivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := &mockTicketRepository{
		CreateFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			return fmt.Errorf("Duplicate entry 'HD-20240311-0001' for key 'number'")
		},
	}
	publisher := &mockPublisher{}
	uc := NewCreateTicketUseCase(repo, &mockNumberGenerator{numbers: []string{"HD-20240311-0001"}},
		markdown.NewMarkdownService(), publisher, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		Title: "Laptop", Description: "Screen flickers", Actor: creator,
	})

	assert.True(t, errors.IsConflictError(err))
	assert.Empty(t, publisher.types())
}

func TestCreateTicketUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  CreateTicketCommand
	}{
		{"empty title", CreateTicketCommand{Title: "", Description: "d", Actor: creator}},
		{"empty description", CreateTicketCommand{Title: "t", Description: "", Actor: creator}},
		{"bad priority", CreateTicketCommand{Title: "t", Description: "d", Priority: "critical", Actor: creator}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateTicketUseCase(&mockTicketRepository{}, &mockNumberGenerator{numbers: []string{"HD-20240311-0001"}},
				markdown.NewMarkdownService(), &mockPublisher{}, logger.NewNopLogger())

			_, err := uc.Execute(context.Background(), tt.cmd)

			assert.True(t, errors.IsValidationError(err), "got %v", err)
		})
	}
}
