package usecases

import (
	"context"
	"fmt"

	ticketusecases "github.com/helpdeskhq/helpdesk/internal/application/ticket/usecases"
	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

// LoadVisibleAttachment returns the attachment when actor can see its
// ticket. Anything else is reported as not found.
func LoadVisibleAttachment(
	ctx context.Context,
	attachmentRepo attachment.Repository,
	ticketRepo ticket.TicketRepository,
	id uint,
	actor authorization.Actor,
	log logger.Interface,
) (*attachment.Attachment, error) {
	if id == 0 {
		return nil, errors.NewValidationError("attachment ID is required")
	}

	a, err := attachmentRepo.GetByID(ctx, id)
	if err != nil {
		log.Errorw("failed to get attachment", "attachment_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get attachment")
	}
	notFound := errors.NewNotFoundError(fmt.Sprintf("attachment %d not found", id))
	if a == nil {
		return nil, notFound
	}

	if _, err := ticketusecases.LoadVisibleTicket(ctx, ticketRepo, a.TicketID(), actor, log); err != nil {
		if errors.IsNotFoundError(err) {
			return nil, notFound
		}
		return nil, err
	}
	return a, nil
}
