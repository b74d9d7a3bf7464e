package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/helpdeskhq/helpdesk/internal/application/ticket/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

// LoadVisibleTicket returns the ticket when actor may see it. Tickets the
// actor may not see are reported as not found.
func LoadVisibleTicket(
	ctx context.Context,
	repo ticket.TicketRepository,
	ticketID uint,
	actor authorization.Actor,
	log logger.Interface,
) (*ticket.Ticket, error) {
	t, err := repo.GetByID(ctx, ticketID)
	if err != nil {
		log.Errorw("failed to get ticket", "ticket_id", ticketID, "error", err)
		return nil, errors.NewInternalError("failed to get ticket")
	}
	if t == nil || !t.IsVisibleTo(actor) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", ticketID))
	}
	return t, nil
}

// MapDomainError turns ticket aggregate errors into API errors.
func MapDomainError(err error) error {
	var transition *ticket.TransitionError
	switch {
	case stderrors.As(err, &transition):
		return errors.NewInvalidStatusTransitionError(transition.From.String(), transition.To.String())
	case stderrors.Is(err, ticket.ErrReopenNotAllowed),
		stderrors.Is(err, ticket.ErrNotTicketOwner),
		stderrors.Is(err, ticket.ErrNotCommentAuthor):
		return errors.NewForbiddenError(err.Error())
	case stderrors.Is(err, ticket.ErrTicketClosed):
		return errors.NewBadRequestError(err.Error())
	default:
		return errors.NewValidationError(err.Error())
	}
}

// PersistError keeps AppErrors from the repository (version conflicts) and
// hides everything else behind a generic message.
func PersistError(err error, message string) error {
	if errors.IsAppError(err) {
		return err
	}
	return errors.NewInternalError(message)
}

// LoadUserDirectory resolves user references. A lookup failure only drops the
// embedded user objects from the response.
func LoadUserDirectory(ctx context.Context, repo user.Repository, ids []uint, log logger.Interface) dto.UserDirectory {
	if len(ids) == 0 {
		return dto.UserDirectory{}
	}
	users, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		log.Warnw("failed to load referenced users", "count", len(ids), "error", err)
		return dto.UserDirectory{}
	}
	return dto.NewUserDirectory(users)
}
