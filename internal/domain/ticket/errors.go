package ticket

import (
	"errors"
	"fmt"

	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
)

var (
	ErrReopenNotAllowed = errors.New("only agents and admins can reopen a closed ticket")
	ErrTicketClosed     = errors.New("closed tickets cannot be edited")
	ErrNotTicketOwner   = errors.New("only the creator can edit this ticket")
	ErrNotCommentAuthor = errors.New("only the author can modify this comment")
)

// TransitionError is returned for any status change the lifecycle rejects.
type TransitionError struct {
	From vo.TicketStatus
	To   vo.TicketStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}
