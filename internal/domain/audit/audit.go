// Package audit records who did what to which entity.
package audit

import (
	"context"
	"time"

	"github.com/helpdeskhq/helpdesk/internal/shared/query"
)

const (
	EntityTicket     = "ticket"
	EntityComment    = "comment"
	EntityAttachment = "attachment"
	EntityUser       = "user"
)

// Log is an append-only record; it has no behaviour beyond its data.
type Log struct {
	ID         uint
	ActorID    *uint
	Action     string
	EntityType string
	EntityID   uint
	Details    map[string]any
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
}

type Repository interface {
	Create(ctx context.Context, log *Log) error
	List(ctx context.Context, filter ListFilter) ([]*Log, int64, error)
}

type ListFilter struct {
	query.PageFilter
	EntityType string
	EntityID   *uint
	ActorID    *uint
	Action     string
}
