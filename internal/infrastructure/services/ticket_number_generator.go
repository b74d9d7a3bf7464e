package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
)

type lastNumberReader interface {
	LastNumberWithPrefix(ctx context.Context, prefix string) (string, error)
}

// TicketNumberGenerator issues HD-YYYYMMDD-NNNN numbers. The database is
// the source of truth; the in-process counter only keeps concurrent callers
// in this process from drawing the same sequence before either inserts.
type TicketNumberGenerator struct {
	repo   lastNumberReader
	mu     sync.Mutex
	prefix string
	issued int
	now    func() time.Time
}

func NewTicketNumberGenerator(repo lastNumberReader) *TicketNumberGenerator {
	return &TicketNumberGenerator{
		repo: repo,
		now:  biztime.NowUTC,
	}
}

func (g *TicketNumberGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	prefix := ticket.NumberDayPrefix(now)
	if prefix != g.prefix {
		g.prefix = prefix
		g.issued = 0
	}

	last, err := g.repo.LastNumberWithPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("failed to get last ticket number: %w", err)
	}

	seq := 0
	if last != "" {
		if seq, err = ticket.ParseNumberSequence(last); err != nil {
			return "", err
		}
	}
	if g.issued > seq {
		seq = g.issued
	}
	seq++
	g.issued = seq

	return ticket.FormatNumber(now, seq), nil
}
