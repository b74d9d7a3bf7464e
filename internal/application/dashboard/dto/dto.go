package dto

import (
	"time"

	ticketdto "github.com/helpdeskhq/helpdesk/internal/application/ticket/dto"
)

// StatsDTO is the dashboard summary for one caller. For USER callers every
// counter is limited to their own tickets.
type StatsDTO struct {
	Total              int64            `json:"total"`
	ByStatus           map[string]int64 `json:"by_status"`
	ByPriority         map[string]int64 `json:"by_priority"`
	MyOpen             int64            `json:"my_open"`
	AssignedToMe       int64            `json:"assigned_to_me"`
	Unassigned         int64            `json:"unassigned"`
	Overdue            int64            `json:"overdue"`
	CreatedToday       int64            `json:"created_today"`
	ResolvedToday      int64            `json:"resolved_today"`
	AvgResolutionHours float64          `json:"avg_resolution_hours"`
	GeneratedAt        time.Time        `json:"generated_at"`
}

type RecentTicketsDTO struct {
	Tickets []ticketdto.TicketListItemDTO `json:"tickets"`
}
