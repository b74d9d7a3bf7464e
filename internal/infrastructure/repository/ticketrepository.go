package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	vo "github.com/helpdeskhq/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/persistence/models"
	"github.com/helpdeskhq/helpdesk/internal/shared/db"
	apperrors "github.com/helpdeskhq/helpdesk/internal/shared/errors"
)

// allowedTicketOrderByFields maps API sort names to ORDER BY expressions
// to prevent SQL injection attacks.
var allowedTicketOrderByFields = map[string]string{
	"id":         "id",
	"number":     "number",
	"title":      "title",
	"status":     "status",
	"priority":   "CASE priority WHEN 'URGENT' THEN 4 WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 ELSE 1 END",
	"sla_due_at": "sla_due_at",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

var activeStatuses = []string{vo.StatusOpen.String(), vo.StatusInProgress.String()}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

// Update writes every mutable column guarded by the version the ticket was
// loaded with.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ? AND version = ?", model.ID, t.StoredVersion()).
		Updates(map[string]any{
			"title":             model.Title,
			"description":       model.Description,
			"priority":          model.Priority,
			"status":            model.Status,
			"assignee_id":       model.AssigneeID,
			"sla_due_at":        model.SLADueAt,
			"first_response_at": model.FirstResponseAt,
			"resolved_at":       model.ResolvedAt,
			"closed_at":         model.ClosedAt,
			"sla_breached_at":   model.SLABreachedAt,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("ticket was modified concurrently, reload and retry")
	}
	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.TicketModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.Unassigned {
		query = query.Where("assignee_id IS NULL")
	} else if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := likePattern(search)
		query = query.Where(
			"LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!' OR LOWER(number) LIKE ? ESCAPE '!'",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var ticketModels []models.TicketModel
	if err := query.
		Order(filter.OrderClause(allowedTicketOrderByFields, "created_at")).
		Order("id DESC").
		Limit(filter.Limit()).
		Offset(filter.Offset()).
		Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.mapper.ToDomainList(ticketModels)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *TicketRepository) ListOverdue(ctx context.Context, now time.Time, limit int) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var ticketModels []models.TicketModel
	if err := tx.
		Where("status IN ?", activeStatuses).
		Where("sla_due_at < ?", now).
		Where("sla_breached_at IS NULL").
		Order("sla_due_at ASC").
		Limit(limit).
		Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list overdue tickets: %w", err)
	}
	return r.mapper.ToDomainList(ticketModels)
}

func (r *TicketRepository) LastNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var numbers []string
	if err := tx.Model(&models.TicketModel{}).
		Where("number LIKE ?", prefix+"%").
		Order("number DESC").
		Limit(1).
		Pluck("number", &numbers).Error; err != nil {
		return "", fmt.Errorf("failed to read last ticket number: %w", err)
	}
	if len(numbers) == 0 {
		return "", nil
	}
	return numbers[0], nil
}

type groupCount struct {
	GroupKey string
	Total    int64
}

type resolutionSpan struct {
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

func (r *TicketRepository) Stats(ctx context.Context, scope ticket.StatsScope) (*ticket.Stats, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	base := func() *gorm.DB {
		q := tx.Model(&models.TicketModel{})
		if scope.CreatorID != nil {
			q = q.Where("creator_id = ?", *scope.CreatorID)
		}
		return q
	}
	count := func(name string, q *gorm.DB, dest *int64) error {
		if err := q.Count(dest).Error; err != nil {
			return fmt.Errorf("failed to count %s tickets: %w", name, err)
		}
		return nil
	}

	stats := &ticket.Stats{
		ByStatus:   make(map[vo.TicketStatus]int64),
		ByPriority: make(map[vo.Priority]int64),
	}

	var byStatus []groupCount
	if err := base().Select("status AS group_key, COUNT(*) AS total").Group("status").Scan(&byStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to group tickets by status: %w", err)
	}
	for _, g := range byStatus {
		stats.ByStatus[vo.TicketStatus(g.GroupKey)] = g.Total
		stats.Total += g.Total
	}

	var byPriority []groupCount
	if err := base().Select("priority AS group_key, COUNT(*) AS total").Group("priority").Scan(&byPriority).Error; err != nil {
		return nil, fmt.Errorf("failed to group tickets by priority: %w", err)
	}
	for _, g := range byPriority {
		stats.ByPriority[vo.Priority(g.GroupKey)] = g.Total
	}

	if scope.AssigneeID != nil {
		if err := count("assigned", base().Where("assignee_id = ? AND status IN ?", *scope.AssigneeID, activeStatuses), &stats.AssignedToMe); err != nil {
			return nil, err
		}
	}
	if err := count("unassigned", base().Where("assignee_id IS NULL AND status IN ?", activeStatuses), &stats.Unassigned); err != nil {
		return nil, err
	}
	if err := count("overdue", base().Where("status IN ? AND sla_due_at < ?", activeStatuses, scope.Now), &stats.Overdue); err != nil {
		return nil, err
	}
	if err := count("created today", base().Where("created_at >= ? AND created_at < ?", scope.DayStart, scope.DayEnd), &stats.CreatedToday); err != nil {
		return nil, err
	}
	if err := count("resolved today", base().Where("resolved_at >= ? AND resolved_at < ?", scope.DayStart, scope.DayEnd), &stats.ResolvedToday); err != nil {
		return nil, err
	}

	var spans []resolutionSpan
	if err := base().Select("created_at, resolved_at").Where("resolved_at IS NOT NULL").Scan(&spans).Error; err != nil {
		return nil, fmt.Errorf("failed to load resolution times: %w", err)
	}
	stats.AvgResolutionHours = averageHours(spans)

	return stats, nil
}

func averageHours(spans []resolutionSpan) float64 {
	var sum float64
	var n int
	for _, s := range spans {
		if s.ResolvedAt == nil {
			continue
		}
		sum += s.ResolvedAt.Sub(s.CreatedAt).Hours()
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Max(sum/float64(n), 0)
}

// likePattern lower-cases s and escapes LIKE wildcards with '!'.
func likePattern(s string) string {
	replacer := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + replacer.Replace(strings.ToLower(s)) + "%"
}
