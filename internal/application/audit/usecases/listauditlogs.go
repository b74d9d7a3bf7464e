package usecases

import (
	"context"
	"strings"

	"github.com/helpdeskhq/helpdesk/internal/application/audit/dto"
	commondto "github.com/helpdeskhq/helpdesk/internal/application/common/dto"
	"github.com/helpdeskhq/helpdesk/internal/domain/audit"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/constants"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/query"
)

var entityTypes = map[string]bool{
	audit.EntityTicket:     true,
	audit.EntityComment:    true,
	audit.EntityAttachment: true,
	audit.EntityUser:       true,
}

type ListAuditLogsQuery struct {
	EntityType string
	EntityID   *uint
	ActorID    *uint
	Action     string
	Page       int
	PageSize   int
	Actor      authorization.Actor
}

type ListAuditLogsExecutor interface {
	Execute(ctx context.Context, q ListAuditLogsQuery) (*commondto.Page[dto.AuditLogDTO], error)
}

type ListAuditLogsUseCase struct {
	auditRepo audit.Repository
	logger    logger.Interface
}

func NewListAuditLogsUseCase(auditRepo audit.Repository, logger logger.Interface) *ListAuditLogsUseCase {
	return &ListAuditLogsUseCase{auditRepo: auditRepo, logger: logger}
}

// Execute lists audit records newest first. Admin only.
func (uc *ListAuditLogsUseCase) Execute(ctx context.Context, q ListAuditLogsQuery) (*commondto.Page[dto.AuditLogDTO], error) {
	if !q.Actor.IsAdmin() {
		return nil, errors.NewForbiddenError("only admins can read the audit log")
	}

	page := q.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	filter := audit.ListFilter{
		PageFilter: query.PageFilter{Page: page, PageSize: q.PageSize},
		EntityID:   q.EntityID,
		ActorID:    q.ActorID,
		Action:     strings.TrimSpace(q.Action),
	}
	if q.EntityType != "" {
		entityType := strings.ToLower(strings.TrimSpace(q.EntityType))
		if !entityTypes[entityType] {
			return nil, errors.NewValidationError("invalid entity type: " + q.EntityType)
		}
		filter.EntityType = entityType
	}

	logs, total, err := uc.auditRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list audit logs", "error", err)
		return nil, errors.NewInternalError("failed to list audit logs")
	}
	return commondto.NewPage(dto.ToAuditLogDTOs(logs), total, filter.Page, filter.Limit()), nil
}
