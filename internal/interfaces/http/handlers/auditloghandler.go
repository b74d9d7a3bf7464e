package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/application/audit/usecases"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/utils"
)

type AuditLogHandler struct {
	listUC usecases.ListAuditLogsExecutor
	logger logger.Interface
}

func NewAuditLogHandler(listUC usecases.ListAuditLogsExecutor, logger logger.Interface) *AuditLogHandler {
	return &AuditLogHandler{
		listUC: listUC,
		logger: logger,
	}
}

type ListAuditLogsRequest struct {
	EntityType string `form:"entity_type"`
	Action     string `form:"action" binding:"max=50"`
}

// ListAuditLogs godoc
// @Summary List audit logs
// @Description Newest first.
// @Security Bearer
// @Tags audit
// @Produce json
// @Param entity_type query string false "ticket, comment, attachment or user"
// @Param entity_id query int false "Entity ID"
// @Param actor_id query int false "Acting user ID"
// @Param action query string false "Action name"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 403 {object} utils.APIResponse "Forbidden - Requires admin role"
// @Router /audit-logs [get]
func (h *AuditLogHandler) ListAuditLogs(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	var req ListAuditLogsRequest
	if err := utils.BindQuery(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	entityID, err := utils.ParseOptionalUintQuery(c, "entity_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	actorID, err := utils.ParseOptionalUintQuery(c, "actor_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListAuditLogsQuery{
		EntityType: req.EntityType,
		EntityID:   entityID,
		ActorID:    actorID,
		Action:     req.Action,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		Actor:      actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}
