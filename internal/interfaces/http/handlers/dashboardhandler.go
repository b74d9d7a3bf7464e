package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/application/dashboard/usecases"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/utils"
)

// DashboardHandler serves ticket statistics scoped to the caller.
type DashboardHandler struct {
	statsUC  usecases.GetStatsExecutor
	recentUC usecases.GetRecentTicketsExecutor
	logger   logger.Interface
}

func NewDashboardHandler(
	statsUC usecases.GetStatsExecutor,
	recentUC usecases.GetRecentTicketsExecutor,
	logger logger.Interface,
) *DashboardHandler {
	return &DashboardHandler{
		statsUC:  statsUC,
		recentUC: recentUC,
		logger:   logger,
	}
}

// GetStats godoc
// @Summary Dashboard statistics
// @Description Customers see counts for their own tickets, staff see everything.
// @Security Bearer
// @Tags dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse{data=dto.StatsDTO}
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	result, err := h.statsUC.Execute(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetRecentTickets godoc
// @Summary Recent tickets
// @Security Bearer
// @Tags dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse{data=dto.RecentTicketsDTO}
// @Router /dashboard/recent [get]
func (h *DashboardHandler) GetRecentTickets(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	result, err := h.recentUC.Execute(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
