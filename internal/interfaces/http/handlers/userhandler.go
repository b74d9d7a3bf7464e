package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/application/user/usecases"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/utils"
)

type UserHandler struct {
	service userService
	logger  logger.Interface
}

func NewUserHandler(service userService, logger logger.Interface) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

type ListUsersRequest struct {
	Role      string `form:"role"`
	Search    string `form:"search" binding:"max=100"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ListUsers godoc
// @Summary List users
// @Security Bearer
// @Tags users
// @Produce json
// @Param role query string false "USER, AGENT or ADMIN"
// @Param is_active query bool false "Filter by active flag"
// @Param search query string false "Matches email or name"
// @Param sort_by query string false "id, email, name, role or created_at"
// @Param sort_order query string false "asc or desc"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 403 {object} utils.APIResponse "Forbidden - Requires admin role"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req ListUsersRequest
	if err := utils.BindQuery(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	isActive, err := utils.ParseOptionalBoolQuery(c, "is_active")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)
	result, err := h.service.ListUsers(c.Request.Context(), usecases.ListUsersQuery{
		Role:      req.Role,
		IsActive:  isActive,
		Search:    req.Search,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetUser godoc
// @Summary Get user
// @Security Bearer
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.APIResponse{data=dto.UserDTO}
// @Failure 404 {object} utils.APIResponse "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateUserRole godoc
// @Summary Change user role
// @Description Admins cannot change their own role.
// @Security Bearer
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRoleRequest true "New role"
// @Success 200 {object} utils.APIResponse{data=dto.UserDTO}
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 404 {object} utils.APIResponse "User not found"
// @Router /users/{id}/role [patch]
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateUserRoleRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update user role", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.UpdateUserRole(c.Request.Context(), usecases.UpdateUserRoleCommand{
		UserID: userID,
		Role:   req.Role,
		Actor:  actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User role updated successfully", result)
}

// SetUserActive godoc
// @Summary Activate or deactivate user
// @Description Deactivated users cannot sign in. Admins cannot deactivate themselves.
// @Security Bearer
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body SetUserActiveRequest true "Active flag"
// @Success 200 {object} utils.APIResponse{data=dto.UserDTO}
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Router /users/{id}/status [patch]
func (h *UserHandler) SetUserActive(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetUserActiveRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for set user active", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.SetUserActive(c.Request.Context(), usecases.SetUserActiveCommand{
		UserID:   userID,
		IsActive: *req.IsActive,
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User status updated successfully", result)
}

// ListAgents godoc
// @Summary List assignable agents
// @Description Active agents and admins, for the assignee picker.
// @Security Bearer
// @Tags users
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]dto.UserDTO}
// @Failure 403 {object} utils.APIResponse "Forbidden - Requires staff role"
// @Router /users/agents [get]
func (h *UserHandler) ListAgents(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	result, err := h.service.ListAgents(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
