package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/application/notification/usecases"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/utils"
)

type NotificationHandler struct {
	service notificationService
	logger  logger.Interface
}

func NewNotificationHandler(service notificationService, logger logger.Interface) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger,
	}
}

// UpdatePreferencesRequest only changes the fields that are present.
type UpdatePreferencesRequest struct {
	EmailEnabled     *bool `json:"email_enabled"`
	InAppEnabled     *bool `json:"in_app_enabled"`
	OnTicketCreated  *bool `json:"on_ticket_created"`
	OnTicketAssigned *bool `json:"on_ticket_assigned"`
	OnStatusChanged  *bool `json:"on_status_changed"`
	OnCommentAdded   *bool `json:"on_comment_added"`
	OnSLABreached    *bool `json:"on_sla_breached"`
}

// ListNotifications godoc
// @Summary List notifications
// @Security Bearer
// @Tags notifications
// @Produce json
// @Param unread_only query bool false "Only unread notifications"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	unreadOnly, err := utils.ParseOptionalBoolQuery(c, "unread_only")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)
	result, err := h.service.ListNotifications(c.Request.Context(), usecases.ListNotificationsQuery{
		UserID:     actor.UserID,
		UnreadOnly: unreadOnly != nil && *unreadOnly,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetUnreadCount godoc
// @Summary Unread notification count
// @Security Bearer
// @Tags notifications
// @Produce json
// @Success 200 {object} utils.APIResponse{data=dto.UnreadCountDTO}
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	result, err := h.service.GetUnreadCount(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// MarkAsRead godoc
// @Summary Mark notification as read
// @Security Bearer
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} utils.APIResponse{data=dto.NotificationDTO}
// @Failure 404 {object} utils.APIResponse "Notification not found"
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	notificationID, err := utils.ParseUintParam(c, "id", "notification")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.MarkNotificationAsRead(c.Request.Context(), notificationID, actor.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// MarkAllAsRead godoc
// @Summary Mark all notifications as read
// @Security Bearer
// @Tags notifications
// @Produce json
// @Success 200 {object} utils.APIResponse{data=dto.MarkAllReadDTO}
// @Router /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	result, err := h.service.MarkAllNotificationsAsRead(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteNotification godoc
// @Summary Delete notification
// @Security Bearer
// @Tags notifications
// @Param id path int true "Notification ID"
// @Success 204 "Notification deleted"
// @Failure 404 {object} utils.APIResponse "Notification not found"
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	notificationID, err := utils.ParseUintParam(c, "id", "notification")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.DeleteNotification(c.Request.Context(), notificationID, actor.UserID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GetPreferences godoc
// @Summary Notification preferences
// @Security Bearer
// @Tags notifications
// @Produce json
// @Success 200 {object} utils.APIResponse{data=dto.PreferencesDTO}
// @Router /notifications/preferences [get]
func (h *NotificationHandler) GetPreferences(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	result, err := h.service.GetPreferences(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdatePreferences godoc
// @Summary Update notification preferences
// @Security Bearer
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body UpdatePreferencesRequest true "Changed preferences"
// @Success 200 {object} utils.APIResponse{data=dto.PreferencesDTO}
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Router /notifications/preferences [put]
func (h *NotificationHandler) UpdatePreferences(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	var req UpdatePreferencesRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update preferences", "user_id", actor.UserID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.UpdatePreferences(c.Request.Context(), usecases.UpdatePreferencesCommand{
		UserID:           actor.UserID,
		EmailEnabled:     req.EmailEnabled,
		InAppEnabled:     req.InAppEnabled,
		OnTicketCreated:  req.OnTicketCreated,
		OnTicketAssigned: req.OnTicketAssigned,
		OnStatusChanged:  req.OnStatusChanged,
		OnCommentAdded:   req.OnCommentAdded,
		OnSLABreached:    req.OnSLABreached,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Preferences updated successfully", result)
}
