package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/application/user/usecases"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/utils"
)

type ProfileHandler struct {
	service profileService
	logger  logger.Interface
}

func NewProfileHandler(service profileService, logger logger.Interface) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger,
	}
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// GetMe godoc
// @Summary Current user
// @Security Bearer
// @Tags auth
// @Produce json
// @Success 200 {object} utils.APIResponse{data=dto.UserDTO}
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /auth/me [get]
func (h *ProfileHandler) GetMe(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	result, err := h.service.GetCurrentUser(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateMe godoc
// @Summary Update profile
// @Description Only the display name can be changed here.
// @Security Bearer
// @Tags auth
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile data"
// @Success 200 {object} utils.APIResponse{data=dto.UserDTO}
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Router /auth/me [put]
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update profile", "user_id", actor.UserID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.UpdateProfile(c.Request.Context(), usecases.UpdateProfileCommand{
		UserID: actor.UserID,
		Name:   req.Name,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", result)
}

// ChangePassword godoc
// @Summary Change password
// @Security Bearer
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 401 {object} utils.APIResponse "Old password is wrong"
// @Router /auth/password [put]
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for change password", "user_id", actor.UserID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), usecases.ChangePasswordCommand{
		UserID:      actor.UserID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password changed successfully", nil)
}
