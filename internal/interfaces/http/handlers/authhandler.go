package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/application/user/usecases"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/constants"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/utils"
)

type AuthHandler struct {
	registerUC     registerUseCase
	loginUC        loginUseCase
	refreshTokenUC refreshTokenUseCase
	logoutUC       logoutUseCase
	logger         logger.Interface
}

func NewAuthHandler(
	registerUC registerUseCase,
	loginUC loginUseCase,
	refreshTokenUC refreshTokenUseCase,
	logoutUC logoutUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUC:     registerUC,
		loginUC:        loginUC,
		refreshTokenUC: refreshTokenUC,
		logoutUC:       logoutUC,
		logger:         logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register godoc
// @Summary Register
// @Description Create a customer account and sign in. New accounts always get the USER role.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account data"
// @Success 201 {object} utils.APIResponse{data=dto.AuthResultDTO} "Account created successfully"
// @Failure 400 {object} utils.APIResponse "Bad request"
// @Failure 409 {object} utils.APIResponse "Email already registered"
// @Failure 429 {object} utils.APIResponse "Too many requests"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterCommand{
		Email:     req.Email,
		Name:      req.Name,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Account created successfully")
}

// Login godoc
// @Summary Login
// @Description Exchange email and password for an access and refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=dto.AuthResultDTO}
// @Failure 401 {object} utils.APIResponse "Invalid credentials"
// @Failure 403 {object} utils.APIResponse "Account inactive"
// @Failure 429 {object} utils.APIResponse "Too many requests"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for login", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

// RefreshToken godoc
// @Summary Refresh tokens
// @Description Rotate a refresh token. The presented token is revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} utils.APIResponse{data=dto.AuthResultDTO}
// @Failure 401 {object} utils.APIResponse "Token expired or invalid"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for refresh token", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.refreshTokenUC.Execute(c.Request.Context(), usecases.RefreshTokenCommand{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Logout godoc
// @Summary Logout
// @Description Revoke the current access token, and the refresh token when one is sent.
// @Security Bearer
// @Tags auth
// @Accept json
// @Param request body LogoutRequest false "Refresh token to revoke"
// @Success 204 "Logged out"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	actor, ok := authorization.CurrentActor(c)
	if !ok {
		return
	}

	var req LogoutRequest
	if c.Request.ContentLength > 0 {
		if err := utils.BindJSON(c, &req); err != nil {
			h.logger.Warnw("invalid request body for logout", "error", err)
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	expiresAt, _ := c.Get(constants.ContextKeyTokenExp)
	until, _ := expiresAt.(time.Time)

	if err := h.logoutUC.Execute(c.Request.Context(), usecases.LogoutCommand{
		UserID:          actor.UserID,
		AccessTokenID:   c.GetString(constants.ContextKeyTokenID),
		AccessExpiresAt: until,
		RefreshToken:    req.RefreshToken,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
