package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/handlers"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	ProfileHandler *handlers.ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
	// AuthLimit guards the credential endpoints, APILimit everything else.
	AuthLimit gin.HandlerFunc
	APILimit  gin.HandlerFunc
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", cfg.AuthLimit, cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthLimit, cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthLimit, cfg.AuthHandler.RefreshToken)

		authed := auth.Group("")
		authed.Use(cfg.AuthMiddleware.RequireAuth(), cfg.APILimit)
		{
			authed.POST("/logout", cfg.AuthHandler.Logout)
			authed.GET("/me", cfg.ProfileHandler.GetMe)
			authed.PUT("/me", cfg.ProfileHandler.UpdateMe)
			authed.PUT("/password", cfg.ProfileHandler.ChangePassword)
		}
	}
}
