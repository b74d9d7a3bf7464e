package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/infrastructure/permission"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/handlers"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/middleware"
)

type UserRouteConfig struct {
	UserHandler          *handlers.UserHandler
	AuditLogHandler      *handlers.AuditLogHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	APILimit             gin.HandlerFunc
}

// SetupUserRoutes registers user administration and the audit log.
func SetupUserRoutes(api *gin.RouterGroup, config *UserRouteConfig) {
	perm := config.PermissionMiddleware.RequirePermission
	manage := perm(permission.ResourceUser, permission.ActionManage)

	users := api.Group("/users")
	users.Use(config.AuthMiddleware.RequireAuth(), config.APILimit)
	{
		// /agents must be registered before /:id
		users.GET("/agents",
			perm(permission.ResourceUser, permission.ActionRead),
			config.UserHandler.ListAgents)

		users.GET("", manage, config.UserHandler.ListUsers)
		users.GET("/:id", manage, config.UserHandler.GetUser)
		users.PATCH("/:id/role", manage, config.UserHandler.UpdateUserRole)
		users.PATCH("/:id/status", manage, config.UserHandler.SetUserActive)
	}

	api.GET("/audit-logs",
		config.AuthMiddleware.RequireAuth(),
		config.APILimit,
		perm(permission.ResourceAuditLog, permission.ActionRead),
		config.AuditLogHandler.ListAuditLogs)
}
