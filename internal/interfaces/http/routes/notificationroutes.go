package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/infrastructure/permission"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/handlers"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler  *handlers.NotificationHandler
	DashboardHandler     *handlers.DashboardHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	APILimit             gin.HandlerFunc
}

// SetupNotificationRoutes registers the caller's notifications and the
// dashboard.
func SetupNotificationRoutes(api *gin.RouterGroup, config *NotificationRouteConfig) {
	perm := config.PermissionMiddleware.RequirePermission
	read := perm(permission.ResourceNotification, permission.ActionRead)
	update := perm(permission.ResourceNotification, permission.ActionUpdate)

	notifications := api.Group("/notifications")
	notifications.Use(config.AuthMiddleware.RequireAuth(), config.APILimit)
	{
		notifications.GET("", read, config.NotificationHandler.ListNotifications)
		notifications.GET("/unread-count", read, config.NotificationHandler.GetUnreadCount)
		notifications.PATCH("/read-all", update, config.NotificationHandler.MarkAllAsRead)
		notifications.GET("/preferences", read, config.NotificationHandler.GetPreferences)
		notifications.PUT("/preferences", update, config.NotificationHandler.UpdatePreferences)
		notifications.PATCH("/:id/read", update, config.NotificationHandler.MarkAsRead)
		notifications.DELETE("/:id",
			perm(permission.ResourceNotification, permission.ActionDelete),
			config.NotificationHandler.DeleteNotification)
	}

	dashboard := api.Group("/dashboard")
	dashboard.Use(
		config.AuthMiddleware.RequireAuth(),
		config.APILimit,
		perm(permission.ResourceDashboard, permission.ActionRead),
	)
	{
		dashboard.GET("/stats", config.DashboardHandler.GetStats)
		dashboard.GET("/recent", config.DashboardHandler.GetRecentTickets)
	}
}
