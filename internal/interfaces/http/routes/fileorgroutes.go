package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/infrastructure/permission"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/handlers/fileorg"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/middleware"
)

type FileOrgRouteConfig struct {
	Handler              *fileorg.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	APILimit             gin.HandlerFunc
}

// SetupFileOrgRoutes registers categories, tags and the organized
// attachment listing.
func SetupFileOrgRoutes(api *gin.RouterGroup, config *FileOrgRouteConfig) {
	perm := config.PermissionMiddleware.RequirePermission
	read := perm(permission.ResourceFileOrg, permission.ActionRead)
	update := perm(permission.ResourceFileOrg, permission.ActionUpdate)
	manage := perm(permission.ResourceFileOrg, permission.ActionManage)

	org := api.Group("/file-organization")
	org.Use(config.AuthMiddleware.RequireAuth(), config.APILimit)
	{
		org.GET("/categories", read, config.Handler.ListCategories)
		org.POST("/categories", manage, config.Handler.CreateCategory)
		org.PUT("/categories/:id", manage, config.Handler.UpdateCategory)
		org.DELETE("/categories/:id", manage, config.Handler.DeleteCategory)

		org.GET("/tags", read, config.Handler.ListTags)
		org.POST("/tags", manage, config.Handler.CreateTag)
		org.DELETE("/tags/:id", manage, config.Handler.DeleteTag)

		org.GET("/attachments", read, config.Handler.ListAttachments)
		org.PUT("/attachments/:id/category", update, config.Handler.SetAttachmentCategory)
		org.PUT("/attachments/:id/tags", update, config.Handler.SetAttachmentTags)
	}
}
