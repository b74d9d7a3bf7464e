package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/infrastructure/permission"
	attachmenthandlers "github.com/helpdeskhq/helpdesk/internal/interfaces/http/handlers/attachment"
	tickethandlers "github.com/helpdeskhq/helpdesk/internal/interfaces/http/handlers/ticket"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	CommentHandler       *tickethandlers.CommentHandler
	AttachmentHandler    *attachmenthandlers.AttachmentHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	APILimit             gin.HandlerFunc
	// UploadLimit applies to multipart uploads on top of APILimit.
	UploadLimit gin.HandlerFunc
}

// SetupTicketRoutes registers tickets plus the comment and attachment
// routes hanging off them. Ownership checks happen in the use cases.
func SetupTicketRoutes(api *gin.RouterGroup, config *TicketRouteConfig) {
	perm := config.PermissionMiddleware.RequirePermission

	tickets := api.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth(), config.APILimit)
	{
		tickets.POST("",
			perm(permission.ResourceTicket, permission.ActionCreate),
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			perm(permission.ResourceTicket, permission.ActionRead),
			config.TicketHandler.ListTickets)

		tickets.PATCH("/:id/status",
			perm(permission.ResourceTicket, permission.ActionChangeStatus),
			config.TicketHandler.ChangeStatus)
		tickets.PATCH("/:id/assign",
			perm(permission.ResourceTicket, permission.ActionAssign),
			config.TicketHandler.AssignTicket)

		tickets.GET("/:id/comments",
			perm(permission.ResourceComment, permission.ActionRead),
			config.CommentHandler.ListComments)
		tickets.POST("/:id/comments",
			perm(permission.ResourceComment, permission.ActionCreate),
			config.CommentHandler.AddComment)

		tickets.GET("/:id/attachments",
			perm(permission.ResourceAttachment, permission.ActionRead),
			config.AttachmentHandler.ListAttachments)
		tickets.POST("/:id/attachments",
			perm(permission.ResourceAttachment, permission.ActionCreate),
			config.UploadLimit,
			config.AttachmentHandler.UploadAttachments)

		tickets.GET("/:id",
			perm(permission.ResourceTicket, permission.ActionRead),
			config.TicketHandler.GetTicket)
		tickets.PUT("/:id",
			perm(permission.ResourceTicket, permission.ActionUpdate),
			config.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id",
			perm(permission.ResourceTicket, permission.ActionDelete),
			config.TicketHandler.DeleteTicket)
	}

	comments := api.Group("/comments")
	comments.Use(config.AuthMiddleware.RequireAuth(), config.APILimit)
	{
		comments.PUT("/:id",
			perm(permission.ResourceComment, permission.ActionUpdate),
			config.CommentHandler.UpdateComment)
		comments.DELETE("/:id",
			perm(permission.ResourceComment, permission.ActionDelete),
			config.CommentHandler.DeleteComment)
	}

	attachments := api.Group("/attachments")
	attachments.Use(config.AuthMiddleware.RequireAuth(), config.APILimit)
	{
		read := perm(permission.ResourceAttachment, permission.ActionRead)
		attachments.GET("/:id/download", read, config.AttachmentHandler.Download)
		attachments.GET("/:id/preview", read, config.AttachmentHandler.Preview)
		attachments.GET("/:id/thumbnail", read, config.AttachmentHandler.Thumbnail)
		attachments.GET("/:id", read, config.AttachmentHandler.GetAttachment)
		attachments.DELETE("/:id",
			perm(permission.ResourceAttachment, permission.ActionDelete),
			config.AttachmentHandler.DeleteAttachment)
	}
}
