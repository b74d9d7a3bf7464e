package http

import (
	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/handlers"
	attachmentHandlers "github.com/helpdeskhq/helpdesk/internal/interfaces/http/handlers/attachment"
	fileorgHandlers "github.com/helpdeskhq/helpdesk/internal/interfaces/http/handlers/fileorg"
	ticketHandlers "github.com/helpdeskhq/helpdesk/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	// User & Auth
	authHandler    *handlers.AuthHandler
	profileHandler *handlers.ProfileHandler
	userHandler    *handlers.UserHandler

	// Tickets
	ticketHandler     *ticketHandlers.TicketHandler
	commentHandler    *ticketHandlers.CommentHandler
	attachmentHandler *attachmentHandlers.AttachmentHandler
	fileOrgHandler    *fileorgHandlers.Handler

	// Notifications, dashboard and audit
	notificationHandler *handlers.NotificationHandler
	dashboardHandler    *handlers.DashboardHandler
	auditLogHandler     *handlers.AuditLogHandler
}

// ============================================================
// Section 5: Handlers
// ============================================================

func (c *Container) initHandlers() error {
	log := c.log
	u := c.ucs

	c.hdlrs = &allHandlers{
		authHandler:    handlers.NewAuthHandler(u.registerUC, u.loginUC, u.refreshTokenUC, u.logoutUC, log),
		profileHandler: handlers.NewProfileHandler(c.userService, log),
		userHandler:    handlers.NewUserHandler(c.userService, log),

		ticketHandler: ticketHandlers.NewTicketHandler(
			u.createTicketUC,
			u.getTicketUC,
			u.listTicketsUC,
			u.updateTicketUC,
			u.changeStatusUC,
			u.assignTicketUC,
			u.deleteTicketUC,
			log,
		),
		commentHandler: ticketHandlers.NewCommentHandler(u.addCommentUC, u.listCommentsUC, u.updateCommentUC, u.deleteCommentUC, log),
		attachmentHandler: attachmentHandlers.NewAttachmentHandler(
			u.uploadAttachmentsUC,
			u.listAttachmentsUC,
			u.getAttachmentUC,
			u.streamAttachmentUC,
			u.deleteAttachmentUC,
			c.cfg.Upload.MaxFileSize,
			c.cfg.Upload.MaxFiles,
			log,
		),
		fileOrgHandler: fileorgHandlers.NewHandler(
			u.listCategoriesUC,
			u.createCategoryUC,
			u.updateCategoryUC,
			u.deleteCategoryUC,
			u.listTagsUC,
			u.createTagUC,
			u.deleteTagUC,
			u.setAttachmentCategoryUC,
			u.setAttachmentTagsUC,
			u.listOrganizedFilesUC,
			log,
		),

		notificationHandler: handlers.NewNotificationHandler(c.notificationService, log),
		dashboardHandler:    handlers.NewDashboardHandler(u.getStatsUC, u.getRecentTicketsUC, log),
		auditLogHandler:     handlers.NewAuditLogHandler(u.listAuditLogsUC, log),
	}

	return nil
}
