package http

import (
	attachmentServices "github.com/helpdeskhq/helpdesk/internal/application/attachment/services"
	attachmentUsecases "github.com/helpdeskhq/helpdesk/internal/application/attachment/usecases"
	auditUsecases "github.com/helpdeskhq/helpdesk/internal/application/audit/usecases"
	commentUsecases "github.com/helpdeskhq/helpdesk/internal/application/comment/usecases"
	dashboardUsecases "github.com/helpdeskhq/helpdesk/internal/application/dashboard/usecases"
	fileorgUsecases "github.com/helpdeskhq/helpdesk/internal/application/fileorganization/usecases"
	ticketUsecases "github.com/helpdeskhq/helpdesk/internal/application/ticket/usecases"
	userUsecases "github.com/helpdeskhq/helpdesk/internal/application/user/usecases"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/imaging"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/services"
)

// allUseCases holds every use case the handlers and background jobs call.
type allUseCases struct {
	// Auth
	registerUC     *userUsecases.RegisterUseCase
	loginUC        *userUsecases.LoginUseCase
	refreshTokenUC *userUsecases.RefreshTokenUseCase
	logoutUC       *userUsecases.LogoutUseCase

	// Tickets
	createTicketUC        *ticketUsecases.CreateTicketUseCase
	getTicketUC           *ticketUsecases.GetTicketUseCase
	listTicketsUC         *ticketUsecases.ListTicketsUseCase
	updateTicketUC        *ticketUsecases.UpdateTicketUseCase
	changeStatusUC        *ticketUsecases.ChangeStatusUseCase
	assignTicketUC        *ticketUsecases.AssignTicketUseCase
	deleteTicketUC        *ticketUsecases.DeleteTicketUseCase
	checkOverdueTicketsUC *ticketUsecases.CheckOverdueTicketsUseCase

	// Comments
	addCommentUC    *commentUsecases.AddCommentUseCase
	listCommentsUC  *commentUsecases.ListCommentsUseCase
	updateCommentUC *commentUsecases.UpdateCommentUseCase
	deleteCommentUC *commentUsecases.DeleteCommentUseCase

	// Attachments
	uploadAttachmentsUC *attachmentUsecases.UploadAttachmentsUseCase
	listAttachmentsUC   *attachmentUsecases.ListAttachmentsUseCase
	getAttachmentUC     *attachmentUsecases.GetAttachmentUseCase
	streamAttachmentUC  *attachmentUsecases.StreamAttachmentUseCase
	deleteAttachmentUC  *attachmentUsecases.DeleteAttachmentUseCase

	// File organization
	listCategoriesUC        *fileorgUsecases.ListCategoriesUseCase
	createCategoryUC        *fileorgUsecases.CreateCategoryUseCase
	updateCategoryUC        *fileorgUsecases.UpdateCategoryUseCase
	deleteCategoryUC        *fileorgUsecases.DeleteCategoryUseCase
	listTagsUC              *fileorgUsecases.ListTagsUseCase
	createTagUC             *fileorgUsecases.CreateTagUseCase
	deleteTagUC             *fileorgUsecases.DeleteTagUseCase
	setAttachmentCategoryUC *fileorgUsecases.SetAttachmentCategoryUseCase
	setAttachmentTagsUC     *fileorgUsecases.SetAttachmentTagsUseCase
	listOrganizedFilesUC    *fileorgUsecases.ListOrganizedAttachmentsUseCase

	// Dashboard and audit
	getStatsUC         *dashboardUsecases.GetStatsUseCase
	getRecentTicketsUC *dashboardUsecases.GetRecentTicketsUseCase
	listAuditLogsUC    *auditUsecases.ListAuditLogsUseCase
}

// ============================================================
// Section 3: Use cases and application services
// ============================================================

func (c *Container) initUseCases() error {
	cfg := c.cfg
	log := c.log
	r := c.repos
	publisher := c.dispatcher

	numberGen := services.NewTicketNumberGenerator(r.ticketRepo)

	validator := attachmentServices.NewFileValidationService(cfg.Upload.MaxFileSize, cfg.Upload.AllowedExtensions)
	processor := attachmentServices.NewFileProcessingService(c.fileStorage, imaging.NewProcessor(), cfg.Upload.ThumbnailSize, log)
	previewer := attachmentServices.NewFilePreviewService()

	c.ucs = &allUseCases{
		registerUC:     userUsecases.NewRegisterUseCase(r.userRepo, c.hasher, c.jwtSvc, publisher, log),
		loginUC:        userUsecases.NewLoginUseCase(r.userRepo, c.hasher, c.jwtSvc, publisher, log),
		refreshTokenUC: userUsecases.NewRefreshTokenUseCase(r.userRepo, c.jwtSvc, c.revoker, log),
		logoutUC:       userUsecases.NewLogoutUseCase(c.jwtSvc, c.revoker, log),

		createTicketUC: ticketUsecases.NewCreateTicketUseCase(r.ticketRepo, numberGen, c.markdownSvc, publisher, log),
		getTicketUC:    ticketUsecases.NewGetTicketUseCase(r.ticketRepo, r.commentRepo, r.attachmentRepo, r.userRepo, c.markdownSvc, log),
		listTicketsUC:  ticketUsecases.NewListTicketsUseCase(r.ticketRepo, r.userRepo, log),
		updateTicketUC: ticketUsecases.NewUpdateTicketUseCase(r.ticketRepo, c.markdownSvc, publisher, log),
		changeStatusUC: ticketUsecases.NewChangeStatusUseCase(r.ticketRepo, publisher, log),
		assignTicketUC: ticketUsecases.NewAssignTicketUseCase(r.ticketRepo, r.userRepo, publisher, log),
		deleteTicketUC: ticketUsecases.NewDeleteTicketUseCase(
			r.ticketRepo, r.commentRepo, r.attachmentRepo, r.notificationRepo,
			c.fileStorage, c.txManager, publisher, log,
		),
		checkOverdueTicketsUC: ticketUsecases.NewCheckOverdueTicketsUseCase(r.ticketRepo, publisher, log),

		addCommentUC:    commentUsecases.NewAddCommentUseCase(r.ticketRepo, r.commentRepo, r.userRepo, c.txManager, c.markdownSvc, publisher, log),
		listCommentsUC:  commentUsecases.NewListCommentsUseCase(r.ticketRepo, r.commentRepo, r.userRepo, c.markdownSvc, log),
		updateCommentUC: commentUsecases.NewUpdateCommentUseCase(r.ticketRepo, r.commentRepo, r.userRepo, c.markdownSvc, publisher, log),
		deleteCommentUC: commentUsecases.NewDeleteCommentUseCase(r.ticketRepo, r.commentRepo, publisher, log),

		uploadAttachmentsUC: attachmentUsecases.NewUploadAttachmentsUseCase(
			r.ticketRepo, r.attachmentRepo, validator, processor,
			c.txManager, publisher, cfg.Upload.MaxFiles, log,
		),
		listAttachmentsUC:  attachmentUsecases.NewListAttachmentsUseCase(r.ticketRepo, r.attachmentRepo, log),
		getAttachmentUC:    attachmentUsecases.NewGetAttachmentUseCase(r.ticketRepo, r.attachmentRepo, log),
		streamAttachmentUC: attachmentUsecases.NewStreamAttachmentUseCase(r.ticketRepo, r.attachmentRepo, c.fileStorage, previewer, log),
		deleteAttachmentUC: attachmentUsecases.NewDeleteAttachmentUseCase(r.ticketRepo, r.attachmentRepo, c.fileStorage, publisher, log),

		listCategoriesUC:        fileorgUsecases.NewListCategoriesUseCase(r.categoryRepo, log),
		createCategoryUC:        fileorgUsecases.NewCreateCategoryUseCase(r.categoryRepo, log),
		updateCategoryUC:        fileorgUsecases.NewUpdateCategoryUseCase(r.categoryRepo, log),
		deleteCategoryUC:        fileorgUsecases.NewDeleteCategoryUseCase(r.categoryRepo, log),
		listTagsUC:              fileorgUsecases.NewListTagsUseCase(r.tagRepo, log),
		createTagUC:             fileorgUsecases.NewCreateTagUseCase(r.tagRepo, log),
		deleteTagUC:             fileorgUsecases.NewDeleteTagUseCase(r.tagRepo, log),
		setAttachmentCategoryUC: fileorgUsecases.NewSetAttachmentCategoryUseCase(r.ticketRepo, r.attachmentRepo, r.categoryRepo, log),
		setAttachmentTagsUC:     fileorgUsecases.NewSetAttachmentTagsUseCase(r.ticketRepo, r.attachmentRepo, r.tagRepo, c.txManager, log),
		listOrganizedFilesUC:    fileorgUsecases.NewListOrganizedAttachmentsUseCase(r.attachmentRepo, log),

		getStatsUC:         dashboardUsecases.NewGetStatsUseCase(r.ticketRepo, c.cache, cfg.Cache.DashboardTTLDuration(), log),
		getRecentTicketsUC: dashboardUsecases.NewGetRecentTicketsUseCase(r.ticketRepo, r.userRepo, log),
		listAuditLogsUC:    auditUsecases.NewListAuditLogsUseCase(r.auditRepo, log),
	}

	return nil
}
