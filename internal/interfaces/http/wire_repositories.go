package http

import (
	"gorm.io/gorm"

	"github.com/helpdeskhq/helpdesk/internal/infrastructure/repository"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	userRepo         *repository.UserRepository
	ticketRepo       *repository.TicketRepository
	commentRepo      *repository.CommentRepository
	attachmentRepo   *repository.AttachmentRepository
	categoryRepo     *repository.CategoryRepository
	tagRepo          *repository.TagRepository
	notificationRepo *repository.NotificationRepository
	preferencesRepo  *repository.PreferencesRepository
	auditRepo        *repository.AuditLogRepository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:         repository.NewUserRepository(db, log),
		ticketRepo:       repository.NewTicketRepository(db),
		commentRepo:      repository.NewCommentRepository(db),
		attachmentRepo:   repository.NewAttachmentRepository(db),
		categoryRepo:     repository.NewCategoryRepository(db),
		tagRepo:          repository.NewTagRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		preferencesRepo:  repository.NewPreferencesRepository(db),
		auditRepo:        repository.NewAuditLogRepository(db),
	}
}
