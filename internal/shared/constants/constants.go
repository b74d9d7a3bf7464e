package constants

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Gin context keys set by the auth middleware.
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyTokenID   = "token_id"
	ContextKeyTokenExp  = "token_exp"
	ContextKeyRequestID = "request_id"

	TableUsers                   = "users"
	TableTickets                 = "tickets"
	TableComments                = "comments"
	TableAttachments             = "attachments"
	TableAttachmentTags          = "attachment_tags"
	TableNotifications           = "notifications"
	TableNotificationPreferences = "notification_preferences"
	TableFileCategories          = "file_categories"
	TableFileTags                = "file_tags"
	TableAuditLogs               = "audit_logs"

	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Authentication required"
	ErrMsgForbidden           = "Access forbidden"
)
