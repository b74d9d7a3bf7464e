package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/helpdeskhq/helpdesk/internal/infrastructure/config"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/middleware"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/routes"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/utils"

	_ "github.com/helpdeskhq/helpdesk/docs"
)

// Router owns the gin engine and the container behind it.
type Router struct {
	*Container
}

// NewRouter wires all dependencies. Call SetupRoutes, then Start, before
// serving.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	container, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: container}, nil
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	cfg := r.cfg

	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.AccessLogger(r.log))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.Metrics(r.metrics))

	r.engine.GET("/health", r.healthCheck)
	r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	if cfg.Server.Mode != gin.ReleaseMode {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiLimit := r.rateLimiter.Limit("api", cfg.RateLimit.RequestsPerMinute)
	authLimit := r.rateLimiter.Limit("auth", cfg.RateLimit.AuthRequestsPerMinute)
	uploadLimit := r.rateLimiter.Limit("upload", cfg.RateLimit.UploadRequestsPerMinute)

	api := r.engine.Group("/api")

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    r.hdlrs.authHandler,
		ProfileHandler: r.hdlrs.profileHandler,
		AuthMiddleware: r.authMiddleware,
		AuthLimit:      authLimit,
		APILimit:       apiLimit,
	})

	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:        r.hdlrs.ticketHandler,
		CommentHandler:       r.hdlrs.commentHandler,
		AttachmentHandler:    r.hdlrs.attachmentHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		APILimit:             apiLimit,
		UploadLimit:          uploadLimit,
	})

	routes.SetupFileOrgRoutes(api, &routes.FileOrgRouteConfig{
		Handler:              r.hdlrs.fileOrgHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		APILimit:             apiLimit,
	})

	routes.SetupNotificationRoutes(api, &routes.NotificationRouteConfig{
		NotificationHandler:  r.hdlrs.notificationHandler,
		DashboardHandler:     r.hdlrs.dashboardHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		APILimit:             apiLimit,
	})

	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:          r.hdlrs.userHandler,
		AuditLogHandler:      r.hdlrs.auditLogHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		APILimit:             apiLimit,
	})

	r.engine.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "route not found")
	})
}

// healthCheck godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse "Database unreachable"
// @Router /health [get]
func (r *Router) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := r.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		r.log.Warnw("health check failed", "error", err)
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"status": "ok"})
}

// GetEngine returns the Gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server on addr.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
