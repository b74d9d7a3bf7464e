package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/helpdeskhq/helpdesk/internal/application/common"
	notificationApp "github.com/helpdeskhq/helpdesk/internal/application/notification"
	"github.com/helpdeskhq/helpdesk/internal/application/user"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/auth"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/cache"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/config"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/metrics"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/permission"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/scheduler"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/storage"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/middleware"
	shareddb "github.com/helpdeskhq/helpdesk/internal/shared/db"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/services/markdown"
)

// eventBufferSize bounds the dispatcher queue; Publish drops events when it
// is full.
const eventBufferSize = 1024

// Container holds all infrastructure components, repositories, use cases,
// handlers and background services, and wires them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter

	// Shared services
	cache       common.Cache
	memoryCache *cache.MemoryCache
	revoker     *cache.TokenRevoker
	jwtSvc      *auth.JWTService
	hasher      *auth.BcryptPasswordHasher
	fileStorage *storage.LocalFileStorage
	enforcer    *permission.Enforcer
	txManager   *shareddb.TransactionManager
	markdownSvc markdown.MarkdownService
	metrics     *metrics.Metrics

	// Background services
	dispatcher       *events.InMemoryEventDispatcher
	schedulerManager *scheduler.SchedulerManager

	userService         *user.ServiceDDD
	notificationService *notificationApp.ServiceDDD
}

// NewContainer wires every component. Partially created resources are
// released when a later step fails.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		// Section 1: Infrastructure - Redis, Cache, Repositories, Storage
		{"infrastructure", c.initInfrastructure},
		// Section 2: Authorization - JWT, Casbin policies, Middlewares
		{"authorization", c.initAuthorization},
		// Section 3: Use cases and application services
		{"use cases", c.initUseCases},
		// Section 4: Event subscribers - Notifications, Audit, Metrics, Cache
		{"subscribers", c.initSubscribers},
		// Section 5: Handlers
		{"handlers", c.initHandlers},
		// Section 6: Scheduler - SLA breach detection
		{"scheduler", c.initScheduler},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			c.Shutdown(context.Background())
			return nil, fmt.Errorf("failed to initialize %s: %w", step.name, err)
		}
	}

	return c, nil
}

// Start launches the event dispatcher and the scheduler.
func (c *Container) Start() error {
	if err := c.dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	if c.schedulerManager != nil {
		c.schedulerManager.Start()
	}
	return nil
}

// Shutdown stops background work before releasing connections.
func (c *Container) Shutdown(ctx context.Context) {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Warnw("scheduler stop failed", "error", err)
		}
	}

	if c.dispatcher != nil {
		done := make(chan struct{})
		go func() {
			if err := c.dispatcher.Stop(); err != nil {
				c.log.Debugw("event dispatcher stop", "error", err)
			}
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			c.log.Warnw("event dispatcher did not drain before shutdown deadline")
		}
	}

	if c.memoryCache != nil {
		c.memoryCache.Close()
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
