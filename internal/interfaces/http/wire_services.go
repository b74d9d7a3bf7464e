package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	auditServices "github.com/helpdeskhq/helpdesk/internal/application/audit/services"
	dashboardUsecases "github.com/helpdeskhq/helpdesk/internal/application/dashboard/usecases"
	notificationApp "github.com/helpdeskhq/helpdesk/internal/application/notification"
	notificationServices "github.com/helpdeskhq/helpdesk/internal/application/notification/services"
	"github.com/helpdeskhq/helpdesk/internal/application/user"
	"github.com/helpdeskhq/helpdesk/internal/domain/attachment"
	"github.com/helpdeskhq/helpdesk/internal/domain/shared/events"
	"github.com/helpdeskhq/helpdesk/internal/domain/ticket"
	domainUser "github.com/helpdeskhq/helpdesk/internal/domain/user"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/auth"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/cache"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/config"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/email"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/metrics"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/permission"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/ratelimit"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/scheduler"
	"github.com/helpdeskhq/helpdesk/internal/infrastructure/storage"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/http/middleware"
	shareddb "github.com/helpdeskhq/helpdesk/internal/shared/db"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/services/markdown"
)

// allEventTypes is every domain event the application publishes.
var allEventTypes = []string{
	domainUser.EventUserRegistered,
	domainUser.EventUserLoggedIn,
	domainUser.EventUserRoleChanged,
	domainUser.EventUserStatusChanged,
	ticket.EventTicketCreated,
	ticket.EventTicketUpdated,
	ticket.EventTicketAssigned,
	ticket.EventTicketStatusChanged,
	ticket.EventTicketDeleted,
	ticket.EventSLABreached,
	ticket.EventCommentAdded,
	ticket.EventCommentUpdated,
	ticket.EventCommentDeleted,
	attachment.EventAttachmentUploaded,
	attachment.EventAttachmentDeleted,
}

// ============================================================
// Section 1: Infrastructure - Redis, Cache, Repositories, Storage
// ============================================================

// initInfrastructure creates the Redis client (when enabled), the cache and
// rate limiter backends, repositories and file storage.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	c.redis = initRedis(cfg, log)
	c.repos = newRepositories(c.db, log)
	c.txManager = shareddb.NewTransactionManager(c.db)
	c.markdownSvc = markdown.NewMarkdownService()
	c.metrics = metrics.New()
	c.dispatcher = events.NewInMemoryEventDispatcher(eventBufferSize, log)

	var limiter ratelimit.RateLimiter
	if c.redis != nil {
		c.cache = cache.NewRedisCache(c.redis, cfg.Cache.Prefix, cfg.Cache.DefaultTTL())
		limiter = ratelimit.NewRedisRateLimiter(c.redis, cfg.Cache.Prefix+"ratelimit:")
	} else {
		memoryCache, err := cache.NewMemoryCache(cfg.Cache.DefaultTTL())
		if err != nil {
			return fmt.Errorf("failed to create memory cache: %w", err)
		}
		c.memoryCache = memoryCache
		c.cache = memoryCache
		limiter = ratelimit.NewMemoryRateLimiter()
		log.Infow("using in-process cache and rate limiter")
	}
	c.revoker = cache.NewTokenRevoker(c.cache)
	c.rateLimiter = middleware.NewRateLimiter(limiter, log)

	fileStorage, err := storage.NewLocalFileStorage(cfg.Storage.LocalRoot)
	if err != nil {
		return fmt.Errorf("failed to prepare file storage: %w", err)
	}
	c.fileStorage = fileStorage

	return nil
}

// initRedis returns nil when Redis is disabled or unreachable so callers
// fall back to in-process backends.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	if !cfg.Redis.Enabled {
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("redis unavailable, falling back to in-process backends",
			"addr", cfg.Redis.GetAddr(),
			"error", err,
		)
		_ = redisClient.Close()
		return nil
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient
}

// ============================================================
// Section 2: Authorization - JWT, Casbin policies, Middlewares
// ============================================================

func (c *Container) initAuthorization() error {
	cfg := c.cfg
	log := c.log

	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)

	enforcer, err := permission.NewEnforcer(c.db, log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := enforcer.Seed(); err != nil {
		return fmt.Errorf("failed to seed permission policies: %w", err)
	}
	c.enforcer = enforcer

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.revoker, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, log)

	c.userService = user.NewServiceDDD(c.repos.userRepo, c.hasher, c.dispatcher, log)
	c.notificationService = notificationApp.NewServiceDDD(c.repos.notificationRepo, c.repos.preferencesRepo, log)

	return nil
}

// ============================================================
// Section 4: Event subscribers - Notifications, Audit, Metrics, Cache
// ============================================================

// initSubscribers attaches every event consumer to the dispatcher. Handlers
// run on the dispatcher goroutine in publish order.
func (c *Container) initSubscribers() error {
	cfg := c.cfg
	log := c.log

	var mailer notificationServices.EmailSender
	if cfg.Email.Enabled {
		mailer = email.NewSMTPEmailService(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
		})
		log.Infow("email notifications enabled", "smtp_host", cfg.Email.SMTPHost)
	}

	notifier := notificationServices.NewNotifier(
		c.repos.notificationRepo,
		c.repos.preferencesRepo,
		c.repos.userRepo,
		mailer,
		log,
	)
	if err := notifier.Subscribe(c.dispatcher); err != nil {
		return fmt.Errorf("notifier: %w", err)
	}

	recorder := auditServices.NewRecorder(c.repos.auditRepo, log)
	if err := recorder.Subscribe(c.dispatcher); err != nil {
		return fmt.Errorf("audit recorder: %w", err)
	}

	invalidator := dashboardUsecases.NewStatsInvalidator(c.cache, log)
	if err := invalidator.Subscribe(c.dispatcher); err != nil {
		return fmt.Errorf("stats invalidator: %w", err)
	}

	if err := c.metrics.Subscribe(c.dispatcher, allEventTypes...); err != nil {
		return err
	}

	return nil
}

// ============================================================
// Section 6: Scheduler - SLA breach detection
// ============================================================

func (c *Container) initScheduler() error {
	if !c.cfg.Scheduler.Enabled {
		c.log.Infow("scheduler disabled")
		return nil
	}

	manager, err := scheduler.NewSchedulerManager(c.log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	checkOverdue := c.ucs.checkOverdueTicketsUC
	job := scheduler.BatchJobFunc(func(ctx context.Context) (int, error) {
		result, err := checkOverdue.Execute(ctx)
		if err != nil {
			return 0, err
		}
		return result.Breached, nil
	})

	interval := time.Duration(c.cfg.Scheduler.SLACheckIntervalMinutes) * time.Minute
	if err := manager.RegisterSLAJobs(job, interval); err != nil {
		return fmt.Errorf("failed to register SLA jobs: %w", err)
	}
	c.schedulerManager = manager

	return nil
}
