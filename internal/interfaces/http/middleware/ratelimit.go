package middleware

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/helpdeskhq/helpdesk/internal/infrastructure/ratelimit"
	"github.com/helpdeskhq/helpdesk/internal/shared/constants"
	"github.com/helpdeskhq/helpdesk/internal/shared/errors"
	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
	"github.com/helpdeskhq/helpdesk/internal/shared/utils"
)

// fallbackRetryAfter covers the per-minute window when the limiter cannot say.
const fallbackRetryAfter = time.Minute

type RateLimiter struct {
	limiter ratelimit.RateLimiter
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		logger:  logger,
	}
}

// Limit enforces perMinute requests per caller within scope. Authenticated
// callers are keyed by user, anonymous ones by client IP. A limiter failure
// lets the request through.
func (rl *RateLimiter) Limit(scope string, perMinute int) gin.HandlerFunc {
	config := ratelimit.RateLimitConfig{RequestsPerMinute: perMinute}

	return func(c *gin.Context) {
		if perMinute <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:ip:%s", scope, c.ClientIP())
		if userID, exists := c.Get(constants.ContextKeyUserID); exists {
			key = fmt.Sprintf("%s:user:%v", scope, userID)
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, config)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable", "error", err, "key", key)
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", rl.retryAfter(c, key, config))
			utils.AbortWithError(c, errors.NewRateLimitedError("rate limit exceeded, please try again later"))
			return
		}

		c.Next()
	}
}

// retryAfter renders whole seconds, rounded up and never below one.
func (rl *RateLimiter) retryAfter(c *gin.Context, key string, config ratelimit.RateLimitConfig) string {
	wait, err := rl.limiter.RetryAfter(c.Request.Context(), key, config)
	if err != nil {
		rl.logger.Warnw("failed to compute retry delay", "error", err, "key", key)
		wait = fallbackRetryAfter
	}
	secs := int64(math.Ceil(wait.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}
