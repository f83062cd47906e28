package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ip-registry/internal/adapter"
	apierrors "github.com/feral-file/ff-ip-registry/internal/api/shared/errors"
	"github.com/feral-file/ff-ip-registry/internal/logger"
)

// RateLimitConfig holds the per-caller request rate limit
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// RateLimit returns a gin middleware limiting requests per caller, or per client IP for
// anonymous requests, with a Redis backed GCRA limiter. Redis failures let the request through.
func RateLimit(limiter adapter.RedisRateLimiter, cfg RateLimitConfig) gin.HandlerFunc {
	limit := redis_rate.PerMinute(cfg.RequestsPerMinute)
	if cfg.Burst > 0 {
		limit.Burst = cfg.Burst
	}

	return func(c *gin.Context) {
		key := "ratelimit:ip:" + c.ClientIP()
		if caller, ok := CallerFromContext(c); ok {
			key = "ratelimit:caller:" + caller.String()
		}

		res, err := limiter.Allow(c.Request.Context(), key, limit)
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Rate limiter unavailable", zap.Error(err), zap.String("key", key))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if res.Allowed == 0 {
			retryAfter := int(res.RetryAfter.Round(time.Second) / time.Second)
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierrors.NewTooManyRequestsError("Rate limit exceeded"))
			return
		}

		c.Next()
	}
}
