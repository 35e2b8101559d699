package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/pumpitfaxt/launchpad-indexer/internal/api/shared/errors"
	"github.com/pumpitfaxt/launchpad-indexer/internal/logger"
	"github.com/pumpitfaxt/launchpad-indexer/internal/ratelimit"
)

// RateLimit throttles requests per client IP under the given route scope.
// A nil limiter disables it; limiter failures let the request through.
func RateLimit(limiter ratelimit.Limiter, scope string) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := scope + ":" + c.ClientIP()

		result, err := limiter.Allow(ctx, key)
		if err != nil {
			logger.WarnCtx(ctx, "Rate limiter unavailable, allowing request",
				zap.Error(err),
				zap.String("key", key),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		if !result.Allowed {
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierrors.NewTooManyRequestsError("Too many requests"))
			return
		}

		c.Next()
	}
}
