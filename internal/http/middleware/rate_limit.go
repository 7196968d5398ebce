package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/agrox/fieldops/internal/dto"
	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/logger"
)

// RateLimitMiddleware limits requests per user, or per IP before
// authentication. Defaults: 10 requests per minute.
func RateLimitMiddleware(limit int64, period time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = 10
	}
	if period <= 0 {
		period = 1 * time.Minute
	}

	rate := limiter.Rate{
		Period: period,
		Limit:  limit,
	}
	store := memory.NewStore()
	instance := limiter.New(store, rate)

	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if raw, ok := c.Get(ContextUserIDKey); ok {
			if id, ok := raw.(uuid.UUID); ok {
				key = "user:" + id.String()
			}
		}

		context, err := instance.Get(c, key)
		if err != nil {
			logger.L().WithError(err).Error("rate limiter store failed")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", context.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", context.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", context.Reset))

		if context.Reached {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: i18n.T(Lang(c), i18n.KeyTooManyRequests),
			})
			return
		}

		c.Next()
	}
}
