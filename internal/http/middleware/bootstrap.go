package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/agrox/fieldops/internal/logger"
)

// UserBootstrapper makes sure the signed-in user has a profile row.
type UserBootstrapper interface {
	Ensure(ctx context.Context, userID uuid.UUID) error
}

// Bootstrap runs after AuthMiddleware. A failure is logged and the request
// goes on: the screens work without the profile row.
func Bootstrap(b UserBootstrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := c.Get(ContextUserIDKey)
		userID, _ := raw.(uuid.UUID)
		if ok && userID != uuid.Nil {
			if err := b.Ensure(c.Request.Context(), userID); err != nil {
				logger.With(logrus.Fields{
					"user_id": userID.String(),
					"error":   err.Error(),
				}).Warn("user bootstrap failed")
			}
		}
		c.Next()
	}
}
