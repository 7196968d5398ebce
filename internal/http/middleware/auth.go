package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/dto"
	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/logger"
	"github.com/agrox/fieldops/internal/pkg/apperror"
	"github.com/agrox/fieldops/internal/service"
)

// Keys set on gin.Context by AuthMiddleware.
const (
	ContextUserIDKey = "userID"
	ContextEmailKey  = "email"
)

// TokenVerifier resolves a bearer token into the caller.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*service.Identity, error)
}

// AuthMiddleware requires a backend access token. The token is attached to the
// request context so the backend sees the real user.
func AuthMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		id, err := tokens.Verify(c.Request.Context(), raw)
		if err != nil {
			if !apperror.IsUnauthorized(err) {
				// auth service unreachable
				logger.With(logrus.Fields{"path": c.Request.URL.Path, "error": err.Error()}).Error("token verification failed")
				c.AbortWithStatusJSON(http.StatusBadGateway, dto.ErrorResponse{
					Error: i18n.T(Lang(c), i18n.KeySessionLoadFailed),
					Code:  string(apperror.ErrCodeInternal),
				})
				return
			}
			abortUnauthorized(c)
			return
		}

		c.Set(ContextUserIDKey, id.UserID)
		c.Set(ContextEmailKey, id.Email)
		c.Request = c.Request.WithContext(backend.WithAccessToken(c.Request.Context(), raw))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: i18n.T(Lang(c), i18n.KeyNotAuthorized),
		Code:  string(apperror.ErrCodeUnauthorized),
	})
}
