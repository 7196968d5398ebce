package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/dto"
	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/logger"
	"github.com/agrox/fieldops/internal/pkg/apperror"
	"github.com/agrox/fieldops/internal/publicerr"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Validation errors show their own message; everything else goes through
// publicerr so backend text stays in the log.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		lang := Lang(c)

		if apperror.IsValidation(err) {
			appErr, _ := apperror.As(err)
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: i18n.T(lang, appErr.Key),
				Code:  string(appErr.Code),
			})
			return
		}

		status := publicerr.Status(err)
		code := string(apperror.ErrCodeInternal)
		if appErr, ok := apperror.As(err); ok {
			code = string(appErr.Code)
		}

		entry := logger.With(logrus.Fields{
			"error":  err.Error(),
			"kind":   backend.KindOf(err).String(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
		if status >= http.StatusInternalServerError {
			entry.Error("request error")
		} else {
			entry.Warn("request error")
		}

		c.JSON(status, dto.ErrorResponse{
			Error: publicerr.Message(err, lang),
			Code:  code,
		})
	}
}
