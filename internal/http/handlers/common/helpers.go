package common

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agrox/fieldops/internal/dto"
	"github.com/agrox/fieldops/internal/http/middleware"
	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/pkg/apperror"
	"github.com/agrox/fieldops/internal/service"
)

// ErrUserNotFound is returned when the auth middleware did not run.
var ErrUserNotFound = errors.New("user not found in context")

// PhotoField is the multipart field every screen sends its photo in.
const PhotoField = "photo"

// CurrentUserID extracts the caller set by the auth middleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, ErrUserNotFound
	}

	userID, ok := raw.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, ErrUserNotFound
	}

	return userID, nil
}

// RequireUser returns the caller or answers 401 and reports false.
func RequireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, err := CurrentUserID(c)
	if err != nil {
		RespondUnauthorized(c)
		return uuid.Nil, false
	}
	return userID, true
}

// Photo returns the uploaded photo, nil when the form has none. The caller
// must run the returned close func.
func Photo(c *gin.Context) (*service.PhotoUpload, func(), error) {
	header, err := c.FormFile(PhotoField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, apperror.Validation(i18n.KeyInvalidImage)
	}
	return open(header)
}

func open(header *multipart.FileHeader) (*service.PhotoUpload, func(), error) {
	f, err := header.Open()
	if err != nil {
		return nil, func() {}, apperror.Validation(i18n.KeyInvalidImage)
	}
	return &service.PhotoUpload{Name: header.Filename, Body: f}, func() { _ = f.Close() }, nil
}

// Fail hands err to the error middleware.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// RespondSuccess sends a localized confirmation with the created item. An
// empty notice is omitted.
func RespondSuccess(c *gin.Context, statusCode int, key, notice string, data interface{}) {
	c.JSON(statusCode, dto.SuccessResponse{
		Message: i18n.T(middleware.Lang(c), key),
		Notice:  notice,
		Data:    data,
	})
}

// RespondUnauthorized sends a 401 with the localized message.
func RespondUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: i18n.T(middleware.Lang(c), i18n.KeyNotAuthorized),
		Code:  string(apperror.ErrCodeUnauthorized),
	})
}

// RespondBadRequest sends a 400 with the localized message for key.
func RespondBadRequest(c *gin.Context, key string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: i18n.T(middleware.Lang(c), key),
		Code:  string(apperror.ErrCodeValidation),
	})
}
