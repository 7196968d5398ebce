// Package publicerr turns any error into one of a fixed set of user-safe
// messages. Raw backend text never passes through it.
package publicerr

import (
	"errors"
	"net/http"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/i18n"
	"github.com/agrox/fieldops/internal/pkg/apperror"
)

// Keys is the complete set Key can return.
var Keys = []string{
	i18n.KeyGenericError,
	i18n.KeyNotAuthorized,
	i18n.KeyInvalidEmail,
	i18n.KeyCannotChangeSelf,
	i18n.KeyModuleUnavailable,
}

// Key returns the catalog key for err.
func Key(err error) string {
	if err == nil {
		return i18n.KeyGenericError
	}
	if apperror.IsModuleUnavailable(err) {
		return i18n.KeyModuleUnavailable
	}
	if apperror.IsUnauthorized(err) {
		return i18n.KeyNotAuthorized
	}

	switch backend.KindOf(err) {
	case backend.KindPermissionDenied, backend.KindUnauthenticated:
		return i18n.KeyNotAuthorized
	case backend.KindInvalidEmail:
		return i18n.KeyInvalidEmail
	case backend.KindCannotChangeSelf:
		return i18n.KeyCannotChangeSelf
	default:
		// user_not_found and invalid_credentials stay generic so account existence does not leak
		return i18n.KeyGenericError
	}
}

// Message returns the localized user-safe message for err.
func Message(err error, lang i18n.Lang) string {
	return i18n.T(lang, Key(err))
}

// Status returns the HTTP status a response for err should carry.
func Status(err error) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	if appErr, ok := apperror.As(err); ok && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}

	switch backend.KindOf(err) {
	case backend.KindPermissionDenied:
		return http.StatusForbidden
	case backend.KindUnauthenticated, backend.KindInvalidCredentials:
		return http.StatusUnauthorized
	case backend.KindInvalidEmail, backend.KindCannotChangeSelf:
		return http.StatusBadRequest
	}

	var be *backend.Error
	if errors.As(err, &be) && be.Status >= 400 && be.Status < 500 {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
