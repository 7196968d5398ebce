package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden         ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest        ErrorCode = "BAD_REQUEST"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeModuleUnavailable ErrorCode = "MODULE_UNAVAILABLE"
)

// AppError carries a code, an HTTP status and, for errors shown to users,
// the catalog key of the localized message.
type AppError struct {
	Code       ErrorCode
	Message    string
	Key        string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation builds a validation error whose user-facing text is the catalog entry for key.
func Validation(key string) *AppError {
	return &AppError{
		Code:       ErrCodeValidation,
		Message:    "validation failed: " + key,
		Key:        key,
		HTTPStatus: http.StatusBadRequest,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeModuleUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsValidation(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeValidation
}

func IsModuleUnavailable(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeModuleUnavailable
}

func IsUnauthorized(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeUnauthorized
}

var (
	ErrUnauthorized      = New(ErrCodeUnauthorized, "authentication required")
	ErrModuleUnavailable = New(ErrCodeModuleUnavailable, "no storage target configured for module")
)
