package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is the closed set of error classes the rest of the gateway switches on.
type Kind int

const (
	KindOther Kind = iota
	KindMissingTarget
	KindPermissionDenied
	KindUnauthenticated
	KindUserNotFound
	KindInvalidEmail
	KindCannotChangeSelf
	KindInvalidCredentials
)

func (k Kind) String() string {
	switch k {
	case KindMissingTarget:
		return "missing_target"
	case KindPermissionDenied:
		return "permission_denied"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUserNotFound:
		return "user_not_found"
	case KindInvalidEmail:
		return "invalid_email"
	case KindCannotChangeSelf:
		return "cannot_change_self"
	case KindInvalidCredentials:
		return "invalid_credentials"
	default:
		return "other"
	}
}

// Error is a remote failure classified at the point where the response was decoded.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend: %s (%s, status %d): %s", e.Kind, e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("backend: %s (status %d): %s", e.Kind, e.Status, e.Message)
}

// NewError classifies a remote response into an *Error.
func NewError(code, message string, status int) *Error {
	return &Error{
		Kind:    Classify(code, message, status),
		Code:    code,
		Message: message,
		Status:  status,
	}
}

var missingTargetCodes = map[string]bool{
	"42P01":        true, // undefined table
	"PGRST205":     true, // table not in schema cache
	"42703":        true, // undefined column
	"PGRST204":     true, // column not in schema cache
	"42883":        true, // undefined function
	"PGRST202":     true, // function not in schema cache
	"NoSuchBucket": true,
}

// Classify maps a remote code, message and HTTP status to a Kind.
// Missing-target detection wins over everything else.
func Classify(code, message string, status int) Kind {
	lower := strings.ToLower(message)

	if missingTargetCodes[code] || isMissingTargetMessage(lower) {
		return KindMissingTarget
	}

	switch {
	case strings.Contains(lower, "user_not_found"):
		return KindUserNotFound
	case strings.Contains(lower, "invalid_email"):
		return KindInvalidEmail
	case strings.Contains(lower, "cannot_change_self"):
		return KindCannotChangeSelf
	case code == "42501" || strings.Contains(lower, "not_authorized") || strings.Contains(lower, "row-level security"):
		return KindPermissionDenied
	case code == "invalid_credentials" || strings.Contains(lower, "invalid login"):
		return KindInvalidCredentials
	case strings.Contains(lower, "not_authenticated") || strings.Contains(lower, "jwt"):
		return KindUnauthenticated
	case status == http.StatusUnauthorized:
		return KindUnauthenticated
	case status == http.StatusForbidden:
		return KindPermissionDenied
	}

	return KindOther
}

func isMissingTargetMessage(lower string) bool {
	has := func(parts ...string) bool {
		for _, p := range parts {
			if !strings.Contains(lower, p) {
				return false
			}
		}
		return true
	}

	return has("relation", "does not exist") ||
		has("could not find the table") ||
		has("bucket", "not found") ||
		has("column", "does not exist") ||
		has("schema cache", "column") ||
		has("function", "does not exist")
}

// KindOf returns the Kind of the first *Error in err's chain, KindOther otherwise.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindOther
}

// IsMissingTarget reports whether err says the table, column, function or bucket does not exist.
func IsMissingTarget(err error) bool {
	return KindOf(err) == KindMissingTarget
}
