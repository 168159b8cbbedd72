package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when no record matches the requested id.
	ErrUserNotFound = errors.New("User not found")
	// ErrDuplicateEmail is returned when an email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned on login failure. The message is
	// intentionally uniform for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrInvalidUserID is returned when an id path parameter is not a
	// well-formed identifier.
	ErrInvalidUserID = errors.New("Invalid user ID")
	// ErrNotOwnProfile is returned when a non-admin reads another profile.
	ErrNotOwnProfile = errors.New("Forbidden: Not your profile")
)

// ValidationError carries the field-specific message for the first
// failing validation rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StatusFor maps a domain error to its HTTP status code. Unknown errors
// map to 500; the caller is expected to log them and respond generically.
func StatusFor(err error) int {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr), errors.Is(err, ErrInvalidUserID), errors.Is(err, ErrDuplicateEmail):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotOwnProfile):
		return http.StatusForbidden
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
