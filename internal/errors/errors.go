package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotAuthenticated is returned when a request carries no valid session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotFound is returned when no record exists for the requested id.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller may not act on the requested record.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError describes a rejected form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewValidationError creates a new validation error for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
// Forbidden and not-found carry fixed messages so neither leaks record content.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return NewHTTPError(http.StatusUnauthorized, "You must log in to access this page.")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, "You do not have permission to access this resource.")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "The requested resource was not found.")
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusUnprocessableEntity, validationErr.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
