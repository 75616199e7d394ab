package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not authenticated", err: ErrNotAuthenticated, wantStatus: http.StatusUnauthorized},
		{name: "forbidden", err: ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "wrapped forbidden", err: fmt.Errorf("update project 1: %w", ErrForbidden), wantStatus: http.StatusForbidden},
		{name: "not found", err: ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "validation", err: NewValidationError("name", "is required"), wantStatus: http.StatusUnprocessableEntity},
		{name: "unknown", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, httpErr.Message, httpErr.Error())
		})
	}
}

func TestMapErrorToHTTP_DoesNotLeakCause(t *testing.T) {
	httpErr := MapErrorToHTTP(fmt.Errorf("project %q owned by 1: %w", "Admin's Secret Project", ErrForbidden))
	assert.NotContains(t, httpErr.Message, "Secret")

	httpErr = MapErrorToHTTP(errors.New("dial tcp 10.0.0.3:3306: refused"))
	assert.NotContains(t, httpErr.Message, "10.0.0.3")
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "content: is required", NewValidationError("content", "is required").Error())
	assert.Equal(t, "bad form", NewValidationError("", "bad form").Error())
}
