package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"validation", NewValidationError("bad input", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("no token"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", NewForbidden("wrong role"), "FORBIDDEN", http.StatusForbidden},
		{"rate limited", NewTooManyRequests("slow down"), "RATE_LIMITED", http.StatusTooManyRequests},
		{"internal", NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var domainErr *DomainError
			require.ErrorAs(t, tt.err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
			assert.Equal(t, tt.status, domainErr.HTTPStatus)
		})
	}
}

func TestToDomainErrorPassesThroughWrapped(t *testing.T) {
	original := NewForbidden("wrong role")
	wrapped := fmt.Errorf("gateway: %w", original)

	domainErr := ToDomainError(wrapped)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)
}

func TestToDomainErrorMapsNoRowsToNotFound(t *testing.T) {
	domainErr := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainErrorDefaultsToInternal(t *testing.T) {
	cause := errors.New("connection refused")
	domainErr := ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, "internal server error", domainErr.Message)
	assert.ErrorIs(t, domainErr, cause)

	assert.Nil(t, ToDomainError(nil))
}
