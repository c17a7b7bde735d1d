package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection refused")
	upstream := NewUpstreamError("Failed to create invoice", cause)

	assert.Equal(t, KindUpstream, KindOf(upstream))
	assert.Equal(t, "Failed to create invoice: connection refused", upstream.Error())
	assert.True(t, errors.Is(upstream, cause))

	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("Invoice"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsAppError(wrapped))

	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestDuplicateErrorIsConflictWith400(t *testing.T) {
	err := NewDuplicateError("Invoice already exists for this service")
	assert.Equal(t, KindConflict, err.Kind)
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "conflict", err.Kind.String())
}

func TestGetAppError(t *testing.T) {
	foreign := GetAppError(errors.New("disk full"))
	assert.Equal(t, http.StatusInternalServerError, foreign.Code)
	assert.Equal(t, "disk full", foreign.Message)

	v := NewValidationError([]FieldError{{Field: "mobile", Message: "is required"}})
	assert.Same(t, v, GetAppError(v))
	assert.Equal(t, http.StatusUnprocessableEntity, v.Code)
}
