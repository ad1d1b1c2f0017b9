package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("deleting patient: %w", New(KindNotFound, "patient_not_found"))

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindNotFound, kind)
	assert.True(t, IsBusiness(wrapped, "patient_not_found"))

	_, ok = KindOf(errors.New("boom"))
	assert.False(t, ok)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrUnauthenticated, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{New(KindNotFound, "service_not_found"), http.StatusNotFound},
		{New(KindConflict, "service_in_use"), http.StatusConflict},
		{ErrSystemNotReady, http.StatusServiceUnavailable},
		{New(KindRule, "invalid_state"), http.StatusBadRequest},
		{&ValidationError{Fields: map[string]string{"name": "is required"}}, http.StatusUnprocessableEntity},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err), tt.err.Error())
	}
}

func TestValidationErrorKeepsFirstMessagePerField(t *testing.T) {
	v := NewValidation()
	assert.NoError(t, v.OrNil())

	v.Add("last_name", "is required")
	v.Add("last_name", "is too long")
	v.Add("email", "must be a valid email address")

	assert.True(t, v.Has("last_name"))
	assert.Equal(t, "is required", v.Fields["last_name"])
	assert.EqualError(t, v.OrNil(), "validation failed: email: must be a valid email address; last_name: is required")
}
