package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFoundf(nil, "gone").HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, Validation("bad").HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, SchedulingConflict("taken").HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, InvalidState("already accepted").HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, Unauthorized(nil).HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, Internal(nil).HTTPStatus())
}

func TestIs(t *testing.T) {
	err := SchedulingConflictf("slot at %s taken", "10:00")
	assert.True(t, Is(err, ErrSchedulingConflict))
	assert.False(t, Is(err, ErrNotFound))

	wrapped := fmt.Errorf("saving appointment: %w", err)
	assert.True(t, Is(wrapped, ErrSchedulingConflict), "Is must see through wrapping")

	assert.False(t, Is(fmt.Errorf("plain"), ErrSchedulingConflict))
	assert.False(t, Is(nil, ErrSchedulingConflict))
}

func TestErrorString(t *testing.T) {
	plain := Validation("Symptom is required")
	assert.Equal(t, "Symptom is required", plain.Error())

	withCause := NotFoundf(fmt.Errorf("sql: no rows"), "Appointment with ID %d not found", 7)
	assert.Contains(t, withCause.Error(), "Appointment with ID 7 not found")
	assert.Contains(t, withCause.Error(), "sql: no rows")
}
