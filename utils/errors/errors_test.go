package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsAPIErrors(t *testing.T) {
	assert.Same(t, ErrNotFound, Wrap(ErrNotFound, "X", "y", http.StatusTeapot))

	wrapped := Wrap(fmt.Errorf("boom"), "DB_ERROR", "failed", http.StatusInternalServerError)
	assert.Equal(t, "DB_ERROR", wrapped.Code)
	assert.Equal(t, "boom", wrapped.Details)
	assert.Equal(t, "DB_ERROR: failed", wrapped.Error())
}

func TestWithDetailsDoesNotMutateBase(t *testing.T) {
	got := WithDetails(ErrConstraint, fmt.Errorf("anchor is fixed"))
	assert.Equal(t, http.StatusConflict, got.Status)
	assert.Equal(t, "anchor is fixed", got.Details)
	assert.Empty(t, ErrConstraint.Details)
}
