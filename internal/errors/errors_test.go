package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheError_Error(t *testing.T) {
	err := NewCacheError("new_bounded", "invalid_capacity", ErrInvalidInput)
	assert.Contains(t, err.Error(), "new_bounded")
	assert.Contains(t, err.Error(), "invalid_capacity")
}

func TestCacheError_Unwraps(t *testing.T) {
	inner := errors.New("capacity must be positive")
	err := NewCacheError("new_bounded", "invalid_capacity", inner)
	assert.ErrorIs(t, err, inner)
}

func TestAPIError_Error(t *testing.T) {
	err := NewAPIError(404, "10002", "not found", nil)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "10002")
	assert.Contains(t, err.Error(), "not found")
}

func TestAPIError_WithWrapped(t *testing.T) {
	err := NewAPIError(404, "10002", "not found", ErrNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "resource not found")
}

func TestSentinelErrors(t *testing.T) {
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
}
