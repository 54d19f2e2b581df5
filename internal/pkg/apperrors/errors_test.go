package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwrapsToSentinel(t *testing.T) {
	err := NewCapacityExceededError("Group is full")
	wrapped := fmt.Errorf("join group: %w", err)

	assert.True(t, errors.Is(wrapped, ErrCapacityExceeded))
	assert.False(t, errors.Is(wrapped, ErrConflict))
	assert.Equal(t, "Group is full", wrapped.(interface{ Unwrap() error }).Unwrap().Error())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Club not found", Message(fmt.Errorf("x: %w", NewResourceNotFoundError("Club not found")), "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
	assert.Equal(t, "fallback", Message(&CustomError{Err: ErrConflict}, "fallback"))
}

func TestIsMatchesAnyOfList(t *testing.T) {
	err := NewForbiddenError("nope")
	assert.True(t, Is(err, ErrResourceNotFound, ErrPermissionDenied))
	assert.False(t, Is(err, ErrResourceNotFound, ErrConflict))
}

func TestCustomErrorFallbackText(t *testing.T) {
	assert.Equal(t, "conflict", (&CustomError{Err: ErrConflict}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
	ce := NewCustomError(ErrValidationFailed, "bad").WithDetails(map[string]string{"name": "required"})
	assert.Equal(t, map[string]string{"name": "required"}, ce.Details)
}
