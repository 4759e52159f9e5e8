package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := fmt.Errorf(
		"failed creating order with error=%w",
		NewValidationError(FieldError{Field: "email", Message: "must be a valid email"}),
	)

	assert.ErrorIs(t, err, ErrValidation)

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "email", validationErr.Fields[0].Field)
	assert.Contains(t, err.Error(), "email: must be a valid email")
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(fmt.Errorf("commit with error=%w", ErrPersistence)))
	assert.True(t, Retryable(ErrTransitionConflict))
	assert.False(t, Retryable(ErrIllegalTransition))
	assert.False(t, Retryable(NewValidationError()))
}

func TestTransitionError(t *testing.T) {
	err := fmt.Errorf("failed transitioning order with error=%w", &TransitionError{Current: "DELIVERED", Requested: "PENDING"})

	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.NotErrorIs(t, err, ErrTransitionConflict)

	var transitionErr *TransitionError
	assert.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, "DELIVERED", transitionErr.Current)
	assert.Equal(t, "PENDING", transitionErr.Requested)
}
