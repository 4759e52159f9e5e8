package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyAuth          = errors.New("missing authorization")
	ErrEmptySubject       = errors.New("missing subject")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrIllegalTransition  = errors.New("illegal order status transition")
	ErrTransitionConflict = errors.New("order status changed concurrently")
	ErrPersistence        = errors.New("failed persisting order")
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrPaymentHandoff     = errors.New("failed handing order to payment provider")
	ErrCacheMiss          = errors.New("cache miss")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field level messages. errors.Is(err, ErrValidation)
// holds for every ValidationError.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (v *ValidationError) Error() string {
	msgs := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(msgs, "; "))
}

func (v *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Retryable reports whether the caller can resubmit the same request
// unchanged and expect it to succeed.
func Retryable(err error) bool {
	return errors.Is(err, ErrPersistence) || errors.Is(err, ErrTransitionConflict)
}

// TransitionError is returned when the requested status is not reachable
// from the current one. errors.Is(err, ErrIllegalTransition) holds.
type TransitionError struct {
	Current   string `json:"currentStatus"`
	Requested string `json:"requestedStatus"`
}

func (t *TransitionError) Error() string {
	return fmt.Sprintf("%s from=%s to=%s", ErrIllegalTransition.Error(), t.Current, t.Requested)
}

func (t *TransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}
