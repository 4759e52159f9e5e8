// Package status is the order status state machine:
//
//	PENDING -> CONFIRMED -> SHIPPED -> DELIVERED
//	PENDING, CONFIRMED -> CANCELLED
//
// DELIVERED and CANCELLED are terminal.
package status

import (
	"fmt"
	"strings"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

type Status string

const (
	Pending   Status = "PENDING"
	Confirmed Status = "CONFIRMED"
	Shipped   Status = "SHIPPED"
	Delivered Status = "DELIVERED"
	Cancelled Status = "CANCELLED"

	Initial = Pending
)

var transitions = map[Status][]Status{
	Pending:   {Confirmed, Cancelled},
	Confirmed: {Shipped, Cancelled},
	Shipped:   {Delivered},
	Delivered: {},
	Cancelled: {},
}

func All() []Status {
	return []Status{Pending, Confirmed, Shipped, Delivered, Cancelled}
}

func Parse(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", inErrors.NewValidationError(inErrors.FieldError{
			Field:   "status",
			Message: fmt.Sprintf("unknown status %q", s),
		})
	}
	return status, nil
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

func (s Status) String() string {
	return string(s)
}

// Next lists the statuses reachable from s in one step.
func Next(s Status) []Status {
	next := make([]Status, len(transitions[s]))
	copy(next, transitions[s])
	return next
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns *errors.TransitionError when to is not reachable from
// from.
func Transition(from, to Status) error {
	if !CanTransition(from, to) {
		return &inErrors.TransitionError{Current: from.String(), Requested: to.String()}
	}
	return nil
}
