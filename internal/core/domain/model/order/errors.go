package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrIllegalTransition marks a (from, to) pair missing from the transition table.
	// Never retried automatically.
	ErrIllegalTransition = errors.New("illegal transition")

	// ErrForbidden marks an actor not authorized for an otherwise legal transition.
	ErrForbidden = errors.New("forbidden")

	// ErrStaleState marks a failed compare-and-swap: another actor moved the order
	// away from the status the caller observed.
	ErrStaleState = errors.New("stale state")

	// ErrOrderIsNotConstructed is returned for an Order that bypassed NewOrder/RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// IllegalTransitionError carries the rejected pair.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func NewIllegalTransitionError(from, to Status) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// ForbiddenError carries the role and transition an actor was refused.
type ForbiddenError struct {
	Role   Role
	From   Status
	To     Status
	Reason string
}

func NewForbiddenError(role Role, from, to Status, reason string) *ForbiddenError {
	return &ForbiddenError{Role: role, From: from, To: to, Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s cannot move order %s -> %s: %s", ErrForbidden, e.Role, e.From, e.To, e.Reason)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// StaleStateError is what a losing concurrent actor sees.
type StaleStateError struct {
	OrderID  kernel.UUID
	Expected Status
	Cause    error
}

func NewStaleStateError(orderID kernel.UUID, expected Status, cause error) *StaleStateError {
	return &StaleStateError{OrderID: orderID, Expected: expected, Cause: cause}
}

func (e *StaleStateError) Error() string {
	msg := fmt.Sprintf("%s: order %s was already handled by someone else (expected %s)",
		ErrStaleState, e.OrderID, e.Expected)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *StaleStateError) Unwrap() error {
	return ErrStaleState
}
