package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
)

// ErrDedicatedOperation marks a legal transition that carries dispatch or depot
// side data and must go through the operation that validates it.
var ErrDedicatedOperation = errors.New("transition requires a dedicated operation")

// DedicatedOperationError names the operation the caller has to use instead.
type DedicatedOperationError struct {
	From      order.Status
	To        order.Status
	Operation string
}

func NewDedicatedOperationError(from, to order.Status, operation string) *DedicatedOperationError {
	return &DedicatedOperationError{From: from, To: to, Operation: operation}
}

func (e *DedicatedOperationError) Error() string {
	return fmt.Sprintf("%s: %s -> %s goes through %s", ErrDedicatedOperation, e.From, e.To, e.Operation)
}

func (e *DedicatedOperationError) Unwrap() error {
	return ErrDedicatedOperation
}
