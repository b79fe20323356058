package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// FailurePolicy decides what happens to an order after a failed delivery attempt.
// delivery-failed is not terminal: a depot manager or superadmin either reroutes
// the parcel back to the depot for another attempt or returns it to the sender.
type FailurePolicy struct {
	// StaleAfter is how long an order may sit in delivery-failed before it is reported.
	StaleAfter time.Duration
}

// NewFailurePolicy creates a policy reporting orders left in delivery-failed longer than staleAfter.
func NewFailurePolicy(staleAfter time.Duration) FailurePolicy {
	return FailurePolicy{StaleAfter: staleAfter}
}

// RetryStatus is where a rerouted order goes.
func (p FailurePolicy) RetryStatus() order.Status {
	return order.AtDepot
}

// GiveUpStatus is where an order goes when no further attempt is made.
func (p FailurePolicy) GiveUpStatus() order.Status {
	return order.Returned
}

// ReroutePayload prepares the delivery-failed -> at-depot transition. The order
// aggregate clears the agent assignment on that transition.
func (p FailurePolicy) ReroutePayload(o *order.Order, storageLocationID string) (order.Payload, error) {
	if err := o.Validate(); err != nil {
		return order.Payload{}, err
	}
	if o.Status() != order.DeliveryFailed {
		return order.Payload{}, order.NewIllegalTransitionError(o.Status(), p.RetryStatus())
	}
	return order.Payload{StorageLocationID: storageLocationID}, nil
}

// NeedsAttention reports whether o has been waiting in delivery-failed since
// before now minus StaleAfter.
func (p FailurePolicy) NeedsAttention(o *order.Order, now time.Time) bool {
	if o.Status() != order.DeliveryFailed {
		return false
	}
	last, ok := o.LastStatusChange()
	if !ok {
		return false
	}
	return now.Sub(last.At) >= p.StaleAfter
}
