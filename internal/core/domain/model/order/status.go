package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Happy path:
//
//	confirmed ──> ready-for-pickup ──> picked-up ──> at-depot ──> out-for-delivery ──> delivered
//
// Side branches: cancelled, depot-issue, delivery-failed (retry back to at-depot),
// refund-requested ──> refunded, returned.
//
// delivered, cancelled, refunded and returned are terminal; the only way out of
// delivered is the refund path.
type Status int

const (
	// Unknown (0) catches uninitialized Status values.
	Unknown Status = iota
	Confirmed
	ReadyForPickup
	PickedUp
	AtDepot
	OutForDelivery
	Delivered
	Cancelled
	RefundRequested
	Refunded
	Returned
	DepotIssue
	DeliveryFailed
)

var statusNames = map[Status]string{
	Unknown:         "unknown",
	Confirmed:       "confirmed",
	ReadyForPickup:  "ready-for-pickup",
	PickedUp:        "picked-up",
	AtDepot:         "at-depot",
	OutForDelivery:  "out-for-delivery",
	Delivered:       "delivered",
	Cancelled:       "cancelled",
	RefundRequested: "refund-requested",
	Refunded:        "refunded",
	Returned:        "returned",
	DepotIssue:      "depot-issue",
	DeliveryFailed:  "delivery-failed",
}

// AllStatuses returns every valid status in declaration order.
func AllStatuses() []Status {
	return []Status{
		Confirmed, ReadyForPickup, PickedUp, AtDepot, OutForDelivery, Delivered,
		Cancelled, RefundRequested, Refunded, Returned, DepotIssue, DeliveryFailed,
	}
}

// ParseStatus converts the wire/persistence form ("at-depot") into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. from a corrupted row.
func (s Status) Validate() error {
	if s <= Unknown || s > DeliveryFailed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the kebab-case name. Safe on invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether the status ends the fulfillment lifecycle.
// Delivered is terminal even though a refund may still be requested from it.
func (s Status) IsTerminal() bool {
	switch s { //nolint:exhaustive // only terminal statuses are listed
	case Delivered, Cancelled, Refunded, Returned:
		return true
	default:
		return false
	}
}
