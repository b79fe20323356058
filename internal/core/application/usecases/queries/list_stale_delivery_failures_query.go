package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrListStaleDeliveryFailuresQueryIsNotConstructed = errors.New(
		"ListStaleDeliveryFailuresQuery must be created via NewListStaleDeliveryFailuresQuery constructor",
	)
)

// ListStaleDeliveryFailuresQuery finds orders left in delivery-failed for too long.
// It runs on behalf of the system, not a user, so it carries no actor.
type ListStaleDeliveryFailuresQuery struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

func NewListStaleDeliveryFailuresQuery(now time.Time) (ListStaleDeliveryFailuresQuery, error) {
	if now.IsZero() {
		return ListStaleDeliveryFailuresQuery{}, errs.NewValueIsRequiredError("now")
	}
	return ListStaleDeliveryFailuresQuery{now: now, guard: guard.NewConstructorGuard()}, nil
}

func (q ListStaleDeliveryFailuresQuery) Now() time.Time { return q.now }

// Validate ensures the query was created through the constructor.
func (q ListStaleDeliveryFailuresQuery) Validate() error {
	return q.guard.Validate(ErrListStaleDeliveryFailuresQueryIsNotConstructed)
}

// ListStaleDeliveryFailuresQueryResponse is one order awaiting a reroute or return.
type ListStaleDeliveryFailuresQueryResponse struct {
	ID             kernel.UUID
	TrackingNumber string
	DepotID        *kernel.UUID
	FailedAt       time.Time
	Reason         order.FailureReason
}
