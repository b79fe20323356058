package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// RerouteFailedDeliveryCommandHandler moves a delivery-failed order back to
// at-depot and clears its agent so it can be dispatched again.
type RerouteFailedDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     RetryPolicy
	failures   services.FailurePolicy
}

func NewRerouteFailedDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	policy RetryPolicy,
	failures services.FailurePolicy,
) RerouteFailedDeliveryCommandHandler {
	return RerouteFailedDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		failures:   failures,
	}
}

func (h RerouteFailedDeliveryCommandHandler) Handle(ctx context.Context, cmd RerouteFailedDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	run := transitionRun[OrderUoW]{
		create: h.uowFactory.Create,
		policy: h.policy,
		load:   byOrderID[OrderUoW](cmd.OrderID()),
		mutate: func(_ context.Context, _ OrderUoW, o *order.Order, at time.Time) error {
			payload, err := h.failures.ReroutePayload(o, cmd.StorageLocationID())
			if err != nil {
				return err
			}
			return o.Transition(h.failures.RetryStatus(), cmd.Actor(), payload, at)
		},
	}

	return run.run(ctx)
}
