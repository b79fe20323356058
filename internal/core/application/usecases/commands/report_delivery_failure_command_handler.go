package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// ReportDeliveryFailureCommandHandler moves an out-for-delivery order to
// delivery-failed and attaches the failure. Only the assigned agent or a
// superadmin may report it.
type ReportDeliveryFailureCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     RetryPolicy
}

func NewReportDeliveryFailureCommandHandler(uowFactory OrderUoWFactory, policy RetryPolicy) ReportDeliveryFailureCommandHandler {
	return ReportDeliveryFailureCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h ReportDeliveryFailureCommandHandler) Handle(ctx context.Context, cmd ReportDeliveryFailureCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	run := transitionRun[OrderUoW]{
		create: h.uowFactory.Create,
		policy: h.policy,
		load:   byOrderID[OrderUoW](cmd.OrderID()),
		mutate: func(_ context.Context, _ OrderUoW, o *order.Order, at time.Time) error {
			return o.Transition(order.DeliveryFailed, cmd.Actor(), order.Payload{
				FailureReason: cmd.Reason(),
				Detail:        cmd.Details(),
			}, at)
		},
	}

	return run.run(ctx)
}
