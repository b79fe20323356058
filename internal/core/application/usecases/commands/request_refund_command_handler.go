package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// RequestRefundCommandHandler moves a delivered order to refund-requested. Only
// the customer who owns the order may ask.
type RequestRefundCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     RetryPolicy
}

func NewRequestRefundCommandHandler(uowFactory OrderUoWFactory, policy RetryPolicy) RequestRefundCommandHandler {
	return RequestRefundCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h RequestRefundCommandHandler) Handle(ctx context.Context, cmd RequestRefundCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	run := transitionRun[OrderUoW]{
		create: h.uowFactory.Create,
		policy: h.policy,
		load:   byOrderID[OrderUoW](cmd.OrderID()),
		mutate: func(_ context.Context, _ OrderUoW, o *order.Order, at time.Time) error {
			return o.Transition(order.RefundRequested, cmd.Actor(), order.Payload{
				RefundReason: cmd.Reason(),
				EvidenceURLs: cmd.EvidenceURLs(),
			}, at)
		},
	}

	return run.run(ctx)
}
