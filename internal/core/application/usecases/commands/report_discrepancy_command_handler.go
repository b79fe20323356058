package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// ReportDiscrepancyCommandHandler applies the discrepancy policy: blocking kinds
// move the order to depot-issue, advisory kinds are attached as a note and leave
// the status alone. Both go through the compare-and-swap write.
type ReportDiscrepancyCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     RetryPolicy
	workflow   services.DepotWorkflow
}

func NewReportDiscrepancyCommandHandler(uowFactory OrderUoWFactory, policy RetryPolicy) ReportDiscrepancyCommandHandler {
	return ReportDiscrepancyCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		workflow:   services.NewDepotWorkflow(),
	}
}

func (h ReportDiscrepancyCommandHandler) Handle(ctx context.Context, cmd ReportDiscrepancyCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	run := transitionRun[OrderUoW]{
		create: h.uowFactory.Create,
		policy: h.policy,
		load:   byOrderID[OrderUoW](cmd.OrderID()),
		mutate: func(_ context.Context, _ OrderUoW, o *order.Order, at time.Time) error {
			target, blocking := h.workflow.DiscrepancyOutcome(cmd.Kind())
			if !blocking {
				return o.NoteDiscrepancy(cmd.Kind(), cmd.Reason(), cmd.Actor(), at)
			}
			return o.Transition(target, cmd.Actor(), order.Payload{
				DiscrepancyKind:   cmd.Kind(),
				DiscrepancyReason: cmd.Reason(),
			}, at)
		},
	}

	return run.run(ctx)
}
