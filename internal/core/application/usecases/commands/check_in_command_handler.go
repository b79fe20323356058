package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// CheckInCommandHandler moves a picked-up order to at-depot, onto a shelf of the
// depot the scanning staff member belongs to.
type CheckInCommandHandler struct {
	uowFactory UoWFactory
	policy     RetryPolicy
	workflow   services.DepotWorkflow
}

func NewCheckInCommandHandler(uowFactory UoWFactory, policy RetryPolicy) CheckInCommandHandler {
	return CheckInCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		workflow:   services.NewDepotWorkflow(),
	}
}

// Handle checks the order in and returns the authoritative order.
// The actor must be registered as an agent attached to a depot.
func (h CheckInCommandHandler) Handle(ctx context.Context, cmd CheckInCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	run := transitionRun[UoW]{
		create: h.uowFactory.Create,
		policy: h.policy,
		load:   byOrderID[UoW](cmd.OrderID()),
		mutate: func(ctx context.Context, uow UoW, o *order.Order, at time.Time) error {
			if err := order.CheckTransition(o.Status(), order.AtDepot, cmd.Actor().Role); err != nil {
				return err
			}

			staff, err := uow.AgentRepository().Get(ctx, cmd.Actor().UserID)
			if err != nil {
				return err
			}
			depotID := staff.DepotID()
			if depotID == nil {
				return errs.NewValueIsRequiredError("depotId")
			}
			d, err := uow.DepotRepository().Get(ctx, *depotID)
			if err != nil {
				return err
			}

			payload, err := h.workflow.CheckInPayload(o, staff, d, cmd.StorageLocationID())
			if err != nil {
				return err
			}
			return o.Transition(order.AtDepot, cmd.Actor(), payload, at)
		},
	}

	return run.run(ctx)
}
