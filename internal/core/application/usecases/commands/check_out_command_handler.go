package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/lookup"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CheckOutCommandHandler dispatches an at-depot order to an available delivery
// agent of the depot zone. An agent from another zone never leaves with the
// parcel, even when requested explicitly.
type CheckOutCommandHandler struct {
	uowFactory UoWFactory
	resolver   ports.ZoneResolver
	policy     RetryPolicy
	dispatcher services.AgentDispatcher
	workflow   services.DepotWorkflow
}

// NewCheckOutCommandHandler creates the handler. resolver may be nil, in which
// case only zoned depots can dispatch.
func NewCheckOutCommandHandler(uowFactory UoWFactory, resolver ports.ZoneResolver, policy RetryPolicy) CheckOutCommandHandler {
	return CheckOutCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		policy:     policy,
		dispatcher: services.NewAgentDispatcher(),
		workflow:   services.NewDepotWorkflow(),
	}
}

// Handle returns the authoritative order, services.ErrNoAgentAvailable when the
// zone has no available delivery agent, services.ErrAgentNotEligible when the
// requested agent is not one of them.
func (h CheckOutCommandHandler) Handle(ctx context.Context, cmd CheckOutCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	run := transitionRun[UoW]{
		create: h.uowFactory.Create,
		policy: h.policy,
		load:   byOrderID[UoW](cmd.OrderID()),
		mutate: func(ctx context.Context, uow UoW, o *order.Order, at time.Time) error {
			if err := order.CheckTransition(o.Status(), order.OutForDelivery, cmd.Actor().Role); err != nil {
				return err
			}
			if cmd.Actor().Role == order.RoleDeliveryAgent {
				return order.NewForbiddenError(cmd.Actor().Role, o.Status(), order.OutForDelivery,
					"delivery agents leave the depot by scanning the parcel")
			}

			zones, err := lookup.DispatchZones(ctx, uow.DepotRepository(), h.resolver, h.workflow, o)
			if err != nil {
				return err
			}
			agents, err := agentsForDispatch(ctx, uow.AgentRepository(), cmd.AgentID(), zones)
			if err != nil {
				return err
			}
			chosen, err := h.dispatcher.SelectForCheckOut(agents, cmd.AgentID(), zones...)
			if err != nil {
				return err
			}

			payload, err := h.workflow.CheckOutPayload(o, chosen)
			if err != nil {
				return err
			}
			return o.Transition(order.OutForDelivery, cmd.Actor(), payload, at)
		},
	}

	return run.run(ctx)
}
