package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// AssignAgentCommandHandler lets a superadmin put a chosen delivery agent on an
// order: ready-for-pickup orders become picked-up, at-depot orders go out for
// delivery. Availability and zone are advisory for this override; only the role
// of the agent is enforced.
type AssignAgentCommandHandler struct {
	uowFactory UoWFactory
	policy     RetryPolicy
	dispatcher services.AgentDispatcher
}

func NewAssignAgentCommandHandler(uowFactory UoWFactory, policy RetryPolicy) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		dispatcher: services.NewAgentDispatcher(),
	}
}

func (h AssignAgentCommandHandler) Handle(ctx context.Context, cmd AssignAgentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	run := transitionRun[UoW]{
		create: h.uowFactory.Create,
		policy: h.policy,
		load:   byOrderID[UoW](cmd.OrderID()),
		mutate: func(ctx context.Context, uow UoW, o *order.Order, at time.Time) error {
			target, err := h.dispatcher.AssignmentTarget(o.Status())
			if err != nil {
				return err
			}
			if cmd.Actor().Role != order.RoleSuperadmin {
				return order.NewForbiddenError(cmd.Actor().Role, o.Status(), target, "only a superadmin assigns agents")
			}

			a, err := uow.AgentRepository().Get(ctx, cmd.AgentID())
			if err != nil {
				return err
			}
			if err = h.dispatcher.ValidateAdminAssignment(a); err != nil {
				return err
			}

			agentID := a.ID()
			return o.Transition(target, cmd.Actor(), order.Payload{
				AgentID: &agentID,
				Detail:  "Assigned to " + a.Name() + " by an administrator",
			}, at)
		},
	}

	return run.run(ctx)
}
