package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand is an admin-directed dispatch of a chosen delivery agent.
//
// Example:
//
//	cmd, err := NewAssignAgentCommand(orderID, admin, agentID)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
type AssignAgentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignAgentCommand(orderID kernel.UUID, actor order.Actor, agentID kernel.UUID) (AssignAgentCommand, error) {
	cmd := AssignAgentCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(orderID.Validate(), actor.Validate(), agentID.Validate()); err != nil {
		return AssignAgentCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	cmd.agentID = agentID
	return cmd, nil
}

func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
}

func (c AssignAgentCommand) OrderID() kernel.UUID { return c.orderID }
func (c AssignAgentCommand) Actor() order.Actor   { return c.actor }
func (c AssignAgentCommand) AgentID() kernel.UUID { return c.agentID }
