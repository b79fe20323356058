package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrCheckOutCommandIsNotConstructed = errors.New("CheckOutCommand must be created via NewCheckOutCommand constructor")

// CheckOutCommand hands an at-depot order to a delivery agent of the depot zone.
// A nil agent lets the dispatcher choose.
type CheckOutCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	agentID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCheckOutCommand(orderID kernel.UUID, actor order.Actor, agentID *kernel.UUID) (CheckOutCommand, error) {
	cmd := CheckOutCommand{guard: guard.NewConstructorGuard()}

	var agentErr error
	if agentID != nil {
		agentErr = agentID.Validate()
	}
	if err := errors.Join(orderID.Validate(), actor.Validate(), agentErr); err != nil {
		return CheckOutCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	if agentID != nil {
		id := *agentID
		cmd.agentID = &id
	}
	return cmd, nil
}

func (c CheckOutCommand) Validate() error {
	return c.guard.Validate(ErrCheckOutCommandIsNotConstructed)
}

func (c CheckOutCommand) OrderID() kernel.UUID { return c.orderID }
func (c CheckOutCommand) Actor() order.Actor   { return c.actor }

// AgentID returns the requested agent, nil when the dispatcher chooses.
func (c CheckOutCommand) AgentID() *kernel.UUID {
	if c.agentID == nil {
		return nil
	}
	id := *c.agentID
	return &id
}
