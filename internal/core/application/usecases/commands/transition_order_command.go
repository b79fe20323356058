package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand asks to move an order to a target status on behalf of an
// authenticated actor.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, order.ReadyForPickup, actor, order.Payload{})
//	if err != nil {
//	    return err
//	}
//	cmd = cmd.WithExpectedStatus(order.Confirmed)
//
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrStaleState) {
//	    // someone else moved the order since the caller read it
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	target   order.Status
	actor    order.Actor
	payload  order.Payload
	expected *order.Status

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand validates identifiers, target status and actor.
// Payload requirements are checked by the aggregate against the current status.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	actor order.Actor,
	payload order.Payload,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		payload: payload,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// WithExpectedStatus pins the status the caller observed. The handler then makes a
// single attempt and answers stale state if the order is no longer in it.
func (c TransitionOrderCommand) WithExpectedStatus(status order.Status) TransitionOrderCommand {
	c.expected = &status
	return c
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c TransitionOrderCommand) Target() order.Status   { return c.target }
func (c TransitionOrderCommand) Actor() order.Actor     { return c.actor }
func (c TransitionOrderCommand) Payload() order.Payload { return c.payload }

// ExpectedStatus returns the pinned status, if any.
func (c TransitionOrderCommand) ExpectedStatus() (order.Status, bool) {
	if c.expected == nil {
		return order.Unknown, false
	}
	return *c.expected, true
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
