package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAppendDisputeCommandIsNotConstructed = errors.New(
	"AppendDisputeCommand must be created via NewAppendDisputeCommand constructor",
)

// AppendDisputeCommand adds a message to the dispute log of an order.
type AppendDisputeCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	message string

	guard guard.ConstructorGuard
}

func NewAppendDisputeCommand(orderID kernel.UUID, actor order.Actor, message string) (AppendDisputeCommand, error) {
	cmd := AppendDisputeCommand{guard: guard.NewConstructorGuard()}

	message = strings.TrimSpace(message)
	var messageErr error
	if message == "" {
		messageErr = errs.NewValueIsRequiredError("message")
	}
	if err := errors.Join(orderID.Validate(), actor.Validate(), messageErr); err != nil {
		return AppendDisputeCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	cmd.message = message
	return cmd, nil
}

func (c AppendDisputeCommand) Validate() error {
	return c.guard.Validate(ErrAppendDisputeCommandIsNotConstructed)
}

func (c AppendDisputeCommand) OrderID() kernel.UUID { return c.orderID }
func (c AppendDisputeCommand) Actor() order.Actor   { return c.actor }
func (c AppendDisputeCommand) Message() string      { return c.message }
