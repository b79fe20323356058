package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a confirmed checkout handed to fulfillment.
// Items and fees come from the pricing collaborator and are not recomputed.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, order.CheckoutDetails{
//	    CustomerID:      customerID,
//	    SellerID:        sellerID,
//	    Items:           items,
//	    DeliveryFee:     fee,
//	    ShippingAddress: address,
//	    DeliveryMethod:  order.DeliveryHomeDelivery,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, index, DefaultRetryPolicy())
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	details order.CheckoutDetails

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks the checkout envelope. Item and address rules are
// enforced by order.NewOrder.
func NewCreateOrderCommand(orderID kernel.UUID, details order.CheckoutDetails) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	var itemsErr error
	if len(details.Items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("items")
	}
	if err := errors.Join(
		orderID.Validate(),
		details.CustomerID.Validate(),
		details.SellerID.Validate(),
		itemsErr,
	); err != nil {
		return CreateOrderCommand{}, err
	}

	details.TrackingNumber = strings.ToUpper(strings.TrimSpace(details.TrackingNumber))
	details.Items = append([]order.Item(nil), details.Items...)

	cmd.orderID = orderID
	cmd.details = details
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Details returns a copy of the checkout details.
func (c CreateOrderCommand) Details() order.CheckoutDetails {
	d := c.details
	d.Items = append([]order.Item(nil), c.details.Items...)
	return d
}
