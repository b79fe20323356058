package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// DeliveryMethod tells whether the customer collects the parcel or gets it at home.
type DeliveryMethod string

const (
	DeliveryPickup       DeliveryMethod = "pickup"
	DeliveryHomeDelivery DeliveryMethod = "home-delivery"
)

// ParseDeliveryMethod validates the checkout choice.
func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	m := DeliveryMethod(s)
	if m != DeliveryPickup && m != DeliveryHomeDelivery {
		return "", errs.NewValueIsInvalidErrorWithCause("deliveryMethod", fmt.Errorf("%q is not a delivery method", s))
	}
	return m, nil
}

const maxItemQuantity = 999

// Item is one purchased line, priced by the catalog collaborator at checkout.
type Item struct {
	ProductID kernel.UUID
	Name      string
	Quantity  int
	UnitPrice kernel.Money
}

// NewItem validates a checkout line.
func NewItem(productID kernel.UUID, name string, quantity int, unitPrice kernel.Money) (Item, error) {
	name = strings.TrimSpace(name)

	var nameErr, quantityErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if quantity < 1 || quantity > maxItemQuantity {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}
	if err := errors.Join(productID.Validate(), nameErr, quantityErr); err != nil {
		return Item{}, err
	}

	return Item{ProductID: productID, Name: name, Quantity: quantity, UnitPrice: unitPrice}, nil
}

// LineTotal is quantity times unit price.
func (i Item) LineTotal() kernel.Money {
	return i.UnitPrice.Mul(i.Quantity)
}
