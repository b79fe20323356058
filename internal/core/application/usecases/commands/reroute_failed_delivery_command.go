package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrRerouteFailedDeliveryCommandIsNotConstructed = errors.New(
	"RerouteFailedDeliveryCommand must be created via NewRerouteFailedDeliveryCommand constructor",
)

// RerouteFailedDeliveryCommand sends a failed parcel back to the depot for another
// attempt. The storage location is optional.
type RerouteFailedDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	actor             order.Actor
	storageLocationID string

	guard guard.ConstructorGuard
}

func NewRerouteFailedDeliveryCommand(
	orderID kernel.UUID,
	actor order.Actor,
	storageLocationID string,
) (RerouteFailedDeliveryCommand, error) {
	cmd := RerouteFailedDeliveryCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return RerouteFailedDeliveryCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	cmd.storageLocationID = strings.TrimSpace(storageLocationID)
	return cmd, nil
}

func (c RerouteFailedDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRerouteFailedDeliveryCommandIsNotConstructed)
}

func (c RerouteFailedDeliveryCommand) OrderID() kernel.UUID      { return c.orderID }
func (c RerouteFailedDeliveryCommand) Actor() order.Actor        { return c.actor }
func (c RerouteFailedDeliveryCommand) StorageLocationID() string { return c.storageLocationID }
