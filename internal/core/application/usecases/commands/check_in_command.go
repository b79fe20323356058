package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCheckInCommandIsNotConstructed = errors.New("CheckInCommand must be created via NewCheckInCommand constructor")

// CheckInCommand records a picked-up parcel arriving at the actor's depot.
type CheckInCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	actor             order.Actor
	storageLocationID string

	guard guard.ConstructorGuard
}

func NewCheckInCommand(orderID kernel.UUID, actor order.Actor, storageLocationID string) (CheckInCommand, error) {
	cmd := CheckInCommand{guard: guard.NewConstructorGuard()}

	storageLocationID = strings.TrimSpace(storageLocationID)
	var locationErr error
	if storageLocationID == "" {
		locationErr = errs.NewValueIsRequiredError("storageLocationId")
	}
	if err := errors.Join(orderID.Validate(), actor.Validate(), locationErr); err != nil {
		return CheckInCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	cmd.storageLocationID = storageLocationID
	return cmd, nil
}

func (c CheckInCommand) Validate() error {
	return c.guard.Validate(ErrCheckInCommandIsNotConstructed)
}

func (c CheckInCommand) OrderID() kernel.UUID      { return c.orderID }
func (c CheckInCommand) Actor() order.Actor        { return c.actor }
func (c CheckInCommand) StorageLocationID() string { return c.storageLocationID }
