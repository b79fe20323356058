package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrScanPickupCommandIsNotConstructed = errors.New(
	"ScanPickupCommand must be created via NewScanPickupCommand constructor",
)

// ScanPickupCommand is a delivery agent scanning a parcel label to take it,
// either from the seller or from a depot.
type ScanPickupCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	actor          order.Actor

	guard guard.ConstructorGuard
}

func NewScanPickupCommand(trackingNumber string, actor order.Actor) (ScanPickupCommand, error) {
	cmd := ScanPickupCommand{guard: guard.NewConstructorGuard()}

	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))
	var trackingErr error
	if trackingNumber == "" {
		trackingErr = errs.NewValueIsRequiredError("trackingNumber")
	}
	if err := errors.Join(trackingErr, actor.Validate()); err != nil {
		return ScanPickupCommand{}, err
	}

	cmd.trackingNumber = trackingNumber
	cmd.actor = actor
	return cmd, nil
}

func (c ScanPickupCommand) Validate() error {
	return c.guard.Validate(ErrScanPickupCommandIsNotConstructed)
}

func (c ScanPickupCommand) TrackingNumber() string { return c.trackingNumber }
func (c ScanPickupCommand) Actor() order.Actor     { return c.actor }
