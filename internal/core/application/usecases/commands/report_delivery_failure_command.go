package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrReportDeliveryFailureCommandIsNotConstructed = errors.New(
	"ReportDeliveryFailureCommand must be created via NewReportDeliveryFailureCommand constructor",
)

// ReportDeliveryFailureCommand records a failed attempt at the customer's door.
type ReportDeliveryFailureCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	reason  order.FailureReason
	details string

	guard guard.ConstructorGuard
}

// NewReportDeliveryFailureCommand accepts only the reasons the delivery app offers:
// client-absent, adresse-erronee and colis-refuse.
func NewReportDeliveryFailureCommand(
	orderID kernel.UUID,
	actor order.Actor,
	reason string,
	details string,
) (ReportDeliveryFailureCommand, error) {
	cmd := ReportDeliveryFailureCommand{guard: guard.NewConstructorGuard()}

	parsed, reasonErr := order.ParseFailureReason(reason)
	if err := errors.Join(orderID.Validate(), actor.Validate(), reasonErr); err != nil {
		return ReportDeliveryFailureCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	cmd.reason = parsed
	cmd.details = strings.TrimSpace(details)
	return cmd, nil
}

func (c ReportDeliveryFailureCommand) Validate() error {
	return c.guard.Validate(ErrReportDeliveryFailureCommandIsNotConstructed)
}

func (c ReportDeliveryFailureCommand) OrderID() kernel.UUID        { return c.orderID }
func (c ReportDeliveryFailureCommand) Actor() order.Actor          { return c.actor }
func (c ReportDeliveryFailureCommand) Reason() order.FailureReason { return c.reason }
func (c ReportDeliveryFailureCommand) Details() string             { return c.details }
