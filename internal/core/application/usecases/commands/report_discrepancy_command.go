package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReportDiscrepancyCommandIsNotConstructed = errors.New(
	"ReportDiscrepancyCommand must be created via NewReportDiscrepancyCommand constructor",
)

// ReportDiscrepancyCommand reports a problem found with a parcel at the depot.
type ReportDiscrepancyCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	kind    order.DiscrepancyKind
	reason  string

	guard guard.ConstructorGuard
}

func NewReportDiscrepancyCommand(
	orderID kernel.UUID,
	actor order.Actor,
	kind string,
	reason string,
) (ReportDiscrepancyCommand, error) {
	cmd := ReportDiscrepancyCommand{guard: guard.NewConstructorGuard()}

	parsed, kindErr := order.ParseDiscrepancyKind(kind)
	reason = strings.TrimSpace(reason)
	var reasonErr error
	if reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}
	if err := errors.Join(orderID.Validate(), actor.Validate(), kindErr, reasonErr); err != nil {
		return ReportDiscrepancyCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actor = actor
	cmd.kind = parsed
	cmd.reason = reason
	return cmd, nil
}

func (c ReportDiscrepancyCommand) Validate() error {
	return c.guard.Validate(ErrReportDiscrepancyCommandIsNotConstructed)
}

func (c ReportDiscrepancyCommand) OrderID() kernel.UUID        { return c.orderID }
func (c ReportDiscrepancyCommand) Actor() order.Actor          { return c.actor }
func (c ReportDiscrepancyCommand) Kind() order.DiscrepancyKind { return c.kind }
func (c ReportDiscrepancyCommand) Reason() string              { return c.reason }
