package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/depot"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// DepotWorkflow is a domain service for the check-in, check-out and discrepancy
// steps an order goes through at a depot. It prepares the transition payloads; the
// transition itself is applied by the order aggregate.
//
// Business rules:
//   - Check-in is only legal from picked-up and needs an agent attached to a depot
//   - The storage location must be a shelf of that depot when the depot declares a layout
//   - Check-out searches the depot zone, or the zone of the shipping city when the
//     depot is not zoned
//   - item-count-mismatch, damaged-seal and damaged-item discrepancies block the
//     order in depot-issue; other kinds are advisory notes
type DepotWorkflow struct{}

// NewDepotWorkflow creates a new DepotWorkflow instance.
func NewDepotWorkflow() DepotWorkflow {
	return DepotWorkflow{}
}

// CheckInPayload validates a check-in and returns the payload of the
// picked-up -> at-depot transition.
//
// Parameters:
//   - o: the order being checked in
//   - staff: the depot agent or manager scanning the parcel
//   - d: the staff member's depot
//   - storageLocationID: the shelf the parcel is put on
//
// Returns:
//   - order.Payload: DepotID and StorageLocationID filled in
//   - error: IllegalTransitionError when the order is not picked-up, value errors otherwise
func (w DepotWorkflow) CheckInPayload(o *order.Order, staff *agent.Agent, d *depot.Depot, storageLocationID string) (order.Payload, error) {
	if err := o.Validate(); err != nil {
		return order.Payload{}, err
	}
	if err := staff.Validate(); err != nil {
		return order.Payload{}, err
	}
	if o.Status() != order.PickedUp {
		return order.Payload{}, order.NewIllegalTransitionError(o.Status(), order.AtDepot)
	}

	depotID := staff.DepotID()
	if depotID == nil {
		return order.Payload{}, errs.NewValueIsRequiredError("depotId")
	}
	if err := d.Validate(); err != nil {
		return order.Payload{}, err
	}
	if !d.ID().IsEqual(*depotID) {
		return order.Payload{}, errs.NewValueIsInvalidErrorWithCause("depotId",
			fmt.Errorf("agent belongs to depot %s, not %s", depotID, d.ID()))
	}
	if !d.HasLocation(storageLocationID) {
		return order.Payload{}, errs.NewValueIsInvalidErrorWithCause("storageLocationId",
			fmt.Errorf("%q is not a storage location of depot %s", storageLocationID, d.Name()))
	}

	return order.Payload{
		DepotID:           depotID,
		StorageLocationID: storageLocationID,
		Location:          d.Name() + " / " + storageLocationID,
	}, nil
}

// DispatchZones returns the zones a check-out searches: the depot zone, or the
// zone resolved from the shipping city when the depot is not zoned. It never
// returns both.
func (w DepotWorkflow) DispatchZones(d *depot.Depot, cityZone *kernel.UUID) []kernel.UUID {
	if d != nil {
		if z := d.ZoneID(); z != nil {
			return []kernel.UUID{*z}
		}
	}
	if cityZone != nil {
		return []kernel.UUID{*cityZone}
	}
	return nil
}

// CheckOutPayload validates that o can leave the depot with the chosen agent.
func (w DepotWorkflow) CheckOutPayload(o *order.Order, chosen *agent.Agent) (order.Payload, error) {
	if err := o.Validate(); err != nil {
		return order.Payload{}, err
	}
	if o.Status() != order.AtDepot {
		return order.Payload{}, order.NewIllegalTransitionError(o.Status(), order.OutForDelivery)
	}
	if err := chosen.Validate(); err != nil {
		return order.Payload{}, err
	}

	agentID := chosen.ID()
	return order.Payload{
		AgentID: &agentID,
		Detail:  "Out for delivery with " + chosen.Name(),
	}, nil
}

// DiscrepancyOutcome tells whether a discrepancy of the given kind moves the order
// to depot-issue (blocking) or is only attached as a note.
//
// Returns:
//   - order.Status: order.DepotIssue for blocking kinds, order.Unknown otherwise
//   - bool: true when the discrepancy is blocking
func (w DepotWorkflow) DiscrepancyOutcome(kind order.DiscrepancyKind) (order.Status, bool) {
	if kind.IsBlocking() {
		return order.DepotIssue, true
	}
	return order.Unknown, false
}
