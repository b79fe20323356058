package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/lookup"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ScanPickupCommandHandler assigns the scanning delivery agent to the parcel.
// A scan carries no observed status, so the handler pins the status it loads and
// makes a single attempt: of several agents scanning the same label, exactly one
// wins and the others get stale state. Scanning a parcel that already left the
// scannable status is reported the same way.
type ScanPickupCommandHandler struct {
	uowFactory UoWFactory
	index      ports.TrackingNumberIndex
	resolver   ports.ZoneResolver
	policy     RetryPolicy
	dispatcher services.AgentDispatcher
	workflow   services.DepotWorkflow
}

// NewScanPickupCommandHandler creates the handler. index and resolver may be nil.
func NewScanPickupCommandHandler(
	uowFactory UoWFactory,
	index ports.TrackingNumberIndex,
	resolver ports.ZoneResolver,
	policy RetryPolicy,
) ScanPickupCommandHandler {
	return ScanPickupCommandHandler{
		uowFactory: uowFactory,
		index:      index,
		resolver:   resolver,
		policy:     policy,
		dispatcher: services.NewAgentDispatcher(),
		workflow:   services.NewDepotWorkflow(),
	}
}

func (h ScanPickupCommandHandler) Handle(ctx context.Context, cmd ScanPickupCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	run := transitionRun[UoW]{
		create: h.uowFactory.Create,
		policy: RetryPolicy{MaxAttempts: 1, Now: h.policy.Now},
		load: func(ctx context.Context, uow UoW) (*order.Order, error) {
			return lookup.OrderByTrackingNumber(ctx, uow.OrderRepository(), h.index, cmd.TrackingNumber())
		},
		mutate: func(ctx context.Context, uow UoW, o *order.Order, at time.Time) error {
			observed := o.Status()
			switch observed { //nolint:exhaustive // only statuses a scan leads to are stale
			case order.PickedUp, order.OutForDelivery:
				return order.NewStaleStateError(o.ID(), scannedFrom(observed), nil)
			}

			target, err := h.dispatcher.AssignmentTarget(observed)
			if err != nil {
				return err
			}
			if err = order.CheckTransition(observed, target, cmd.Actor().Role); err != nil {
				return err
			}

			scanner, err := uow.AgentRepository().Get(ctx, cmd.Actor().UserID)
			if err != nil {
				return err
			}
			zones, err := lookup.DispatchZones(ctx, uow.DepotRepository(), h.resolver, h.workflow, o)
			if err != nil {
				return err
			}
			if err = h.dispatcher.ValidateSelfScan(scanner, observed, zones...); err != nil {
				return err
			}

			agentID := scanner.ID()
			return o.Transition(target, cmd.Actor(), order.Payload{AgentID: &agentID}, at)
		},
	}

	return run.run(ctx)
}

func scannedFrom(status order.Status) order.Status {
	if status == order.OutForDelivery {
		return order.AtDepot
	}
	return order.ReadyForPickup
}
