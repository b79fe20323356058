package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler is the entry point for plain status changes.
// It loads the order, applies Order.Transition and writes the result with a
// compare-and-swap on the status and version it loaded, together with the outbox
// events, in one unit of work.
//
// Transitions that set an agent, a depot, a shelf or an incident record are
// refused with DedicatedOperationError; see dedicatedOperations. Only the note
// fields of the payload (recipient name, location, detail) reach the aggregate.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, DefaultRetryPolicy())
//	o, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrIllegalTransition):
//	    // no such edge in the lifecycle
//	case errors.Is(err, order.ErrForbidden):
//	    // role not allowed
//	case errors.Is(err, order.ErrStaleState):
//	    // already handled by someone else
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     RetryPolicy
}

// NewTransitionOrderCommandHandler creates a handler for status transitions.
func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory, policy RetryPolicy) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle applies the transition and returns the authoritative order. Illegal pairs
// and roles outside the table are reported before a dedicated-operation refusal.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	run := transitionRun[OrderUoW]{
		create: h.uowFactory.Create,
		policy: h.policy,
		load:   byOrderID[OrderUoW](cmd.OrderID()),
		mutate: func(_ context.Context, _ OrderUoW, o *order.Order, at time.Time) error {
			if err := order.CheckTransition(o.Status(), cmd.Target(), cmd.Actor().Role); err != nil {
				return err
			}
			if operation, ok := dedicatedOperations[transitionEdge{from: o.Status(), to: cmd.Target()}]; ok {
				return NewDedicatedOperationError(o.Status(), cmd.Target(), operation)
			}
			return o.Transition(cmd.Target(), cmd.Actor(), notesOnly(cmd.Payload()), at)
		},
	}
	if expected, ok := cmd.ExpectedStatus(); ok {
		run.expected = &expected
	}

	return run.run(ctx)
}

type transitionEdge struct {
	from order.Status
	to   order.Status
}

// dedicatedOperations lists the edges owned by the depot workflow, the dispatch
// engine and the failure handler, with the operation to use for each.
var dedicatedOperations = map[transitionEdge]string{
	{order.ReadyForPickup, order.PickedUp}:       "agent assignment or scan",
	{order.PickedUp, order.AtDepot}:              "depot check-in",
	{order.AtDepot, order.OutForDelivery}:        "depot check-out, agent assignment or scan",
	{order.PickedUp, order.DepotIssue}:           "discrepancy report",
	{order.AtDepot, order.DepotIssue}:            "discrepancy report",
	{order.OutForDelivery, order.DeliveryFailed}: "delivery failure report",
	{order.DeliveryFailed, order.AtDepot}:        "failed delivery reroute",
	{order.Delivered, order.RefundRequested}:     "refund request",
}

// notesOnly drops the side data a plain transition is not allowed to set.
func notesOnly(p order.Payload) order.Payload {
	return order.Payload{
		RecipientName: p.RecipientName,
		Location:      p.Location,
		Detail:        p.Detail,
	}
}
