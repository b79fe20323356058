// Package ports defines the contracts between the fulfillment core and its
// infrastructure: repositories, the unit of work, the tracking-number index, the
// zone resolver and the event publisher.
package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Status writes happen only through UpdateIfStatus, the compare-and-swap primitive
// every transition relies on.
type OrderRepository interface {
	// Add persists a new order aggregate with its ledgers.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its ledgers and incidents.
	// Returns errs.ErrObjectNotFound when no order has this id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTrackingNumber retrieves an order by its printable-label code.
	// Returns errs.ErrObjectNotFound when the code is unknown.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*order.Order, error)

	// UpdateIfStatus persists aggregate only if the stored order still has
	// expectedStatus and expectedVersion. Ledger entries added since the load are
	// appended in the same write.
	//
	// Returns an error wrapping order.ErrStaleState when the stored order moved on,
	// errs.ErrObjectNotFound when it does not exist.
	//
	// Example:
	//   observed, version := o.Status(), o.Version()
	//   if err := o.Transition(order.PickedUp, actor, payload, now); err != nil {
	//       return err
	//   }
	//   err := repo.UpdateIfStatus(ctx, o, observed, version)
	//   if errors.Is(err, order.ErrStaleState) {
	//       // someone else handled the order first
	//   }
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expectedStatus order.Status, expectedVersion int) error

	// AppendDispute adds one message to the dispute log without touching status or version.
	AppendDispute(ctx context.Context, orderID kernel.UUID, message order.DisputeMessage) error

	// ListByDepotAndStatus returns the orders checked in at depotID that are in status,
	// oldest check-in first.
	ListByDepotAndStatus(ctx context.Context, depotID kernel.UUID, status order.Status) ([]*order.Order, error)

	// ListInStatusSince returns orders currently in status whose last status change
	// happened before the given time.
	ListInStatusSince(ctx context.Context, status order.Status, before time.Time) ([]*order.Order, error)
}
