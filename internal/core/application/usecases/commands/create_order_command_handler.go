package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler persists a confirmed order with its creation event and
// indexes its tracking number for scans.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, index, DefaultRetryPolicy())
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// o.Status() == order.Confirmed
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	index      ports.TrackingNumberIndex
	policy     RetryPolicy
}

// NewCreateOrderCommandHandler creates the handler. index may be nil.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	index ports.TrackingNumberIndex,
	policy RetryPolicy,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		index:      index,
		policy:     policy,
	}
}

// Handle creates the order in confirmed status within one transaction. Indexing
// happens after commit and is best effort: scans fall back to the repository.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Details(), h.policy.now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.OutboxRepository().Add(ctx, o.PullEvents()...); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if h.index != nil {
		_ = h.index.Put(ctx, o.TrackingNumber(), o.ID())
	}

	return o, nil
}
