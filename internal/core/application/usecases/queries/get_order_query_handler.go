package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// GetOrderQueryHandler reads one order through the order repository, outside any
// transaction, so it sees the last committed state.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(uowFactory)
//	details, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown order
//	}
type GetOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

// Handle returns errs.ErrObjectNotFound for unknown orders and an error wrapping
// order.ErrForbidden when the actor may not see the order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return OrderDetails{}, err
	}
	if err = checkVisible(o, query.Actor()); err != nil {
		return OrderDetails{}, err
	}

	return NewOrderDetails(o), nil
}
