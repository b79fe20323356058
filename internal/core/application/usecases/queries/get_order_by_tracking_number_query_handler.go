package queries

import (
	"context"

	"fulfillment/internal/core/application/usecases/lookup"
	"fulfillment/internal/core/ports"
)

// GetOrderByTrackingNumberQueryHandler resolves labels through the tracking-number
// index when one is configured, and through the repository otherwise.
type GetOrderByTrackingNumberQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	index      ports.TrackingNumberIndex
}

// NewGetOrderByTrackingNumberQueryHandler creates the handler. index may be nil.
func NewGetOrderByTrackingNumberQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	index ports.TrackingNumberIndex,
) GetOrderByTrackingNumberQueryHandler {
	return GetOrderByTrackingNumberQueryHandler{uowFactory: uowFactory, index: index}
}

func (h GetOrderByTrackingNumberQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByTrackingNumberQuery,
) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	orders := h.uowFactory.Create().OrderRepository()
	o, err := lookup.OrderByTrackingNumber(ctx, orders, h.index, query.TrackingNumber())
	if err != nil {
		return OrderDetails{}, err
	}
	if err = checkVisible(o, query.Actor()); err != nil {
		return OrderDetails{}, err
	}

	return NewOrderDetails(o), nil
}
