package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// ListDepotOrdersQueryHandler reads the depot shelf from the order repository.
type ListDepotOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListDepotOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) ListDepotOrdersQueryHandler {
	return ListDepotOrdersQueryHandler{uowFactory: uowFactory}
}

// Handle returns an empty slice when nothing matches.
func (h ListDepotOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListDepotOrdersQuery,
) ([]ListDepotOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.uowFactory.Create().OrderRepository().ListByDepotAndStatus(ctx, query.DepotID(), query.Status())
	if err != nil {
		return nil, err
	}

	response := make([]ListDepotOrdersQueryResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, ListDepotOrdersQueryResponse{
			ID:                o.ID(),
			TrackingNumber:    o.TrackingNumber(),
			Status:            o.Status(),
			StorageLocationID: o.StorageLocationID(),
			CheckedInAt:       o.CheckedInAt(),
			AgentID:           o.AgentID(),
		})
	}
	return response, nil
}
