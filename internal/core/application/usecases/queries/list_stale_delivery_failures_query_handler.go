package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ListStaleDeliveryFailuresQueryHandler lists delivery-failed orders the failure
// policy flags for attention. It never transitions anything.
type ListStaleDeliveryFailuresQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	policy     services.FailurePolicy
}

func NewListStaleDeliveryFailuresQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	policy services.FailurePolicy,
) ListStaleDeliveryFailuresQueryHandler {
	return ListStaleDeliveryFailuresQueryHandler{uowFactory: uowFactory, policy: policy}
}

func (h ListStaleDeliveryFailuresQueryHandler) Handle(
	ctx context.Context,
	query ListStaleDeliveryFailuresQuery,
) ([]ListStaleDeliveryFailuresQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := query.Now().Add(-h.policy.StaleAfter)
	orders, err := h.uowFactory.Create().OrderRepository().ListInStatusSince(ctx, order.DeliveryFailed, cutoff)
	if err != nil {
		return nil, err
	}

	response := make([]ListStaleDeliveryFailuresQueryResponse, 0, len(orders))
	for _, o := range orders {
		if !h.policy.NeedsAttention(o, query.Now()) {
			continue
		}
		item := ListStaleDeliveryFailuresQueryResponse{
			ID:             o.ID(),
			TrackingNumber: o.TrackingNumber(),
			DepotID:        o.DepotID(),
		}
		if last, ok := o.LastStatusChange(); ok {
			item.FailedAt = last.At
		}
		if failure := o.DeliveryFailure(); failure != nil {
			item.Reason = failure.Reason
		}
		response = append(response, item)
	}
	return response, nil
}
