package queries

import (
	"context"
	"slices"

	"fulfillment/internal/core/application/usecases/lookup"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ListDispatchCandidatesQueryHandler runs the dispatcher's candidate filter
// without assigning anybody. Availability is advisory, so the answer can be stale
// by the time a check-out runs.
type ListDispatchCandidatesQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	resolver   ports.ZoneResolver
	dispatcher services.AgentDispatcher
	workflow   services.DepotWorkflow
}

// NewListDispatchCandidatesQueryHandler creates the handler. resolver may be nil.
func NewListDispatchCandidatesQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	resolver ports.ZoneResolver,
) ListDispatchCandidatesQueryHandler {
	return ListDispatchCandidatesQueryHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		dispatcher: services.NewAgentDispatcher(),
		workflow:   services.NewDepotWorkflow(),
	}
}

// Handle returns an empty slice when the order has no dispatch zone or nobody
// in it is available.
func (h ListDispatchCandidatesQueryHandler) Handle(
	ctx context.Context,
	query ListDispatchCandidatesQuery,
) ([]ListDispatchCandidatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	o, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	zones, err := lookup.DispatchZones(ctx, uow.DepotRepository(), h.resolver, h.workflow, o)
	if err != nil {
		return nil, err
	}
	for _, z := range query.ExtraZones() {
		if !slices.ContainsFunc(zones, z.IsEqual) {
			zones = append(zones, z)
		}
	}
	agents, err := uow.AgentRepository().ListDeliveryAgentsInZones(ctx, zones...)
	if err != nil {
		return nil, err
	}

	candidates := h.dispatcher.Candidates(agents, zones...)
	response := make([]ListDispatchCandidatesQueryResponse, 0, len(candidates))
	for _, a := range candidates {
		item := ListDispatchCandidatesQueryResponse{ID: a.ID(), Name: a.Name()}
		if zoneID := a.ZoneID(); zoneID != nil {
			item.ZoneID = *zoneID
		}
		response = append(response, item)
	}
	return response, nil
}
