package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// agentsForDispatch loads the delivery agents of zones, plus the requested agent
// when it is outside them so the dispatcher can say why it is refused.
func agentsForDispatch(
	ctx context.Context,
	agents ports.AgentRepository,
	requested *kernel.UUID,
	zones []kernel.UUID,
) ([]*agent.Agent, error) {
	list, err := agents.ListDeliveryAgentsInZones(ctx, zones...)
	if err != nil {
		return nil, err
	}
	if requested == nil {
		return list, nil
	}
	for _, a := range list {
		if a.ID().IsEqual(*requested) {
			return list, nil
		}
	}

	a, err := agents.Get(ctx, *requested)
	if err != nil {
		return nil, err
	}
	return append(list, a), nil
}
