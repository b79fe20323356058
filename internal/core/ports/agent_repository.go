package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/depot"
	"fulfillment/internal/core/domain/model/kernel"
)

// AgentRepository persists the agent view of platform users.
type AgentRepository interface {
	Add(ctx context.Context, a *agent.Agent) error

	// Update persists availability changes.
	Update(ctx context.Context, a *agent.Agent) error

	// Get returns errs.ErrObjectNotFound for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// ListDeliveryAgentsInZones returns every delivery agent tagged with one of
	// zoneIDs, whatever their availability. An empty zone list returns nothing.
	ListDeliveryAgentsInZones(ctx context.Context, zoneIDs ...kernel.UUID) ([]*agent.Agent, error)
}

// DepotRepository persists pickup points.
type DepotRepository interface {
	Add(ctx context.Context, d *depot.Depot) error

	// Get returns errs.ErrObjectNotFound for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*depot.Depot, error)
}
