package memory

import (
	"context"
	"fmt"
	"sort"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/depot"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// AgentRepository implements ports.AgentRepository over a Store.
type AgentRepository struct {
	store *Store
	tx    *UnitOfWork
}

func (r *AgentRepository) Add(_ context.Context, a *agent.Agent) error {
	if err := a.Validate(); err != nil {
		return err
	}

	id, rec := a.ID(), agentToRecord(a)
	return r.tx.write(func(s *Store) (func(), error) {
		if _, ok := s.agents[id]; ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("agent %s already exists", id))
		}
		s.agents[id] = rec
		return func() { delete(s.agents, id) }, nil
	})
}

func (r *AgentRepository) Update(_ context.Context, a *agent.Agent) error {
	if err := a.Validate(); err != nil {
		return err
	}

	id, rec := a.ID(), agentToRecord(a)
	return r.tx.write(func(s *Store) (func(), error) {
		stored, ok := s.agents[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("agent", id.String())
		}
		s.agents[id] = rec
		return func() { s.agents[id] = stored }, nil
	})
}

func (r *AgentRepository) Get(_ context.Context, id kernel.UUID) (*agent.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var (
		rec agentRecord
		ok  bool
	)
	r.store.read(func(s *Store) {
		rec, ok = s.agents[id]
	})
	if !ok {
		return nil, errs.NewObjectNotFoundError("agent", id.String())
	}
	return agentFromRecord(id, rec)
}

func (r *AgentRepository) ListDeliveryAgentsInZones(_ context.Context, zoneIDs ...kernel.UUID) ([]*agent.Agent, error) {
	if len(zoneIDs) == 0 {
		return nil, nil
	}

	type entry struct {
		id  kernel.UUID
		rec agentRecord
	}
	var found []entry
	r.store.read(func(s *Store) {
		for id, rec := range s.agents {
			if rec.role != order.RoleDeliveryAgent || rec.zoneID == nil {
				continue
			}
			for _, z := range zoneIDs {
				if rec.zoneID.IsEqual(z) {
					found = append(found, entry{id: id, rec: rec})
					break
				}
			}
		}
	})
	sort.Slice(found, func(i, j int) bool { return found[i].id.String() < found[j].id.String() })

	agents := make([]*agent.Agent, 0, len(found))
	for _, e := range found {
		a, err := agentFromRecord(e.id, e.rec)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}

func agentToRecord(a *agent.Agent) agentRecord {
	return agentRecord{
		name:         a.Name(),
		role:         a.Role(),
		availability: a.Availability(),
		zoneID:       a.ZoneID(),
		depotID:      a.DepotID(),
	}
}

func agentFromRecord(id kernel.UUID, rec agentRecord) (*agent.Agent, error) {
	return agent.RestoreAgent(id, rec.name, rec.role, rec.availability, rec.zoneID, rec.depotID)
}

// DepotRepository implements ports.DepotRepository over a Store.
type DepotRepository struct {
	store *Store
	tx    *UnitOfWork
}

func (r *DepotRepository) Add(_ context.Context, d *depot.Depot) error {
	if err := d.Validate(); err != nil {
		return err
	}

	id := d.ID()
	rec := depotRecord{name: d.Name(), zoneID: d.ZoneID(), managerID: d.ManagerID(), layout: d.Layout()}
	return r.tx.write(func(s *Store) (func(), error) {
		if _, ok := s.depots[id]; ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("depot %s already exists", id))
		}
		s.depots[id] = rec
		return func() { delete(s.depots, id) }, nil
	})
}

func (r *DepotRepository) Get(_ context.Context, id kernel.UUID) (*depot.Depot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var (
		rec depotRecord
		ok  bool
	)
	r.store.read(func(s *Store) {
		rec, ok = s.depots[id]
	})
	if !ok {
		return nil, errs.NewObjectNotFoundError("depot", id.String())
	}
	return depot.NewDepot(id, rec.name, rec.zoneID, rec.managerID, rec.layout)
}
