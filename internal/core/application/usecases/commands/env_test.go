package commands_test

import (
	"context"
	"sync"
	"testing"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/depot"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/order/ordertest"

	"github.com/stretchr/testify/require"
)

type orderUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (a orderUoWFactory) Create() commands.OrderUoW { return a.f.Create() }

type uowFactory struct{ f *memory.UnitOfWorkFactory }

func (a uowFactory) Create() commands.UoW { return a.f.Create() }

type outboxUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (a outboxUoWFactory) Create() commands.OutboxUoW { return a.f.Create() }

type agentUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (a agentUoWFactory) Create() commands.AgentUoW { return a.f.Create() }

type depotUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (a depotUoWFactory) Create() commands.DepotUoW { return a.f.Create() }

type cityZones map[string]kernel.UUID

func (z cityZones) ZoneForCity(_ context.Context, city string) (*kernel.UUID, error) {
	id, ok := z[city]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

type trackingIndex struct {
	mu      sync.Mutex
	entries map[string]kernel.UUID
}

func newTrackingIndex() *trackingIndex {
	return &trackingIndex{entries: make(map[string]kernel.UUID)}
}

func (i *trackingIndex) Lookup(_ context.Context, trackingNumber string) (kernel.UUID, bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	id, ok := i.entries[trackingNumber]
	return id, ok, nil
}

func (i *trackingIndex) Put(_ context.Context, trackingNumber string, orderID kernel.UUID) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries[trackingNumber] = orderID
	return nil
}

// env wires the handlers to an in-memory store. The fixture depot sits in zone.
type env struct {
	fx     ordertest.Fixture
	uows   *memory.UnitOfWorkFactory
	zone   kernel.UUID
	policy commands.RetryPolicy
}

func newEnv(t *testing.T) *env {
	t.Helper()
	fx := ordertest.NewFixture()
	e := &env{
		fx:     fx,
		uows:   memory.NewUnitOfWorkFactory(memory.NewStore()),
		zone:   kernel.NewUUID(),
		policy: fixedPolicy(fx),
	}

	d, err := depot.NewDepot(fx.DepotID, "Dakar Plateau", &e.zone, nil, []string{"A-01", "A-02"})
	require.NoError(t, err)
	require.NoError(t, e.uows.Create().DepotRepository().Add(t.Context(), d))
	return e
}

func (e *env) orderUoWs() commands.OrderUoWFactory { return orderUoWFactory{e.uows} }
func (e *env) allUoWs() commands.UoWFactory        { return uowFactory{e.uows} }
func (e *env) agentUoWs() commands.AgentUoWFactory { return agentUoWFactory{e.uows} }
func (e *env) depotUoWs() commands.DepotUoWFactory { return depotUoWFactory{e.uows} }

func (e *env) seed(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o := e.fx.OrderIn(t, status)
	require.NoError(t, e.uows.Create().OrderRepository().Add(t.Context(), o))
	return o
}

func (e *env) load(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	o, err := e.uows.Create().OrderRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return o
}

func (e *env) addAgent(
	t *testing.T,
	id kernel.UUID,
	role order.Role,
	zoneID, depotID *kernel.UUID,
	available bool,
) *agent.Agent {
	t.Helper()
	availability := agent.Unavailable
	if available {
		availability = agent.Available
	}
	a, err := agent.RestoreAgent(id, "Agent "+id.String()[:8], role, availability, zoneID, depotID)
	require.NoError(t, err)
	require.NoError(t, e.uows.Create().AgentRepository().Add(t.Context(), a))
	return a
}

func (e *env) outbox(t *testing.T) []order.Event {
	t.Helper()
	events, err := e.uows.Create().OutboxRepository().ListUnpublished(t.Context(), 0)
	require.NoError(t, err)
	return events
}
