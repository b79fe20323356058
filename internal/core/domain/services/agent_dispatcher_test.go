package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAgent(t *testing.T, role order.Role, availability agent.Availability, zoneID *kernel.UUID) *agent.Agent {
	t.Helper()
	a, err := agent.RestoreAgent(kernel.NewUUID(), "Agent "+string(role), role, availability, zoneID, nil)
	require.NoError(t, err)
	return a
}

func TestAgentDispatcher_Candidates(t *testing.T) {
	z1 := kernel.NewUUID()
	z2 := kernel.NewUUID()

	inZone1 := newAgent(t, order.RoleDeliveryAgent, agent.Available, &z1)
	alsoZone1 := newAgent(t, order.RoleDeliveryAgent, agent.Available, &z1)
	busyZone1 := newAgent(t, order.RoleDeliveryAgent, agent.Unavailable, &z1)
	depotStaff := newAgent(t, order.RoleDepotAgent, agent.Available, &z1)
	inZone2 := newAgent(t, order.RoleDeliveryAgent, agent.Available, &z2)
	unzoned := newAgent(t, order.RoleDeliveryAgent, agent.Available, nil)

	all := []*agent.Agent{inZone2, busyZone1, inZone1, depotStaff, unzoned, alsoZone1}
	dispatcher := services.NewAgentDispatcher()

	t.Run("filters by role availability and zone", func(t *testing.T) {
		got := dispatcher.Candidates(all, z1)

		require.Len(t, got, 2)
		ids := []string{got[0].ID().String(), got[1].ID().String()}
		assert.Contains(t, ids, inZone1.ID().String())
		assert.Contains(t, ids, alsoZone1.ID().String())
		assert.Less(t, ids[0], ids[1], "candidates are sorted by id")
	})

	t.Run("explicit widening includes named zones only", func(t *testing.T) {
		got := dispatcher.Candidates(all, z1, z2)

		assert.Len(t, got, 3)
	})

	t.Run("no zone means no candidate", func(t *testing.T) {
		assert.Empty(t, dispatcher.Candidates(all))
	})

	t.Run("invalid agents are skipped", func(t *testing.T) {
		assert.Empty(t, dispatcher.Candidates([]*agent.Agent{{}}, z1))
	})
}

func TestAgentDispatcher_SelectForCheckOut(t *testing.T) {
	z1 := kernel.NewUUID()
	z2 := kernel.NewUUID()
	dispatcher := services.NewAgentDispatcher()

	t.Run("no agent in depot zone", func(t *testing.T) {
		c := newAgent(t, order.RoleDeliveryAgent, agent.Available, &z2)

		got, err := dispatcher.SelectForCheckOut([]*agent.Agent{c}, nil, z1)

		require.ErrorIs(t, err, services.ErrNoAgentAvailable)
		assert.Nil(t, got)
		var noAgent *services.NoAgentAvailableError
		require.ErrorAs(t, err, &noAgent)
		assert.Equal(t, []kernel.UUID{z1}, noAgent.ZoneIDs)
	})

	t.Run("explicit agent from another zone is refused", func(t *testing.T) {
		local := newAgent(t, order.RoleDeliveryAgent, agent.Available, &z1)
		foreign := newAgent(t, order.RoleDeliveryAgent, agent.Available, &z2)
		requested := foreign.ID()

		got, err := dispatcher.SelectForCheckOut([]*agent.Agent{local, foreign}, &requested, z1)

		require.ErrorIs(t, err, services.ErrAgentNotEligible)
		assert.Nil(t, got)
		assert.Contains(t, err.Error(), "outside the dispatch zone")
	})

	t.Run("explicit unavailable agent is refused", func(t *testing.T) {
		local := newAgent(t, order.RoleDeliveryAgent, agent.Available, &z1)
		resting := newAgent(t, order.RoleDeliveryAgent, agent.Unavailable, &z1)
		requested := resting.ID()

		_, err := dispatcher.SelectForCheckOut([]*agent.Agent{local, resting}, &requested, z1)

		require.ErrorIs(t, err, services.ErrAgentNotEligible)
		assert.Contains(t, err.Error(), "not available")
	})

	t.Run("explicit eligible agent is kept", func(t *testing.T) {
		a := newAgent(t, order.RoleDeliveryAgent, agent.Available, &z1)
		b := newAgent(t, order.RoleDeliveryAgent, agent.Available, &z1)
		requested := b.ID()

		got, err := dispatcher.SelectForCheckOut([]*agent.Agent{a, b}, &requested, z1)

		require.NoError(t, err)
		assert.True(t, got.IsEqual(b))
	})

	t.Run("engine picks lowest id when none requested", func(t *testing.T) {
		a := newAgent(t, order.RoleDeliveryAgent, agent.Available, &z1)
		b := newAgent(t, order.RoleDeliveryAgent, agent.Available, &z1)
		want := a
		if b.ID().String() < a.ID().String() {
			want = b
		}

		got, err := dispatcher.SelectForCheckOut([]*agent.Agent{a, b}, nil, z1)

		require.NoError(t, err)
		assert.True(t, got.IsEqual(want))
		assert.True(t, got.IsAvailable(), "dispatch leaves availability untouched")
	})
}

func TestAgentDispatcher_ValidateAdminAssignment(t *testing.T) {
	dispatcher := services.NewAgentDispatcher()

	resting := newAgent(t, order.RoleDeliveryAgent, agent.Unavailable, nil)
	require.NoError(t, dispatcher.ValidateAdminAssignment(resting), "availability is advisory for admins")

	manager := newAgent(t, order.RoleDepotManager, agent.Available, nil)
	require.ErrorIs(t, dispatcher.ValidateAdminAssignment(manager), services.ErrAgentNotEligible)
}

func TestAgentDispatcher_ValidateSelfScan(t *testing.T) {
	z1 := kernel.NewUUID()
	z2 := kernel.NewUUID()
	dispatcher := services.NewAgentDispatcher()

	tests := []struct {
		name    string
		agent   *agent.Agent
		status  order.Status
		wantErr error
	}{
		{"pickup needs only the role", newAgent(t, order.RoleDeliveryAgent, agent.Unavailable, nil), order.ReadyForPickup, nil},
		{"depot leg in zone", newAgent(t, order.RoleDeliveryAgent, agent.Available, &z1), order.AtDepot, nil},
		{"depot leg outside zone", newAgent(t, order.RoleDeliveryAgent, agent.Available, &z2), order.AtDepot, services.ErrAgentNotEligible},
		{"depot leg unavailable", newAgent(t, order.RoleDeliveryAgent, agent.Unavailable, &z1), order.AtDepot, services.ErrAgentNotEligible},
		{"wrong role", newAgent(t, order.RoleSeller, agent.Available, &z1), order.ReadyForPickup, services.ErrAgentNotEligible},
		{"already picked up", newAgent(t, order.RoleDeliveryAgent, agent.Available, &z1), order.PickedUp, order.ErrIllegalTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dispatcher.ValidateSelfScan(tt.agent, tt.status, z1)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAgentDispatcher_AssignmentTarget(t *testing.T) {
	dispatcher := services.NewAgentDispatcher()

	to, err := dispatcher.AssignmentTarget(order.ReadyForPickup)
	require.NoError(t, err)
	assert.Equal(t, order.PickedUp, to)

	to, err = dispatcher.AssignmentTarget(order.AtDepot)
	require.NoError(t, err)
	assert.Equal(t, order.OutForDelivery, to)

	_, err = dispatcher.AssignmentTarget(order.Delivered)
	require.ErrorIs(t, err, order.ErrIllegalTransition)
}
