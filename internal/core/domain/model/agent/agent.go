package agent

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for agent operations.
var (
	// ErrNameIsRequired is returned when attempting to create an agent without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrAgentIsNotConstructed is returned when using an improperly initialized Agent.
	ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent or RestoreAgent constructor")
)

// Agent is the fulfillment-relevant view of a platform user: identity, role,
// availability and the zone/depot the user works in.
//
// Key responsibilities:
//   - Carrying the role used by the transition table
//   - Tracking the advisory availability flag used to filter dispatch candidates
//   - Tagging the agent with a zone and, for depot staff, a home depot
//
// Business rules:
//   - Agent must have a valid UUID, a non-empty name and a known role
//   - New agents start unavailable
//   - Availability is changed only by the agent themself; dispatch never flips it
//
// Example usage:
//
//	zoneID := kernel.NewUUID()
//	a, err := agent.NewAgent(kernel.NewUUID(), "Moussa Diop", order.RoleDeliveryAgent, &zoneID, nil)
//	if err != nil {
//	    // Handle construction error
//	}
//	_ = a.SetAvailability(a.Actor(), agent.Available)
type Agent struct {
	// id is the platform user id, shared with the auth collaborator
	id kernel.UUID
	// name is shown in tracking details and dispatch lists
	name string
	// role decides which transitions the agent may request
	role order.Role
	// availability is advisory for candidate selection
	availability Availability
	// zoneID is the catchment area the agent covers, if any
	zoneID *kernel.UUID
	// depotID is the home depot of depot staff, if any
	depotID *kernel.UUID
	// guard ensures the agent was properly constructed
	guard guard.ConstructorGuard
}

// NewAgent creates an agent that starts unavailable.
//
// Parameters:
//   - id: platform user id (must be valid UUID)
//   - name: display name (must be non-empty)
//   - role: one of the platform roles
//   - zoneID: optional zone tag
//   - depotID: optional home depot
//
// Returns:
//   - *Agent: a fully initialized agent
//   - error: aggregated validation errors
func NewAgent(id kernel.UUID, name string, role order.Role, zoneID, depotID *kernel.UUID) (*Agent, error) {
	return RestoreAgent(id, name, role, Unavailable, zoneID, depotID)
}

// RestoreAgent reconstructs an Agent from persistent storage, keeping its
// availability as stored.
func RestoreAgent(
	id kernel.UUID,
	name string,
	role order.Role,
	availability Availability,
	zoneID, depotID *kernel.UUID,
) (*Agent, error) {
	a := &Agent{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setRole(role),
		a.setAvailability(availability),
		a.setZone(zoneID),
		a.setDepot(depotID),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate checks the agent was built by NewAgent or RestoreAgent.
func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

// IsEqual compares two agents by id.
func (a *Agent) IsEqual(other *Agent) bool {
	if other == nil {
		return false
	}
	return a.id.IsEqual(other.id)
}

func (a *Agent) ID() kernel.UUID            { return a.id }
func (a *Agent) Name() string               { return a.name }
func (a *Agent) Role() order.Role           { return a.role }
func (a *Agent) Availability() Availability { return a.availability }

// ZoneID returns a copy of the zone tag, nil when the agent is not zoned.
func (a *Agent) ZoneID() *kernel.UUID {
	if a.zoneID == nil {
		return nil
	}
	z := *a.zoneID
	return &z
}

// DepotID returns a copy of the home depot, nil for agents without one.
func (a *Agent) DepotID() *kernel.UUID {
	if a.depotID == nil {
		return nil
	}
	d := *a.depotID
	return &d
}

// Actor returns the identity the agent acts under in transitions.
func (a *Agent) Actor() order.Actor {
	return order.Actor{UserID: a.id, Role: a.role}
}

// IsDeliveryAgent reports whether the agent can carry parcels.
func (a *Agent) IsDeliveryAgent() bool {
	return a.role == order.RoleDeliveryAgent
}

// IsAvailable reports the advisory availability flag.
func (a *Agent) IsAvailable() bool {
	return a.availability == Available
}

// InZone reports whether the agent is tagged with zoneID. Untagged agents match no zone.
func (a *Agent) InZone(zoneID kernel.UUID) bool {
	return a.zoneID != nil && a.zoneID.IsEqual(zoneID)
}

// SetAvailability toggles the agent's availability on behalf of actor.
//
// Parameters:
//   - actor: the authenticated caller; must be the agent themself
//   - availability: target availability
//
// Returns:
//   - error: order.ErrForbidden when someone else tries, value error for an unknown availability
//
// Example:
//
//	if err := a.SetAvailability(actor, agent.Available); errors.Is(err, order.ErrForbidden) {
//	    // someone tried to toggle another agent
//	}
func (a *Agent) SetAvailability(actor order.Actor, availability Availability) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !actor.UserID.IsEqual(a.id) {
		return fmt.Errorf("%w: only the agent can change their own availability", order.ErrForbidden)
	}
	return a.setAvailability(availability)
}

func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Agent) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	a.name = name
	return nil
}

func (a *Agent) setRole(role order.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}

func (a *Agent) setAvailability(availability Availability) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	a.availability = availability
	return nil
}

func (a *Agent) setZone(zoneID *kernel.UUID) error {
	if zoneID == nil {
		a.zoneID = nil
		return nil
	}
	if err := zoneID.Validate(); err != nil {
		return err
	}
	z := *zoneID
	a.zoneID = &z
	return nil
}

func (a *Agent) setDepot(depotID *kernel.UUID) error {
	if depotID == nil {
		a.depotID = nil
		return nil
	}
	if err := depotID.Validate(); err != nil {
		return err
	}
	d := *depotID
	a.depotID = &d
	return nil
}
