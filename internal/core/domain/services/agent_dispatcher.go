package services

import (
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// AgentDispatcher is a domain service that selects or validates the delivery agent
// for the dispatch legs of an order.
//
// Key responsibilities:
//   - Filtering candidates by role, availability and zone
//   - Picking a candidate for depot check-out, or validating an explicit choice
//   - Validating admin-directed assignments and self-service scans
//
// Business rules:
//   - Only available delivery agents tagged with one of the searched zones are candidates
//   - The searched zones are exactly those the caller passes; nothing widens them
//   - Selection among candidates is deterministic (lowest id first)
//   - Admin assignment checks the role only; availability is advisory there
//   - Dispatch never changes an agent's availability
//
// Example usage:
//
//	dispatcher := services.NewAgentDispatcher()
//	chosen, err := dispatcher.SelectForCheckOut(agents, nil, depotZoneID)
//	if errors.Is(err, services.ErrNoAgentAvailable) {
//	    // surface to the depot manager, optionally retry with adjacent zones
//	}
type AgentDispatcher struct{}

// NewAgentDispatcher creates a new AgentDispatcher instance.
func NewAgentDispatcher() AgentDispatcher {
	return AgentDispatcher{}
}

// Candidates returns the available delivery agents tagged with one of zoneIDs,
// sorted by id. Invalid agents are skipped.
//
// Parameters:
//   - agents: agents to consider, typically loaded by zone from the repository
//   - zoneIDs: zones to search; an empty list yields no candidates
//
// Returns:
//   - []*agent.Agent: the eligible agents, never nil
func (d AgentDispatcher) Candidates(agents []*agent.Agent, zoneIDs ...kernel.UUID) []*agent.Agent {
	candidates := make([]*agent.Agent, 0, len(agents))
	for _, a := range agents {
		if d.eligibility(a, zoneIDs) == "" {
			candidates = append(candidates, a)
		}
	}

	slices.SortFunc(candidates, func(a, b *agent.Agent) int {
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return candidates
}

// SelectForCheckOut picks the agent taking an at-depot order out for delivery.
//
// Parameters:
//   - agents: agents to consider
//   - requested: the agent the depot manager asked for, or nil to let the engine pick
//   - zoneIDs: the dispatch zones
//
// Returns:
//   - *agent.Agent: the chosen agent
//   - error: ErrNoAgentAvailable if the candidate list is empty, ErrAgentNotEligible
//     if requested is not a candidate (even when the agent is available elsewhere)
func (d AgentDispatcher) SelectForCheckOut(
	agents []*agent.Agent,
	requested *kernel.UUID,
	zoneIDs ...kernel.UUID,
) (*agent.Agent, error) {
	candidates := d.Candidates(agents, zoneIDs...)
	if len(candidates) == 0 {
		return nil, NewNoAgentAvailableError(zoneIDs...)
	}

	if requested == nil {
		return candidates[0], nil
	}

	for _, c := range candidates {
		if c.ID().IsEqual(*requested) {
			return c, nil
		}
	}

	reason := "is not an available delivery agent of the dispatch zone"
	for _, a := range agents {
		if a.Validate() == nil && a.ID().IsEqual(*requested) {
			reason = d.eligibility(a, zoneIDs)
		}
	}
	return nil, NewAgentNotEligibleError(*requested, reason)
}

// ValidateAdminAssignment checks an agent chosen by a superadmin. Only the role is
// enforced; the admin may override availability and zone.
func (d AgentDispatcher) ValidateAdminAssignment(a *agent.Agent) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.IsDeliveryAgent() {
		return NewAgentNotEligibleError(a.ID(), "is not a delivery agent")
	}
	return nil
}

// AssignmentTarget maps the status an order is in to the status a dispatch moves it
// to: ready-for-pickup to picked-up, at-depot to out-for-delivery.
//
// Returns:
//   - order.Status: the dispatch target
//   - error: IllegalTransitionError for any other status
func (d AgentDispatcher) AssignmentTarget(current order.Status) (order.Status, error) {
	switch current { //nolint:exhaustive // only dispatchable statuses
	case order.ReadyForPickup:
		return order.PickedUp, nil
	case order.AtDepot:
		return order.OutForDelivery, nil
	default:
		return order.Unknown, order.NewIllegalTransitionError(current, order.PickedUp)
	}
}

// ValidateSelfScan checks an agent scanning a parcel to assign themself. Picking up
// from a seller only requires the delivery agent role; leaving a depot additionally
// requires the agent to be available and in one of zoneIDs.
func (d AgentDispatcher) ValidateSelfScan(a *agent.Agent, current order.Status, zoneIDs ...kernel.UUID) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if _, err := d.AssignmentTarget(current); err != nil {
		return err
	}
	if !a.IsDeliveryAgent() {
		return NewAgentNotEligibleError(a.ID(), "is not a delivery agent")
	}
	if current != order.AtDepot {
		return nil
	}
	if reason := d.eligibility(a, zoneIDs); reason != "" {
		return NewAgentNotEligibleError(a.ID(), reason)
	}
	return nil
}

// eligibility returns why a is not a dispatch candidate for zoneIDs, or "".
func (d AgentDispatcher) eligibility(a *agent.Agent, zoneIDs []kernel.UUID) string {
	switch {
	case a.Validate() != nil:
		return "is not a valid agent"
	case !a.IsDeliveryAgent():
		return "is not a delivery agent"
	case !a.IsAvailable():
		return "is not available"
	}
	for _, z := range zoneIDs {
		if a.InZone(z) {
			return ""
		}
	}
	return "is outside the dispatch zone"
}
