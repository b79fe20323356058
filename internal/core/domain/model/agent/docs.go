// Package agent models the platform users that act on orders in the field or at
// depots: delivery agents, depot agents and depot managers, plus the superadmin.
//
// The package includes:
//   - Agent: identity, role, zone and home depot of a user
//   - Availability: the advisory flag used to filter dispatch candidates
//
// Key business rules:
//   - Agents start unavailable and toggle availability themselves
//   - Availability is never changed as a side effect of dispatch
//   - An agent without a zone is never a candidate for zone-constrained dispatch
package agent
