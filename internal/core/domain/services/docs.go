// Package services provides domain services that coordinate the order aggregate
// with agents and depots. They validate and prepare transitions but never persist
// anything.
//
// The package includes:
//   - AgentDispatcher: candidate filtering by zone and availability, agent selection
//     for check-out, validation of admin assignments and self-service scans
//   - DepotWorkflow: check-in and check-out payloads, dispatch zones and the
//     blocking/advisory discrepancy policy
//   - FailurePolicy: reroute or return after a failed delivery, and detection of
//     orders left in delivery-failed
//
// Errors ErrNoAgentAvailable and ErrAgentNotEligible are surfaced to callers as is;
// no service widens a zone search on its own.
package services
