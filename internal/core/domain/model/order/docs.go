// Package order implements the Order aggregate of the fulfillment service: the
// lifecycle state machine from checkout confirmation to a terminal outcome.
//
// The package includes:
//   - Order: the aggregate root owning status, version, agent and depot data and the ledgers
//   - Status and the transition table mapping each legal (from, to) pair to the roles allowed to perform it
//   - TrackingEvent and StatusChange: the two append-only ledgers
//   - Discrepancy, DeliveryFailure, RefundRequest and DisputeMessage side records
//   - Event: domain events collected by the aggregate and drained with PullEvents
//
// Key business rules:
//   - A transition is legal only if its pair is in the table and the actor's role is listed for it
//   - Delivered, Cancelled, Refunded and Returned have no outgoing transitions, except
//     Delivered -> RefundRequested
//   - Each successful transition appends exactly one TrackingEvent and one StatusChange
//   - After N transitions the status change log holds N entries and the last one
//     carries the current status
//   - Version increments on every persisted mutation; repositories use (status, version)
//     as the compare-and-swap key
//
// Concurrency control lives in the repositories and command handlers: the aggregate
// itself is not safe for concurrent use.
package order
