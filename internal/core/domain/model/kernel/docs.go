// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier for orders, agents, depots and zones
//   - Address: shipping destination; its city drives zone resolution
//   - Money: decimal amounts for order subtotals, delivery fees and totals
//
// Value objects are immutable and only valid when built through their constructors.
package kernel
