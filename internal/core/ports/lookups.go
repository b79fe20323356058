package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// TrackingNumberIndex caches the trackingNumber -> order id mapping used by scans.
// It is a cache: a miss is not an error and callers fall back to the repository.
type TrackingNumberIndex interface {
	// Lookup returns the order id and true on a hit.
	Lookup(ctx context.Context, trackingNumber string) (kernel.UUID, bool, error)

	// Put stores the mapping.
	Put(ctx context.Context, trackingNumber string, orderID kernel.UUID) error
}

// ZoneResolver derives a delivery zone from a shipping city, standing in for the
// geocoding collaborator.
type ZoneResolver interface {
	// ZoneForCity returns nil when the city belongs to no known zone.
	ZoneForCity(ctx context.Context, city string) (*kernel.UUID, error)
}
