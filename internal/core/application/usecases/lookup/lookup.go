// Package lookup holds the read paths shared by command and query handlers.
package lookup

import (
	"context"
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/depot"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// OrderByTrackingNumber reads the index first and falls back to the repository.
// The index is a cache: its errors and misses only cost the fallback. index may be nil.
// Tracking numbers are matched trimmed and upper-cased, as the repositories store them.
func OrderByTrackingNumber(
	ctx context.Context,
	orders ports.OrderRepository,
	index ports.TrackingNumberIndex,
	trackingNumber string,
) (*order.Order, error) {
	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))
	if index != nil {
		if id, ok, err := index.Lookup(ctx, trackingNumber); err == nil && ok {
			if o, getErr := orders.Get(ctx, id); getErr == nil {
				return o, nil
			}
		}
	}

	o, err := orders.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	if index != nil {
		_ = index.Put(ctx, trackingNumber, o.ID())
	}
	return o, nil
}

// DispatchZones resolves the zones searched for the depot-to-delivery leg of o:
// the zone of the depot it was checked in at, or the zone of its shipping city.
// resolver may be nil.
func DispatchZones(
	ctx context.Context,
	depots ports.DepotRepository,
	resolver ports.ZoneResolver,
	workflow services.DepotWorkflow,
	o *order.Order,
) ([]kernel.UUID, error) {
	var d *depot.Depot
	if depotID := o.DepotID(); depotID != nil {
		loaded, err := depots.Get(ctx, *depotID)
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}
		d = loaded
	}

	var cityZone *kernel.UUID
	if (d == nil || d.ZoneID() == nil) && resolver != nil {
		z, err := resolver.ZoneForCity(ctx, o.ShippingAddress().City())
		if err != nil {
			return nil, err
		}
		cityZone = z
	}

	return workflow.DispatchZones(d, cityZone), nil
}
