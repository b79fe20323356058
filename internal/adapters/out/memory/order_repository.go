package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over a Store.
type OrderRepository struct {
	store *Store
	tx    *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	snap := aggregate.Snapshot()
	return r.tx.write(func(s *Store) (func(), error) {
		if _, ok := s.orders[snap.ID]; ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order %s already exists", snap.ID))
		}
		if _, ok := s.byTracking[snap.TrackingNumber]; ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("trackingNumber",
				fmt.Errorf("tracking number %s is already used", snap.TrackingNumber))
		}
		s.orders[snap.ID] = snap
		s.byTracking[snap.TrackingNumber] = snap.ID
		return func() {
			delete(s.orders, snap.ID)
			delete(s.byTracking, snap.TrackingNumber)
		}, nil
	})
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var (
		snap order.Snapshot
		ok   bool
	)
	r.store.read(func(s *Store) {
		snap, ok = s.orders[id]
	})
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(snap)
}

func (r *OrderRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*order.Order, error) {
	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))

	var (
		id kernel.UUID
		ok bool
	)
	r.store.read(func(s *Store) {
		id, ok = s.byTracking[trackingNumber]
	})
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", trackingNumber)
	}
	return r.Get(ctx, id)
}

// UpdateIfStatus checks the condition now and again when the unit of work commits.
func (r *OrderRepository) UpdateIfStatus(
	_ context.Context,
	aggregate *order.Order,
	expectedStatus order.Status,
	expectedVersion int,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	snap := aggregate.Snapshot()
	check := func(s *Store) (order.Snapshot, error) {
		stored, ok := s.orders[snap.ID]
		if !ok {
			return order.Snapshot{}, errs.NewObjectNotFoundError("order", snap.ID.String())
		}
		if stored.Status != expectedStatus || stored.Version != expectedVersion {
			return order.Snapshot{}, order.NewStaleStateError(snap.ID, expectedStatus,
				fmt.Errorf("stored order is %s at version %d", stored.Status, stored.Version))
		}
		return stored, nil
	}

	var err error
	r.store.read(func(s *Store) {
		_, err = check(s)
	})
	if err != nil {
		return err
	}

	cas := func(s *Store) (func(), error) {
		stored, checkErr := check(s)
		if checkErr != nil {
			return nil, checkErr
		}
		s.orders[snap.ID] = snap
		return func() { s.orders[snap.ID] = stored }, nil
	}

	return r.tx.write(cas)
}

func (r *OrderRepository) AppendDispute(_ context.Context, orderID kernel.UUID, message order.DisputeMessage) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return r.tx.write(func(s *Store) (func(), error) {
		stored, ok := s.orders[orderID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("order", orderID.String())
		}
		updated := stored
		updated.DisputeLog = append(append([]order.DisputeMessage(nil), stored.DisputeLog...), message)
		s.orders[orderID] = updated
		return func() { s.orders[orderID] = stored }, nil
	})
}

func (r *OrderRepository) ListByDepotAndStatus(
	_ context.Context,
	depotID kernel.UUID,
	status order.Status,
) ([]*order.Order, error) {
	snaps := r.collect(func(snap order.Snapshot) bool {
		return snap.Status == status && snap.DepotID != nil && snap.DepotID.IsEqual(depotID)
	})
	sort.SliceStable(snaps, func(i, j int) bool {
		return checkedInAt(snaps[i]).Before(checkedInAt(snaps[j]))
	})
	return restoreAll(snaps)
}

func (r *OrderRepository) ListInStatusSince(
	_ context.Context,
	status order.Status,
	before time.Time,
) ([]*order.Order, error) {
	snaps := r.collect(func(snap order.Snapshot) bool {
		if snap.Status != status || len(snap.StatusChangeLog) == 0 {
			return false
		}
		return snap.StatusChangeLog[len(snap.StatusChangeLog)-1].At.Before(before)
	})
	sort.SliceStable(snaps, func(i, j int) bool {
		return snaps[i].CreatedAt.Before(snaps[j].CreatedAt)
	})
	return restoreAll(snaps)
}

func (r *OrderRepository) collect(match func(order.Snapshot) bool) []order.Snapshot {
	var out []order.Snapshot
	r.store.read(func(s *Store) {
		for _, snap := range s.orders {
			if match(snap) {
				out = append(out, snap)
			}
		}
	})
	return out
}

func restoreAll(snaps []order.Snapshot) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(snaps))
	for _, snap := range snaps {
		o, err := order.RestoreOrder(snap)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func checkedInAt(snap order.Snapshot) time.Time {
	if snap.CheckedInAt == nil {
		return time.Time{}
	}
	return *snap.CheckedInAt
}
