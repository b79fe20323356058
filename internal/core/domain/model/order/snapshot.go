package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Snapshot is the persisted form of an Order. Repositories write it and read it
// back through RestoreOrder; it carries no behaviour.
type Snapshot struct {
	ID             kernel.UUID
	TrackingNumber string
	CustomerID     kernel.UUID
	SellerID       kernel.UUID

	Items       []Item
	Subtotal    kernel.Money
	DeliveryFee kernel.Money
	Total       kernel.Money

	ShippingAddress kernel.Address
	DeliveryMethod  DeliveryMethod
	PickupPointID   *kernel.UUID

	Status  Status
	Version int

	AgentID           *kernel.UUID
	DepotID           *kernel.UUID
	StorageLocationID string
	CheckedInAt       *time.Time
	CheckedInBy       *kernel.UUID

	TrackingHistory []TrackingEvent
	StatusChangeLog []StatusChange

	Discrepancy     *Discrepancy
	DeliveryFailure *DeliveryFailure
	RefundRequest   *RefundRequest
	DisputeLog      []DisputeMessage

	CreatedAt time.Time
}

// Snapshot copies the order state for persistence. Pending events are not part of it.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                o.id,
		TrackingNumber:    o.trackingNumber,
		CustomerID:        o.customerID,
		SellerID:          o.sellerID,
		Items:             o.Items(),
		Subtotal:          o.subtotal,
		DeliveryFee:       o.deliveryFee,
		Total:             o.total,
		ShippingAddress:   o.shippingAddress,
		DeliveryMethod:    o.deliveryMethod,
		PickupPointID:     o.PickupPointID(),
		Status:            o.status,
		Version:           o.version,
		AgentID:           o.AgentID(),
		DepotID:           o.DepotID(),
		StorageLocationID: o.storageLocationID,
		CheckedInAt:       o.CheckedInAt(),
		CheckedInBy:       o.CheckedInBy(),
		TrackingHistory:   o.TrackingHistory(),
		StatusChangeLog:   o.StatusChangeLog(),
		Discrepancy:       o.Discrepancy(),
		DeliveryFailure:   o.DeliveryFailure(),
		RefundRequest:     o.RefundRequest(),
		DisputeLog:        o.DisputeLog(),
		CreatedAt:         o.createdAt,
	}
}

// RestoreOrder rebuilds an order from storage. It refuses snapshots whose status
// disagrees with the last audit entry, since that would break the ledger invariant.
func RestoreOrder(s Snapshot) (*Order, error) {
	var versionErr, logErr error
	if s.Version < 1 {
		versionErr = errs.NewValueIsOutOfRangeError("version", s.Version, 1, "unbounded")
	}
	if len(s.StatusChangeLog) == 0 {
		if s.Status != Confirmed {
			logErr = errs.NewValueIsInvalidErrorWithCause("status",
				fmt.Errorf("status %s has no audit entry", s.Status))
		}
	} else if last := s.StatusChangeLog[len(s.StatusChangeLog)-1]; last.Status != s.Status {
		logErr = errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("status %s does not match last audit entry %s", s.Status, last.Status))
	}
	if err := errors.Join(s.ID.Validate(), s.Status.Validate(), versionErr, logErr); err != nil {
		return nil, err
	}

	o := &Order{
		id:                s.ID,
		trackingNumber:    s.TrackingNumber,
		customerID:        s.CustomerID,
		sellerID:          s.SellerID,
		items:             slices.Clone(s.Items),
		subtotal:          s.Subtotal,
		deliveryFee:       s.DeliveryFee,
		total:             s.Total,
		shippingAddress:   s.ShippingAddress,
		deliveryMethod:    s.DeliveryMethod,
		pickupPointID:     copyID(s.PickupPointID),
		status:            s.Status,
		version:           s.Version,
		agentID:           copyID(s.AgentID),
		depotID:           copyID(s.DepotID),
		storageLocationID: s.StorageLocationID,
		checkedInBy:       copyID(s.CheckedInBy),
		ledger: ledger{
			tracking: slices.Clone(s.TrackingHistory),
			changes:  slices.Clone(s.StatusChangeLog),
		},
		disputeLog: slices.Clone(s.DisputeLog),
		createdAt:  s.CreatedAt,
		guard:      guard.NewConstructorGuard(),
	}
	if s.CheckedInAt != nil {
		t := *s.CheckedInAt
		o.checkedInAt = &t
	}
	if s.Discrepancy != nil {
		d := *s.Discrepancy
		o.discrepancy = &d
	}
	if s.DeliveryFailure != nil {
		f := *s.DeliveryFailure
		o.deliveryFailure = &f
	}
	if s.RefundRequest != nil {
		r := *s.RefundRequest
		r.EvidenceURLs = slices.Clone(r.EvidenceURLs)
		o.refundRequest = &r
	}

	return o, nil
}
