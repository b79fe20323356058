package queries

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderDetails is the full read model of an order: checkout data, current
// assignment, both ledgers and the incidents attached along the way.
//
// Example:
//
//	details := OrderDetails{
//	    ID:             kernel.NewUUID(),
//	    TrackingNumber: "TRK-550E8400",
//	    Status:         order.AtDepot,
//	    Version:        3,
//	}
type OrderDetails struct {
	ID             kernel.UUID
	TrackingNumber string
	CustomerID     kernel.UUID
	SellerID       kernel.UUID

	Items       []order.Item
	Subtotal    kernel.Money
	DeliveryFee kernel.Money
	Total       kernel.Money

	ShippingAddress kernel.Address
	DeliveryMethod  order.DeliveryMethod
	PickupPointID   *kernel.UUID

	Status  order.Status
	Version int
	// NextStatuses lists the statuses the order may move to, whatever the role.
	NextStatuses []order.Status

	AgentID           *kernel.UUID
	DepotID           *kernel.UUID
	StorageLocationID string
	CheckedInAt       *time.Time

	TrackingHistory []order.TrackingEvent
	StatusChangeLog []order.StatusChange

	Discrepancy     *order.Discrepancy
	DeliveryFailure *order.DeliveryFailure
	RefundRequest   *order.RefundRequest
	DisputeLog      []order.DisputeMessage

	CreatedAt time.Time
}

// NewOrderDetails builds the read model of o. HTTP handlers use it for command
// results as well, so every endpoint returns the same order representation.
func NewOrderDetails(o *order.Order) OrderDetails {
	return OrderDetails{
		ID:                o.ID(),
		TrackingNumber:    o.TrackingNumber(),
		CustomerID:        o.CustomerID(),
		SellerID:          o.SellerID(),
		Items:             o.Items(),
		Subtotal:          o.Subtotal(),
		DeliveryFee:       o.DeliveryFee(),
		Total:             o.Total(),
		ShippingAddress:   o.ShippingAddress(),
		DeliveryMethod:    o.DeliveryMethod(),
		PickupPointID:     o.PickupPointID(),
		Status:            o.Status(),
		Version:           o.Version(),
		NextStatuses:      order.NextStatuses(o.Status()),
		AgentID:           o.AgentID(),
		DepotID:           o.DepotID(),
		StorageLocationID: o.StorageLocationID(),
		CheckedInAt:       o.CheckedInAt(),
		TrackingHistory:   o.TrackingHistory(),
		StatusChangeLog:   o.StatusChangeLog(),
		Discrepancy:       o.Discrepancy(),
		DeliveryFailure:   o.DeliveryFailure(),
		RefundRequest:     o.RefundRequest(),
		DisputeLog:        o.DisputeLog(),
		CreatedAt:         o.CreatedAt(),
	}
}

// checkVisible keeps customers and sellers to their own orders.
func checkVisible(o *order.Order, actor order.Actor) error {
	switch actor.Role { //nolint:exhaustive // staff roles see every order
	case order.RoleCustomer:
		if !o.CustomerID().IsEqual(actor.UserID) {
			return fmt.Errorf("%w: order belongs to another customer", order.ErrForbidden)
		}
	case order.RoleSeller:
		if !o.SellerID().IsEqual(actor.UserID) {
			return fmt.Errorf("%w: order belongs to another seller", order.ErrForbidden)
		}
	}
	return nil
}
