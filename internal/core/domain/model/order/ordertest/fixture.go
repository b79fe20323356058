// Package ordertest builds orders in any lifecycle status for tests of packages
// that consume the order aggregate.
package ordertest

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

// Fixture holds the parties of one test order.
type Fixture struct {
	CustomerID kernel.UUID
	SellerID   kernel.UUID
	AgentID    kernel.UUID
	DepotID    kernel.UUID
	StaffID    kernel.UUID
	City       string
	Now        time.Time
}

// NewFixture returns a fixture with fresh identities, located in Dakar.
func NewFixture() Fixture {
	return Fixture{
		CustomerID: kernel.NewUUID(),
		SellerID:   kernel.NewUUID(),
		AgentID:    kernel.NewUUID(),
		DepotID:    kernel.NewUUID(),
		StaffID:    kernel.NewUUID(),
		City:       "Dakar",
		Now:        time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

// Details returns valid checkout details for a home delivery in the fixture city.
func (f Fixture) Details(t *testing.T) order.CheckoutDetails {
	t.Helper()

	price, err := kernel.MoneyFromString("4500.00")
	require.NoError(t, err)
	fee, err := kernel.MoneyFromString("1000.00")
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Wax fabric 6 yards", 2, price)
	require.NoError(t, err)
	address, err := kernel.NewAddress("12 rue Carnot", f.City, "10200")
	require.NoError(t, err)

	return order.CheckoutDetails{
		CustomerID:      f.CustomerID,
		SellerID:        f.SellerID,
		Items:           []order.Item{item},
		DeliveryFee:     fee,
		ShippingAddress: address,
		DeliveryMethod:  order.DeliveryHomeDelivery,
	}
}

// NewOrder returns a freshly confirmed order.
func (f Fixture) NewOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), f.Details(t), f.Now)
	require.NoError(t, err)
	return o
}

// Actor returns an actor of the given role whose identity matches the fixture
// parties, so per-order scope checks pass.
func (f Fixture) Actor(role order.Role) order.Actor {
	switch role { //nolint:exhaustive // staff roles share one identity
	case order.RoleCustomer:
		return order.Actor{UserID: f.CustomerID, Role: role}
	case order.RoleSeller:
		return order.Actor{UserID: f.SellerID, Role: role}
	case order.RoleDeliveryAgent:
		return order.Actor{UserID: f.AgentID, Role: role}
	default:
		return order.Actor{UserID: f.StaffID, Role: role}
	}
}

// Payload carries everything any transition may require.
func (f Fixture) Payload() order.Payload {
	agentID := f.AgentID
	depotID := f.DepotID
	return order.Payload{
		AgentID:           &agentID,
		DepotID:           &depotID,
		StorageLocationID: "A-01",
		RecipientName:     "Awa Ndiaye",
		FailureReason:     order.FailureClientAbsent,
		DiscrepancyKind:   order.DiscrepancyDamagedSeal,
		DiscrepancyReason: "seal torn on arrival",
		RefundReason:      "damaged",
	}
}

// paths lists, for each status, the statuses to walk through from confirmed.
var paths = map[order.Status][]order.Status{
	order.Confirmed:       {},
	order.ReadyForPickup:  {order.ReadyForPickup},
	order.PickedUp:        {order.ReadyForPickup, order.PickedUp},
	order.AtDepot:         {order.ReadyForPickup, order.PickedUp, order.AtDepot},
	order.OutForDelivery:  {order.ReadyForPickup, order.PickedUp, order.AtDepot, order.OutForDelivery},
	order.Delivered:       {order.ReadyForPickup, order.PickedUp, order.AtDepot, order.OutForDelivery, order.Delivered},
	order.DeliveryFailed:  {order.ReadyForPickup, order.PickedUp, order.AtDepot, order.OutForDelivery, order.DeliveryFailed},
	order.RefundRequested: {order.ReadyForPickup, order.PickedUp, order.AtDepot, order.OutForDelivery, order.Delivered, order.RefundRequested},
	order.Refunded:        {order.ReadyForPickup, order.PickedUp, order.AtDepot, order.OutForDelivery, order.Delivered, order.RefundRequested, order.Refunded},
	order.Cancelled:       {order.Cancelled},
	order.DepotIssue:      {order.ReadyForPickup, order.PickedUp, order.DepotIssue},
	order.Returned:        {order.ReadyForPickup, order.PickedUp, order.DepotIssue, order.Returned},
}

// DriveTo moves o from confirmed to status along a legal path, using the first
// allowed role of each step.
func (f Fixture) DriveTo(t *testing.T, o *order.Order, status order.Status) {
	t.Helper()

	path, ok := paths[status]
	require.True(t, ok, "no path to %s", status)

	for i, to := range path {
		roles, legal := order.AllowedRoles(o.Status(), to)
		require.True(t, legal, "%s -> %s", o.Status(), to)
		at := f.Now.Add(time.Duration(i+1) * time.Minute)
		require.NoError(t, o.Transition(to, f.Actor(roles[0]), f.Payload(), at))
	}
	o.PullEvents()
}

// OrderIn returns a new order already in status.
func (f Fixture) OrderIn(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	o := f.NewOrder(t)
	f.DriveTo(t, o, status)
	return o
}
