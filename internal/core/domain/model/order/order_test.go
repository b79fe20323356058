package order_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/order/ordertest"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	fx := ordertest.NewFixture()

	t.Run("should create confirmed order with computed totals", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, fx.Details(t), fx.Now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, 1, o.Version())
		assert.Equal(t, "9000.00", o.Subtotal().String())
		assert.Equal(t, "10000.00", o.Total().String())
		assert.Equal(t, order.TrackingNumberFor(id), o.TrackingNumber())
		assert.Regexp(t, `^TRK-[0-9A-F]{10}$`, o.TrackingNumber())
		assert.Nil(t, o.AgentID())
		assert.Nil(t, o.DepotID())
	})

	t.Run("should open tracking history and leave status change log empty", func(t *testing.T) {
		o := fx.NewOrder(t)

		history := o.TrackingHistory()
		require.Len(t, history, 1)
		assert.Equal(t, order.Confirmed, history[0].Status)
		assert.Empty(t, o.StatusChangeLog())

		events := o.PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventStatusChanged, events[0].Type)
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should keep a provided tracking number", func(t *testing.T) {
		details := fx.Details(t)
		details.TrackingNumber = "TRK-0000000042"

		o, err := order.NewOrder(kernel.NewUUID(), details, fx.Now)

		require.NoError(t, err)
		assert.Equal(t, "TRK-0000000042", o.TrackingNumber())
	})

	t.Run("should reject checkout without items", func(t *testing.T) {
		details := fx.Details(t)
		details.Items = nil

		o, err := order.NewOrder(kernel.NewUUID(), details, fx.Now)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require pickup point for pickup delivery", func(t *testing.T) {
		details := fx.Details(t)
		details.DeliveryMethod = order.DeliveryPickup

		_, err := order.NewOrder(kernel.NewUUID(), details, fx.Now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "pickupPointId")
	})

	t.Run("should join errors for invalid id and parties", func(t *testing.T) {
		details := fx.Details(t)
		details.CustomerID = kernel.UUID{}

		o, err := order.NewOrder(kernel.UUID{}, details, fx.Now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestOrder_Validate(t *testing.T) {
	var o order.Order

	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	err := o.Transition(order.ReadyForPickup, ordertest.NewFixture().Actor(order.RoleSeller), order.Payload{}, time.Now())
	require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
}

func TestOrder_Transition_HappyPath(t *testing.T) {
	fx := ordertest.NewFixture()
	o := fx.NewOrder(t)
	o.PullEvents()

	steps := []struct {
		to   order.Status
		role order.Role
	}{
		{order.ReadyForPickup, order.RoleSeller},
		{order.PickedUp, order.RoleDeliveryAgent},
		{order.AtDepot, order.RoleDepotAgent},
		{order.OutForDelivery, order.RoleDepotManager},
		{order.Delivered, order.RoleDeliveryAgent},
	}

	for i, step := range steps {
		at := fx.Now.Add(time.Duration(i+1) * time.Hour)
		require.NoError(t, o.Transition(step.to, fx.Actor(step.role), fx.Payload(), at), step.to.String())

		assert.Equal(t, step.to, o.Status())
		assert.Equal(t, i+2, o.Version())

		last, ok := o.LastStatusChange()
		require.True(t, ok)
		assert.Equal(t, step.to, last.Status)
		assert.Equal(t, step.role, last.Role)
		assert.Equal(t, at, last.At)
	}

	require.NotNil(t, o.AgentID())
	assert.True(t, o.AgentID().IsEqual(fx.AgentID))
	require.NotNil(t, o.DepotID())
	assert.True(t, o.DepotID().IsEqual(fx.DepotID))
	assert.Equal(t, "A-01", o.StorageLocationID())
	require.NotNil(t, o.CheckedInAt())
	require.NotNil(t, o.CheckedInBy())
	assert.True(t, o.CheckedInBy().IsEqual(fx.StaffID))

	history := o.TrackingHistory()
	require.Len(t, history, len(steps)+1)
	assert.Equal(t, "Delivered to Awa Ndiaye", history[len(history)-1].Detail)
	assert.Equal(t, "Dakar", history[len(history)-1].Location)

	events := o.PullEvents()
	assert.Len(t, events, len(steps))
	for _, e := range events {
		assert.Equal(t, order.EventStatusChanged, e.Type)
		assert.True(t, e.OrderID.IsEqual(o.ID()))
	}
}

func TestOrder_Transition_Payload(t *testing.T) {
	fx := ordertest.NewFixture()

	tests := []struct {
		name    string
		from    order.Status
		to      order.Status
		role    order.Role
		payload func(p order.Payload) order.Payload
		wantErr error
		field   string
	}{
		{
			name: "pickup requires agent",
			from: order.ReadyForPickup, to: order.PickedUp, role: order.RoleSuperadmin,
			payload: func(p order.Payload) order.Payload { p.AgentID = nil; return p },
			wantErr: errs.ErrValueIsRequired, field: "agentId",
		},
		{
			name: "check-in requires depot",
			from: order.PickedUp, to: order.AtDepot, role: order.RoleDepotAgent,
			payload: func(p order.Payload) order.Payload { p.DepotID = nil; return p },
			wantErr: errs.ErrValueIsRequired, field: "depotId",
		},
		{
			name: "check-in requires storage location",
			from: order.PickedUp, to: order.AtDepot, role: order.RoleDepotAgent,
			payload: func(p order.Payload) order.Payload { p.StorageLocationID = "  "; return p },
			wantErr: errs.ErrValueIsRequired, field: "storageLocationId",
		},
		{
			name: "dispatch requires agent",
			from: order.AtDepot, to: order.OutForDelivery, role: order.RoleDepotManager,
			payload: func(p order.Payload) order.Payload { p.AgentID = nil; return p },
			wantErr: errs.ErrValueIsRequired, field: "agentId",
		},
		{
			name: "failure requires known reason",
			from: order.OutForDelivery, to: order.DeliveryFailed, role: order.RoleDeliveryAgent,
			payload: func(p order.Payload) order.Payload { p.FailureReason = "weather"; return p },
			wantErr: errs.ErrValueIsInvalid, field: "failureReason",
		},
		{
			name: "depot issue rejects advisory kind",
			from: order.PickedUp, to: order.DepotIssue, role: order.RoleDepotAgent,
			payload: func(p order.Payload) order.Payload {
				p.DiscrepancyKind = order.DiscrepancyPackagingWorn
				return p
			},
			wantErr: errs.ErrValueIsInvalid, field: "kind",
		},
		{
			name: "refund requires reason",
			from: order.Delivered, to: order.RefundRequested, role: order.RoleCustomer,
			payload: func(p order.Payload) order.Payload { p.RefundReason = ""; return p },
			wantErr: errs.ErrValueIsRequired, field: "reason",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := fx.OrderIn(t, tt.from)
			before := o.Snapshot()

			err := o.Transition(tt.to, fx.Actor(tt.role), tt.payload(fx.Payload()), fx.Now.Add(time.Hour))

			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.field)
			assert.Equal(t, before, o.Snapshot(), "failed transition must not mutate the order")
			assert.Empty(t, o.PullEvents())
		})
	}
}

func TestOrder_Transition_ActorScope(t *testing.T) {
	fx := ordertest.NewFixture()
	stranger := kernel.NewUUID()

	t.Run("delivery agent cannot assign someone else", func(t *testing.T) {
		o := fx.OrderIn(t, order.ReadyForPickup)
		other := kernel.NewUUID()
		payload := fx.Payload()
		payload.AgentID = &other

		err := o.Transition(order.PickedUp, fx.Actor(order.RoleDeliveryAgent), payload, fx.Now)

		require.ErrorIs(t, err, order.ErrForbidden)
		assert.Equal(t, order.ReadyForPickup, o.Status())
	})

	t.Run("only the assigned agent closes the delivery", func(t *testing.T) {
		o := fx.OrderIn(t, order.OutForDelivery)
		actor := order.Actor{UserID: stranger, Role: order.RoleDeliveryAgent}

		err := o.Transition(order.Delivered, actor, fx.Payload(), fx.Now)

		require.ErrorIs(t, err, order.ErrForbidden)
		var forbidden *order.ForbiddenError
		require.ErrorAs(t, err, &forbidden)
		assert.Equal(t, order.OutForDelivery, forbidden.From)
	})

	t.Run("customer can only cancel own order", func(t *testing.T) {
		o := fx.NewOrder(t)

		err := o.Transition(order.Cancelled, order.Actor{UserID: stranger, Role: order.RoleCustomer}, order.Payload{}, fx.Now)

		require.ErrorIs(t, err, order.ErrForbidden)
	})

	t.Run("only the ordering customer requests a refund", func(t *testing.T) {
		o := fx.OrderIn(t, order.Delivered)

		err := o.Transition(order.RefundRequested, order.Actor{UserID: stranger, Role: order.RoleCustomer}, fx.Payload(), fx.Now)

		require.ErrorIs(t, err, order.ErrForbidden)
		assert.Nil(t, o.RefundRequest())
	})

	t.Run("seller can only prepare own order", func(t *testing.T) {
		o := fx.NewOrder(t)

		err := o.Transition(order.ReadyForPickup, order.Actor{UserID: stranger, Role: order.RoleSeller}, order.Payload{}, fx.Now)

		require.ErrorIs(t, err, order.ErrForbidden)
	})

	t.Run("superadmin is not scoped", func(t *testing.T) {
		o := fx.OrderIn(t, order.OutForDelivery)

		err := o.Transition(order.Delivered, order.Actor{UserID: stranger, Role: order.RoleSuperadmin}, order.Payload{}, fx.Now)

		require.NoError(t, err)
	})
}

func TestOrder_LegalityClosure(t *testing.T) {
	fx := ordertest.NewFixture()

	for _, from := range order.AllStatuses() {
		for _, to := range order.AllStatuses() {
			if _, legal := order.AllowedRoles(from, to); legal {
				continue
			}
			for _, role := range order.AllRoles() {
				o := fx.OrderIn(t, from)
				version := o.Version()

				err := o.Transition(to, fx.Actor(role), fx.Payload(), fx.Now)

				require.ErrorIs(t, err, order.ErrIllegalTransition, "%s -> %s as %s", from, to, role)
				assert.Equal(t, from, o.Status())
				assert.Equal(t, version, o.Version())
			}
		}
	}
}

func TestOrder_ForbiddenRoles(t *testing.T) {
	fx := ordertest.NewFixture()

	for _, from := range order.AllStatuses() {
		for _, to := range order.AllStatuses() {
			allowed, legal := order.AllowedRoles(from, to)
			if !legal {
				continue
			}
			for _, role := range order.AllRoles() {
				if contains(allowed, role) {
					continue
				}
				o := fx.OrderIn(t, from)

				err := o.Transition(to, fx.Actor(role), fx.Payload(), fx.Now)

				require.ErrorIs(t, err, order.ErrForbidden, "%s -> %s as %s", from, to, role)
				assert.Equal(t, from, o.Status())
			}
		}
	}
}

func TestOrder_TerminalFinality(t *testing.T) {
	fx := ordertest.NewFixture()

	for _, terminal := range []order.Status{order.Delivered, order.Cancelled, order.Refunded, order.Returned} {
		require.True(t, terminal.IsTerminal())

		for _, to := range order.AllStatuses() {
			for _, role := range order.AllRoles() {
				o := fx.OrderIn(t, terminal)

				err := o.Transition(to, fx.Actor(role), fx.Payload(), fx.Now)

				if terminal == order.Delivered && to == order.RefundRequested && role == order.RoleCustomer {
					require.NoError(t, err)
					continue
				}
				require.Error(t, err, "%s -> %s as %s", terminal, to, role)
				assert.Equal(t, terminal, o.Status())
			}
		}
	}
}

func TestOrder_AuditCompletenessAndAppendOnly(t *testing.T) {
	fx := ordertest.NewFixture()
	rng := rand.New(rand.NewPCG(7, 42)) //nolint:gosec // deterministic walk

	for walk := range 50 {
		o := fx.NewOrder(t)
		applied := 0
		prev := o.Snapshot()

		for step := range 12 {
			next := order.NextStatuses(o.Status())
			if len(next) == 0 {
				break
			}
			to := next[rng.IntN(len(next))]
			roles, _ := order.AllowedRoles(o.Status(), to)
			role := roles[rng.IntN(len(roles))]

			err := o.Transition(to, fx.Actor(role), fx.Payload(), fx.Now.Add(time.Duration(step)*time.Minute))
			require.NoError(t, err, "walk %d step %d: -> %s as %s", walk, step, to, role)
			applied++

			cur := o.Snapshot()
			require.Len(t, cur.StatusChangeLog, applied)
			assert.Equal(t, cur.Status, cur.StatusChangeLog[len(cur.StatusChangeLog)-1].Status)
			assert.Equal(t, prev.Version+1, cur.Version)

			require.Len(t, cur.TrackingHistory, len(prev.TrackingHistory)+1)
			assert.Equal(t, prev.TrackingHistory, cur.TrackingHistory[:len(prev.TrackingHistory)])
			assert.Equal(t, prev.StatusChangeLog, cur.StatusChangeLog[:len(prev.StatusChangeLog)])
			prev = cur
		}
	}
}

func TestOrder_CopiesDoNotLeak(t *testing.T) {
	fx := ordertest.NewFixture()
	o := fx.OrderIn(t, order.PickedUp)

	history := o.TrackingHistory()
	history[0].Detail = "rewritten"
	log := o.StatusChangeLog()
	log[0].Status = order.Refunded
	agent := o.AgentID()
	*agent = kernel.NewUUID()

	assert.NotEqual(t, "rewritten", o.TrackingHistory()[0].Detail)
	assert.Equal(t, order.ReadyForPickup, o.StatusChangeLog()[0].Status)
	assert.True(t, o.AgentID().IsEqual(fx.AgentID))
}

func TestOrder_RefundPath(t *testing.T) {
	fx := ordertest.NewFixture()
	o := fx.OrderIn(t, order.Delivered)

	payload := order.Payload{RefundReason: "damaged", EvidenceURLs: []string{"https://img.example/1.jpg"}}
	require.NoError(t, o.Transition(order.RefundRequested, fx.Actor(order.RoleCustomer), payload, fx.Now))
	assert.Equal(t, order.RefundRequested, o.Status())
	require.NotNil(t, o.RefundRequest())
	assert.Equal(t, "damaged", o.RefundRequest().Reason)
	assert.Equal(t, []string{"https://img.example/1.jpg"}, o.RefundRequest().EvidenceURLs)

	events := o.PullEvents()
	require.Len(t, events, 2)
	assert.Equal(t, order.EventRefundRequested, events[0].Type)
	assert.Equal(t, order.EventStatusChanged, events[1].Type)

	require.NoError(t, o.Transition(order.Refunded, fx.Actor(order.RoleSuperadmin), order.Payload{}, fx.Now))

	err := o.Transition(order.RefundRequested, fx.Actor(order.RoleCustomer), payload, fx.Now)
	require.ErrorIs(t, err, order.ErrIllegalTransition)
}

func TestOrder_BlockingDiscrepancyAtCheckIn(t *testing.T) {
	fx := ordertest.NewFixture()
	o := fx.OrderIn(t, order.PickedUp)
	historyBefore := len(o.TrackingHistory())

	err := o.Transition(order.DepotIssue, fx.Actor(order.RoleDepotAgent), order.Payload{
		DiscrepancyKind:   order.DiscrepancyItemCountMismatch,
		DiscrepancyReason: "2 items expected, 1 received",
	}, fx.Now)

	require.NoError(t, err)
	assert.Equal(t, order.DepotIssue, o.Status())
	require.Len(t, o.TrackingHistory(), historyBefore+1)
	assert.Contains(t, o.TrackingHistory()[historyBefore].Detail, "item-count-mismatch")
	require.NotNil(t, o.Discrepancy())
	assert.True(t, o.Discrepancy().Blocking)
}

func TestOrder_DeliveryFailureAndReroute(t *testing.T) {
	fx := ordertest.NewFixture()
	o := fx.OrderIn(t, order.OutForDelivery)

	payload := order.Payload{FailureReason: order.FailureWrongAddress, Detail: "no such building"}
	require.NoError(t, o.Transition(order.DeliveryFailed, fx.Actor(order.RoleDeliveryAgent), payload, fx.Now))

	require.NotNil(t, o.DeliveryFailure())
	assert.Equal(t, order.FailureWrongAddress, o.DeliveryFailure().Reason)
	assert.Equal(t, "no such building", o.DeliveryFailure().Details)
	assert.False(t, order.DeliveryFailed.IsTerminal())

	require.NoError(t, o.Transition(order.AtDepot, fx.Actor(order.RoleDepotManager), order.Payload{StorageLocationID: "R-07"}, fx.Now))
	assert.Equal(t, order.AtDepot, o.Status())
	assert.Nil(t, o.AgentID())
	assert.Equal(t, "R-07", o.StorageLocationID())
	require.NotNil(t, o.DepotID())
	assert.True(t, o.DepotID().IsEqual(fx.DepotID))
}

func TestOrder_NoteDiscrepancy(t *testing.T) {
	fx := ordertest.NewFixture()
	staff := fx.Actor(order.RoleDepotAgent)

	t.Run("advisory note keeps status and bumps version", func(t *testing.T) {
		o := fx.OrderIn(t, order.AtDepot)
		version := o.Version()
		history := len(o.TrackingHistory())
		changes := len(o.StatusChangeLog())

		require.NoError(t, o.NoteDiscrepancy(order.DiscrepancyPackagingWorn, "box corners crushed", staff, fx.Now))

		assert.Equal(t, order.AtDepot, o.Status())
		assert.Equal(t, version+1, o.Version())
		assert.Len(t, o.TrackingHistory(), history+1)
		assert.Len(t, o.StatusChangeLog(), changes)
		require.NotNil(t, o.Discrepancy())
		assert.False(t, o.Discrepancy().Blocking)
		events := o.PullEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventDiscrepancyReported, events[0].Type)
	})

	t.Run("second advisory note is rejected", func(t *testing.T) {
		o := fx.OrderIn(t, order.AtDepot)
		require.NoError(t, o.NoteDiscrepancy(order.DiscrepancyPackagingWorn, "box corners crushed", staff, fx.Now))
		o.PullEvents()
		version := o.Version()
		history := len(o.TrackingHistory())

		err := o.NoteDiscrepancy(order.DiscrepancyLabelUnreadable, "label smudged", staff, fx.Now.Add(time.Minute))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.NotNil(t, o.Discrepancy())
		assert.Equal(t, order.DiscrepancyPackagingWorn, o.Discrepancy().Kind)
		assert.Equal(t, "box corners crushed", o.Discrepancy().Reason)
		assert.Equal(t, version, o.Version())
		assert.Len(t, o.TrackingHistory(), history)
		assert.Empty(t, o.PullEvents())
	})

	t.Run("blocking kind is rejected", func(t *testing.T) {
		o := fx.OrderIn(t, order.AtDepot)

		err := o.NoteDiscrepancy(order.DiscrepancyDamagedSeal, "seal cut", staff, fx.Now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o.Discrepancy())
	})

	t.Run("outside depot statuses is rejected", func(t *testing.T) {
		o := fx.OrderIn(t, order.OutForDelivery)

		err := o.NoteDiscrepancy(order.DiscrepancyOther, "smells of fish", staff, fx.Now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("non depot staff is forbidden", func(t *testing.T) {
		o := fx.OrderIn(t, order.AtDepot)

		err := o.NoteDiscrepancy(order.DiscrepancyOther, "note", fx.Actor(order.RoleSeller), fx.Now)

		require.ErrorIs(t, err, order.ErrForbidden)
	})
}

func TestOrder_AppendDispute(t *testing.T) {
	fx := ordertest.NewFixture()

	for _, status := range order.AllStatuses() {
		o := fx.OrderIn(t, status)
		version := o.Version()
		msg, err := order.NewDisputeMessage(fx.Actor(order.RoleCustomer), "where is my parcel?", fx.Now)
		require.NoError(t, err)

		require.NoError(t, o.AppendDispute(msg), status.String())

		assert.Equal(t, status, o.Status())
		assert.Equal(t, version, o.Version())
		require.Len(t, o.DisputeLog(), 1)
		assert.Equal(t, "where is my parcel?", o.DisputeLog()[0].Message)
	}
}

func TestRestoreOrder(t *testing.T) {
	fx := ordertest.NewFixture()

	t.Run("should round trip through snapshot", func(t *testing.T) {
		o := fx.OrderIn(t, order.DeliveryFailed)

		restored, err := order.RestoreOrder(o.Snapshot())

		require.NoError(t, err)
		require.NoError(t, restored.Validate())
		assert.Equal(t, o.Snapshot(), restored.Snapshot())
		assert.True(t, restored.IsEqual(o))
		assert.Empty(t, restored.PullEvents())
	})

	t.Run("should reject status disagreeing with audit trail", func(t *testing.T) {
		s := fx.OrderIn(t, order.PickedUp).Snapshot()
		s.Status = order.Delivered

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject non confirmed status without audit entries", func(t *testing.T) {
		s := fx.NewOrder(t).Snapshot()
		s.Status = order.AtDepot

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject version below one", func(t *testing.T) {
		s := fx.NewOrder(t).Snapshot()
		s.Version = 0

		_, err := order.RestoreOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func contains(roles []order.Role, role order.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
