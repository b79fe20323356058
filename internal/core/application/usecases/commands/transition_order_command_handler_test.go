package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/order/ordertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedPolicy(fx ordertest.Fixture) commands.RetryPolicy {
	return commands.RetryPolicy{
		MaxAttempts: commands.DefaultMaxAttempts,
		Now:         func() time.Time { return fx.Now.Add(time.Hour) },
	}
}

func copyOf(t *testing.T, o *order.Order) *order.Order {
	t.Helper()
	c, err := order.RestoreOrder(o.Snapshot())
	require.NoError(t, err)
	return c
}

func handOverCommand(t *testing.T, fx ordertest.Fixture, o *order.Order) commands.TransitionOrderCommand {
	t.Helper()
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.ReadyForPickup, fx.Actor(order.RoleSeller),
		order.Payload{Detail: "Packed in two boxes"})
	require.NoError(t, err)
	return cmd
}

func TestTransitionOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	fx := ordertest.NewFixture()
	stored := fx.OrderIn(t, order.Confirmed)

	uow, orders, outbox := newMockOrderUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orders.On("Get", ctx, stored.ID()).Return(copyOf(t, stored), nil).Once(),
		orders.On("UpdateIfStatus", ctx, mock.AnythingOfType("*order.Order"), order.Confirmed, stored.Version()).
			Return(nil).Once(),
		outbox.On("Add", ctx, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, fixedPolicy(fx))
	o, err := h.Handle(ctx, handOverCommand(t, fx, stored))
	require.NoError(t, err)

	assert.Equal(t, order.ReadyForPickup, o.Status())
	assert.Equal(t, stored.Version()+1, o.Version())
	history := o.TrackingHistory()
	assert.Equal(t, "Packed in two boxes", history[len(history)-1].Detail)

	events := outbox.Calls[0].Arguments.Get(1).([]order.Event)
	require.Len(t, events, 1)
	assert.Equal(t, order.EventStatusChanged, events[0].Type)
	assert.Equal(t, order.Confirmed, events[0].PreviousStatus)

	uow.AssertExpectations(t)
	orders.AssertExpectations(t)
	outbox.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewTransitionOrderCommandHandler(factory, commands.DefaultRetryPolicy())

	_, err := h.Handle(t.Context(), commands.TransitionOrderCommand{})
	require.ErrorIs(t, err, commands.ErrTransitionOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestTransitionOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	fx := ordertest.NewFixture()
	stored := fx.OrderIn(t, order.Confirmed)

	uow, _, _ := newMockOrderUoW()
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, fixedPolicy(fx))
	_, err := h.Handle(ctx, handOverCommand(t, fx, stored))
	require.EqualError(t, err, "begin error")
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_IllegalTransitionIsNotWritten(t *testing.T) {
	ctx := t.Context()
	fx := ordertest.NewFixture()
	stored := fx.NewOrder(t)

	uow, orders, _ := newMockOrderUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	orders.On("Get", ctx, stored.ID()).Return(copyOf(t, stored), nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewTransitionOrderCommand(stored.ID(), order.Delivered, fx.Actor(order.RoleCustomer), order.Payload{})
	require.NoError(t, err)

	h := commands.NewTransitionOrderCommandHandler(factory, fixedPolicy(fx))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrIllegalTransition)

	orders.AssertNotCalled(t, "UpdateIfStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestTransitionOrderCommandHandler_Handle_RetriesLostRace(t *testing.T) {
	ctx := t.Context()
	fx := ordertest.NewFixture()
	stored := fx.OrderIn(t, order.Confirmed)

	first, firstOrders, _ := newMockOrderUoW()
	first.On("Begin", ctx).Return(nil).Once()
	firstOrders.On("Get", ctx, stored.ID()).Return(copyOf(t, stored), nil).Once()
	firstOrders.On("UpdateIfStatus", ctx, mock.Anything, order.Confirmed, stored.Version()).
		Return(order.NewStaleStateError(stored.ID(), order.Confirmed, nil)).Once()
	first.On("Rollback", ctx).Return(nil).Once()

	second, secondOrders, secondOutbox := newMockOrderUoW()
	second.On("Begin", ctx).Return(nil).Once()
	secondOrders.On("Get", ctx, stored.ID()).Return(copyOf(t, stored), nil).Once()
	secondOrders.On("UpdateIfStatus", ctx, mock.Anything, order.Confirmed, stored.Version()).Return(nil).Once()
	secondOutbox.On("Add", ctx, mock.Anything).Return(nil).Once()
	second.On("Commit", ctx).Return(nil).Once()
	second.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(first).Once()
	factory.On("Create").Return(second).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, fixedPolicy(fx))
	o, err := h.Handle(ctx, handOverCommand(t, fx, stored))
	require.NoError(t, err)
	assert.Equal(t, order.ReadyForPickup, o.Status())

	first.AssertExpectations(t)
	second.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_RetryFindsOrderMovedOn(t *testing.T) {
	ctx := t.Context()
	fx := ordertest.NewFixture()
	stored := fx.OrderIn(t, order.Confirmed)

	moved := copyOf(t, stored)
	require.NoError(t, moved.Transition(order.Cancelled, fx.Actor(order.RoleCustomer), order.Payload{}, fx.Now))

	first, firstOrders, _ := newMockOrderUoW()
	first.On("Begin", ctx).Return(nil).Once()
	firstOrders.On("Get", ctx, stored.ID()).Return(copyOf(t, stored), nil).Once()
	firstOrders.On("UpdateIfStatus", ctx, mock.Anything, order.Confirmed, stored.Version()).
		Return(order.NewStaleStateError(stored.ID(), order.Confirmed, nil)).Once()
	first.On("Rollback", ctx).Return(nil).Once()

	second, secondOrders, _ := newMockOrderUoW()
	second.On("Begin", ctx).Return(nil).Once()
	secondOrders.On("Get", ctx, stored.ID()).Return(moved, nil).Once()
	second.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(first).Once()
	factory.On("Create").Return(second).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, fixedPolicy(fx))
	_, err := h.Handle(ctx, handOverCommand(t, fx, stored))
	require.ErrorIs(t, err, order.ErrStaleState)

	var stale *order.StaleStateError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, order.Confirmed, stale.Expected)
	factory.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_GivesUpAfterMaxAttempts(t *testing.T) {
	ctx := t.Context()
	fx := ordertest.NewFixture()
	stored := fx.OrderIn(t, order.Confirmed)

	factory := new(MockOrderUoWFactory)
	for range commands.DefaultMaxAttempts {
		uow, orders, _ := newMockOrderUoW()
		uow.On("Begin", ctx).Return(nil).Once()
		orders.On("Get", ctx, stored.ID()).Return(copyOf(t, stored), nil).Once()
		orders.On("UpdateIfStatus", ctx, mock.Anything, order.Confirmed, stored.Version()).
			Return(order.NewStaleStateError(stored.ID(), order.Confirmed, nil)).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory.On("Create").Return(uow).Once()
	}

	h := commands.NewTransitionOrderCommandHandler(factory, fixedPolicy(fx))
	_, err := h.Handle(ctx, handOverCommand(t, fx, stored))
	require.ErrorIs(t, err, order.ErrStaleState)
	factory.AssertNumberOfCalls(t, "Create", commands.DefaultMaxAttempts)
}

func TestTransitionOrderCommandHandler_Handle_PinnedStatusIsNotRetried(t *testing.T) {
	ctx := t.Context()
	fx := ordertest.NewFixture()
	stored := fx.OrderIn(t, order.ReadyForPickup)

	uow, orders, _ := newMockOrderUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	orders.On("Get", ctx, stored.ID()).Return(copyOf(t, stored), nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd := handOverCommand(t, fx, stored).WithExpectedStatus(order.Confirmed)

	h := commands.NewTransitionOrderCommandHandler(factory, fixedPolicy(fx))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrStaleState)

	orders.AssertNotCalled(t, "UpdateIfStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestTransitionOrderCommandHandler_Handle_DedicatedEdgesAreRefused(t *testing.T) {
	fx := ordertest.NewFixture()
	otherZoneAgent := kernel.NewUUID()
	unknownDepot := kernel.NewUUID()

	tests := []struct {
		name    string
		from    order.Status
		to      order.Status
		role    order.Role
		payload order.Payload
	}{
		{"pickup without dispatch", order.ReadyForPickup, order.PickedUp, order.RoleDeliveryAgent, order.Payload{AgentID: &fx.AgentID}},
		{"check-out with an agent from another zone", order.AtDepot, order.OutForDelivery, order.RoleDepotManager, order.Payload{AgentID: &otherZoneAgent}},
		{"check-out by superadmin", order.AtDepot, order.OutForDelivery, order.RoleSuperadmin, order.Payload{AgentID: &otherZoneAgent}},
		{"self check-out", order.AtDepot, order.OutForDelivery, order.RoleDeliveryAgent, order.Payload{AgentID: &fx.AgentID}},
		{"check-in at an unknown depot", order.PickedUp, order.AtDepot, order.RoleDepotAgent, order.Payload{DepotID: &unknownDepot, StorageLocationID: "Z-99"}},
		{"blocking discrepancy", order.AtDepot, order.DepotIssue, order.RoleDepotAgent, fx.Payload()},
		{"delivery failure", order.OutForDelivery, order.DeliveryFailed, order.RoleDeliveryAgent, fx.Payload()},
		{"reroute", order.DeliveryFailed, order.AtDepot, order.RoleDepotManager, fx.Payload()},
		{"refund request", order.Delivered, order.RefundRequested, order.RoleCustomer, fx.Payload()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			stored := fx.OrderIn(t, tt.from)

			uow, orders, _ := newMockOrderUoW()
			uow.On("Begin", ctx).Return(nil).Once()
			orders.On("Get", ctx, stored.ID()).Return(copyOf(t, stored), nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			cmd, err := commands.NewTransitionOrderCommand(stored.ID(), tt.to, fx.Actor(tt.role), tt.payload)
			require.NoError(t, err)

			h := commands.NewTransitionOrderCommandHandler(factory, fixedPolicy(fx))
			_, err = h.Handle(ctx, cmd)
			require.ErrorIs(t, err, commands.ErrDedicatedOperation)

			var dedicated *commands.DedicatedOperationError
			require.ErrorAs(t, err, &dedicated)
			assert.Equal(t, tt.from, dedicated.From)
			assert.Equal(t, tt.to, dedicated.To)
			assert.NotEmpty(t, dedicated.Operation)

			orders.AssertNotCalled(t, "UpdateIfStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			factory.AssertNumberOfCalls(t, "Create", 1)
		})
	}
}

func TestTransitionOrderCommandHandler_Handle_TableErrorsComeFirst(t *testing.T) {
	ctx := t.Context()
	fx := ordertest.NewFixture()
	stored := fx.OrderIn(t, order.AtDepot)

	uow, orders, _ := newMockOrderUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	orders.On("Get", ctx, stored.ID()).Return(copyOf(t, stored), nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewTransitionOrderCommand(stored.ID(), order.OutForDelivery, fx.Actor(order.RoleSeller), fx.Payload())
	require.NoError(t, err)

	h := commands.NewTransitionOrderCommandHandler(factory, fixedPolicy(fx))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrForbidden)
	assert.NotErrorIs(t, err, commands.ErrDedicatedOperation)
}

func TestTransitionOrderCommandHandler_Handle_SideDataIsIgnored(t *testing.T) {
	ctx := t.Context()
	fx := ordertest.NewFixture()
	stored := fx.OrderIn(t, order.DepotIssue)
	shelf := stored.StorageLocationID()

	uow, orders, outbox := newMockOrderUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	orders.On("Get", ctx, stored.ID()).Return(copyOf(t, stored), nil).Once()
	orders.On("UpdateIfStatus", ctx, mock.Anything, order.DepotIssue, stored.Version()).Return(nil).Once()
	outbox.On("Add", ctx, mock.Anything).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	stranger := kernel.NewUUID()
	cmd, err := commands.NewTransitionOrderCommand(stored.ID(), order.AtDepot, fx.Actor(order.RoleDepotManager),
		order.Payload{AgentID: &stranger, DepotID: &stranger, StorageLocationID: "Z-99", Detail: "Seal replaced"})
	require.NoError(t, err)

	h := commands.NewTransitionOrderCommandHandler(factory, fixedPolicy(fx))
	o, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.AtDepot, o.Status())
	assert.Equal(t, shelf, o.StorageLocationID())
	assert.Equal(t, stored.AgentID(), o.AgentID())
	assert.Equal(t, stored.DepotID(), o.DepotID())
	history := o.TrackingHistory()
	assert.Equal(t, "Seal replaced", history[len(history)-1].Detail)
}
