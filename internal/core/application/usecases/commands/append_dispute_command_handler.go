package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// AppendDisputeCommandHandler appends to the dispute log. Disputes are open at
// every status and never change status or version, so the write is a plain
// append rather than a compare-and-swap. Customers and sellers may only write on
// their own orders.
type AppendDisputeCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     RetryPolicy
}

func NewAppendDisputeCommandHandler(uowFactory OrderUoWFactory, policy RetryPolicy) AppendDisputeCommandHandler {
	return AppendDisputeCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h AppendDisputeCommandHandler) Handle(ctx context.Context, cmd AppendDisputeCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = checkParty(o, cmd.Actor()); err != nil {
		return nil, err
	}

	msg, err := order.NewDisputeMessage(cmd.Actor(), cmd.Message(), h.policy.now())
	if err != nil {
		return nil, err
	}
	if err = o.AppendDispute(msg); err != nil {
		return nil, err
	}

	if err = orderRepo.AppendDispute(ctx, o.ID(), msg); err != nil {
		return nil, err
	}
	if err = uow.OutboxRepository().Add(ctx, o.PullEvents()...); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func checkParty(o *order.Order, actor order.Actor) error {
	switch actor.Role { //nolint:exhaustive // staff roles are not scoped to an order
	case order.RoleCustomer:
		if !o.CustomerID().IsEqual(actor.UserID) {
			return order.NewForbiddenError(actor.Role, o.Status(), o.Status(), "customer does not own the order")
		}
	case order.RoleSeller:
		if !o.SellerID().IsEqual(actor.UserID) {
			return order.NewForbiddenError(actor.Role, o.Status(), o.Status(), "seller does not own the order")
		}
	}
	return nil
}
