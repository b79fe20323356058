package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/depot"
)

// RegisterDepotCommandHandler creates depots. Only a superadmin may register them.
type RegisterDepotCommandHandler struct {
	uowFactory DepotUoWFactory
}

func NewRegisterDepotCommandHandler(uowFactory DepotUoWFactory) RegisterDepotCommandHandler {
	return RegisterDepotCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RegisterDepotCommandHandler) Handle(ctx context.Context, cmd RegisterDepotCommand) (*depot.Depot, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := requireSuperadmin(cmd.Actor(), "register depots"); err != nil {
		return nil, err
	}

	d, err := depot.NewDepot(cmd.DepotID(), cmd.Name(), cmd.ZoneID(), cmd.ManagerID(), cmd.Layout())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DepotRepository().Add(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
