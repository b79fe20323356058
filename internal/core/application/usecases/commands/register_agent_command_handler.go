package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/order"
)

// RegisterAgentCommandHandler creates agents. Only a superadmin may register them;
// new agents start unavailable.
type RegisterAgentCommandHandler struct {
	uowFactory AgentUoWFactory
}

func NewRegisterAgentCommandHandler(uowFactory AgentUoWFactory) RegisterAgentCommandHandler {
	return RegisterAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RegisterAgentCommandHandler) Handle(ctx context.Context, cmd RegisterAgentCommand) (*agent.Agent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := requireSuperadmin(cmd.Actor(), "register agents"); err != nil {
		return nil, err
	}

	a, err := agent.NewAgent(cmd.AgentID(), cmd.Name(), cmd.Role(), cmd.ZoneID(), cmd.DepotID())
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

	if err = uow.AgentRepository().Add(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func requireSuperadmin(actor order.Actor, what string) error {
	if actor.Role != order.RoleSuperadmin {
		return fmt.Errorf("%w: only a superadmin can %s", order.ErrForbidden, what)
	}
	return nil
}
