package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterAgentCommandIsNotConstructed = errors.New(
	"RegisterAgentCommand must be created via NewRegisterAgentCommand constructor",
)

// RegisterAgentCommand records the fulfillment view of a platform user: role,
// dispatch zone and home depot.
//
// Example:
//
//	cmd, err := NewRegisterAgentCommand(userID, admin, "Moussa Diop", "delivery_agent", &zoneID, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid agent data: %w", err)
//	}
//	a, err := handler.Handle(ctx, cmd)
type RegisterAgentCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID
	actor   order.Actor
	name    string
	role    order.Role
	zoneID  *kernel.UUID
	depotID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewRegisterAgentCommand(
	agentID kernel.UUID,
	actor order.Actor,
	name string,
	role string,
	zoneID *kernel.UUID,
	depotID *kernel.UUID,
) (RegisterAgentCommand, error) {
	cmd := RegisterAgentCommand{guard: guard.NewConstructorGuard()}

	name = strings.TrimSpace(name)
	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	parsed, roleErr := order.ParseRole(role)
	if err := errors.Join(agentID.Validate(), actor.Validate(), nameErr, roleErr); err != nil {
		return RegisterAgentCommand{}, err
	}

	cmd.agentID = agentID
	cmd.actor = actor
	cmd.name = name
	cmd.role = parsed
	cmd.zoneID = cloneID(zoneID)
	cmd.depotID = cloneID(depotID)
	return cmd, nil
}

func (c RegisterAgentCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAgentCommandIsNotConstructed)
}

func (c RegisterAgentCommand) AgentID() kernel.UUID  { return c.agentID }
func (c RegisterAgentCommand) Actor() order.Actor    { return c.actor }
func (c RegisterAgentCommand) Name() string          { return c.name }
func (c RegisterAgentCommand) Role() order.Role      { return c.role }
func (c RegisterAgentCommand) ZoneID() *kernel.UUID  { return cloneID(c.zoneID) }
func (c RegisterAgentCommand) DepotID() *kernel.UUID { return cloneID(c.depotID) }

func cloneID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
