package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterDepotCommandIsNotConstructed = errors.New(
	"RegisterDepotCommand must be created via NewRegisterDepotCommand constructor",
)

// RegisterDepotCommand creates a pickup point with its shelf layout.
type RegisterDepotCommand struct { //nolint:recvcheck //using for validation
	depotID   kernel.UUID
	actor     order.Actor
	name      string
	zoneID    *kernel.UUID
	managerID *kernel.UUID
	layout    []string

	guard guard.ConstructorGuard
}

func NewRegisterDepotCommand(
	depotID kernel.UUID,
	actor order.Actor,
	name string,
	zoneID *kernel.UUID,
	managerID *kernel.UUID,
	layout []string,
) (RegisterDepotCommand, error) {
	cmd := RegisterDepotCommand{guard: guard.NewConstructorGuard()}

	name = strings.TrimSpace(name)
	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if err := errors.Join(depotID.Validate(), actor.Validate(), nameErr); err != nil {
		return RegisterDepotCommand{}, err
	}

	cmd.depotID = depotID
	cmd.actor = actor
	cmd.name = name
	cmd.zoneID = cloneID(zoneID)
	cmd.managerID = cloneID(managerID)
	cmd.layout = append([]string(nil), layout...)
	return cmd, nil
}

func (c RegisterDepotCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDepotCommandIsNotConstructed)
}

func (c RegisterDepotCommand) DepotID() kernel.UUID    { return c.depotID }
func (c RegisterDepotCommand) Actor() order.Actor      { return c.actor }
func (c RegisterDepotCommand) Name() string            { return c.name }
func (c RegisterDepotCommand) ZoneID() *kernel.UUID    { return cloneID(c.zoneID) }
func (c RegisterDepotCommand) ManagerID() *kernel.UUID { return cloneID(c.managerID) }
func (c RegisterDepotCommand) Layout() []string        { return append([]string(nil), c.layout...) }
