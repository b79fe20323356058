package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrSetAgentAvailabilityCommandIsNotConstructed = errors.New(
	"SetAgentAvailabilityCommand must be created via NewSetAgentAvailabilityCommand constructor",
)

// SetAgentAvailabilityCommand toggles the availability flag of an agent.
type SetAgentAvailabilityCommand struct { //nolint:recvcheck //using for validation
	agentID      kernel.UUID
	actor        order.Actor
	availability agent.Availability

	guard guard.ConstructorGuard
}

func NewSetAgentAvailabilityCommand(
	agentID kernel.UUID,
	actor order.Actor,
	availability string,
) (SetAgentAvailabilityCommand, error) {
	cmd := SetAgentAvailabilityCommand{guard: guard.NewConstructorGuard()}

	parsed, availabilityErr := agent.ParseAvailability(availability)
	if err := errors.Join(agentID.Validate(), actor.Validate(), availabilityErr); err != nil {
		return SetAgentAvailabilityCommand{}, err
	}

	cmd.agentID = agentID
	cmd.actor = actor
	cmd.availability = parsed
	return cmd, nil
}

func (c SetAgentAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAgentAvailabilityCommandIsNotConstructed)
}

func (c SetAgentAvailabilityCommand) AgentID() kernel.UUID             { return c.agentID }
func (c SetAgentAvailabilityCommand) Actor() order.Actor               { return c.actor }
func (c SetAgentAvailabilityCommand) Availability() agent.Availability { return c.availability }
