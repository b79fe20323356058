package services

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrNoAgentAvailable is returned when no available delivery agent matches the
	// dispatch zone. The search is never widened implicitly.
	ErrNoAgentAvailable = errors.New("no agent available")
	// ErrAgentNotEligible is returned when an explicitly chosen agent fails the
	// role, availability or zone constraint.
	ErrAgentNotEligible = errors.New("agent not eligible")
)

// NoAgentAvailableError names the zones that were searched.
type NoAgentAvailableError struct {
	ZoneIDs []kernel.UUID
}

func NewNoAgentAvailableError(zoneIDs ...kernel.UUID) *NoAgentAvailableError {
	return &NoAgentAvailableError{ZoneIDs: zoneIDs}
}

func (e *NoAgentAvailableError) Error() string {
	if len(e.ZoneIDs) == 0 {
		return fmt.Sprintf("%s: no dispatch zone could be determined", ErrNoAgentAvailable)
	}
	zones := make([]string, 0, len(e.ZoneIDs))
	for _, z := range e.ZoneIDs {
		zones = append(zones, z.String())
	}
	return fmt.Sprintf("%s in zone %s", ErrNoAgentAvailable, strings.Join(zones, ", "))
}

func (e *NoAgentAvailableError) Unwrap() error {
	return ErrNoAgentAvailable
}

// AgentNotEligibleError carries the refused agent and the failed constraint.
type AgentNotEligibleError struct {
	AgentID kernel.UUID
	Reason  string
}

func NewAgentNotEligibleError(agentID kernel.UUID, reason string) *AgentNotEligibleError {
	return &AgentNotEligibleError{AgentID: agentID, Reason: reason}
}

func (e *AgentNotEligibleError) Error() string {
	return fmt.Sprintf("%s: agent %s %s", ErrAgentNotEligible, e.AgentID, e.Reason)
}

func (e *AgentNotEligibleError) Unwrap() error {
	return ErrAgentNotEligible
}
