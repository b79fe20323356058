// Package agentrepo persists the agent view of platform users.
package agentrepo

import (
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// AgentDTO represents the database structure for persisting agents.
// Zone and role are indexed for the dispatcher's candidate search.
type AgentDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"type:varchar(255);not null"`
	Role         string     `gorm:"type:varchar(32);not null;index:idx_agents_role_zone,priority:1"`
	Availability string     `gorm:"type:varchar(16);not null"`
	ZoneID       *uuid.UUID `gorm:"type:uuid;index:idx_agents_role_zone,priority:2"`
	DepotID      *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for agent entities.
func (AgentDTO) TableName() string {
	return "agents"
}

func fromDomain(a *agent.Agent) AgentDTO {
	return AgentDTO{
		ID:           a.ID().Bytes(),
		Name:         a.Name(),
		Role:         string(a.Role()),
		Availability: string(a.Availability()),
		ZoneID:       rawID(a.ZoneID()),
		DepotID:      rawID(a.DepotID()),
	}
}

func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	zoneID, err := optionalID(dto.ZoneID)
	if err != nil {
		return nil, err
	}
	depotID, err := optionalID(dto.DepotID)
	if err != nil {
		return nil, err
	}

	return agent.RestoreAgent(id, dto.Name, order.Role(dto.Role), agent.Availability(dto.Availability), zoneID, depotID)
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &k, nil
}
