// Package outboxrepo stores domain events next to the aggregate change that raised
// them, until the relay job hands them to the broker.
package outboxrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventDTO is one outbox row. Seq preserves the insertion order the relay publishes in.
type EventDTO struct {
	Seq            uint64            `gorm:"primaryKey;autoIncrement"`
	EventID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	Type           string            `gorm:"type:varchar(64);not null"`
	OrderID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	TrackingNumber string            `gorm:"type:varchar(32);not null"`
	Status         int               `gorm:"not null"`
	PreviousStatus int               `gorm:"not null"`
	ActorID        uuid.UUID         `gorm:"type:uuid;not null"`
	ActorRole      string            `gorm:"type:varchar(32);not null"`
	OccurredAt     time.Time         `gorm:"not null"`
	Attributes     map[string]string `gorm:"type:jsonb;serializer:json"`
	PublishedAt    *time.Time        `gorm:"index"`
}

// TableName specifies the database table name for outbox rows.
func (EventDTO) TableName() string {
	return "outbox_events"
}

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores events as unpublished.
func (r *GormOutboxRepository) Add(ctx context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, fromDomain(e))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// ListUnpublished returns at most limit unpublished events in insertion order.
// A limit below 1 returns all of them.
func (r *GormOutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]order.Event, error) {
	query := r.db.WithContext(ctx).Where("published_at IS NULL").Order("seq")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []EventDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]order.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// MarkPublished flags events as delivered. Already published events keep their timestamp.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, at time.Time, ids ...kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).Model(&EventDTO{}).
		Where("event_id IN ? AND published_at IS NULL", raw).
		Update("published_at", at).Error
}

func fromDomain(e order.Event) EventDTO {
	return EventDTO{
		EventID:        e.ID.Bytes(),
		Type:           string(e.Type),
		OrderID:        e.OrderID.Bytes(),
		TrackingNumber: e.TrackingNumber,
		Status:         int(e.Status),
		PreviousStatus: int(e.PreviousStatus),
		ActorID:        e.ActorID.Bytes(),
		ActorRole:      string(e.ActorRole),
		OccurredAt:     e.OccurredAt,
		Attributes:     e.Attributes,
	}
}

func toDomain(dto EventDTO) (order.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.EventID[:])
	if err != nil {
		return order.Event{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.Event{}, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return order.Event{}, err
	}

	return order.Event{
		ID:             id,
		Type:           order.EventType(dto.Type),
		OrderID:        orderID,
		TrackingNumber: dto.TrackingNumber,
		Status:         order.Status(dto.Status),
		PreviousStatus: order.Status(dto.PreviousStatus),
		ActorID:        actorID,
		ActorRole:      order.Role(dto.ActorRole),
		OccurredAt:     dto.OccurredAt,
		Attributes:     dto.Attributes,
	}, nil
}
