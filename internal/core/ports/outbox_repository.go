package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OutboxRepository stores domain events in the same transaction as the aggregate
// change that raised them, until the relay job publishes them.
type OutboxRepository interface {
	// Add stores events as unpublished.
	Add(ctx context.Context, events ...order.Event) error

	// ListUnpublished returns at most limit unpublished events in the order they were stored.
	ListUnpublished(ctx context.Context, limit int) ([]order.Event, error)

	// MarkPublished flags events as delivered to the broker.
	MarkPublished(ctx context.Context, at time.Time, ids ...kernel.UUID) error
}

// EventPublisher delivers domain events to the notification collaborator.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.Event) error
}
