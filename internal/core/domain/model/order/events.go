package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// EventType names the domain events published to the notification collaborator.
type EventType string

const (
	EventStatusChanged       EventType = "order.status_changed"
	EventDeliveryFailed      EventType = "order.delivery_failed"
	EventRefundRequested     EventType = "order.refund_requested"
	EventDiscrepancyReported EventType = "order.discrepancy_reported"
	EventDisputeMessageAdded EventType = "order.dispute_message_added"
)

// Event is raised by the aggregate and stored in the outbox in the same
// transaction as the state change it describes.
type Event struct {
	ID             kernel.UUID
	Type           EventType
	OrderID        kernel.UUID
	TrackingNumber string
	Status         Status
	PreviousStatus Status
	ActorID        kernel.UUID
	ActorRole      Role
	OccurredAt     time.Time
	Attributes     map[string]string
}
