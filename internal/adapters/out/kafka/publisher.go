// Package kafka publishes order domain events to the notification collaborator.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publisher implements ports.EventPublisher. Messages are keyed by order id so
// events of one order stay in one partition and keep their order.
type Publisher struct {
	w     writer
	topic string
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return newPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}, topic)
}

func newPublisherWithWriter(w writer, topic string) *Publisher {
	return &Publisher{w: w, topic: topic}
}

// EventMessage is the JSON payload of one event.
type EventMessage struct {
	ID             string            `json:"id"`
	Type           string            `json:"type"`
	OrderID        string            `json:"orderId"`
	TrackingNumber string            `json:"trackingNumber"`
	Status         string            `json:"status"`
	PreviousStatus string            `json:"previousStatus,omitempty"`
	ActorID        string            `json:"actorId"`
	ActorRole      string            `json:"actorRole"`
	OccurredAt     time.Time         `json:"occurredAt"`
	Attributes     map[string]string `json:"attributes,omitempty"`
}

// Publish writes events in one batch. The batch either goes out whole or the
// error is returned and the caller retries all of it.
func (p *Publisher) Publish(ctx context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(toMessage(e))
		if err != nil {
			return errors.Wrap(err, "encode event")
		}
		msgs = append(msgs, kafka.Message{
			Topic: p.topic,
			Key:   []byte(e.OrderID.String()),
			Value: value,
			Headers: []kafka.Header{
				{Key: "event-type", Value: []byte(e.Type)},
			},
		})
	}

	if err := p.w.WriteMessages(ctx, msgs...); err != nil {
		return errors.Wrap(err, "kafka publish")
	}
	return nil
}

// Close flushes the underlying writer when it supports it.
func (p *Publisher) Close() error {
	if c, ok := p.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func toMessage(e order.Event) EventMessage {
	m := EventMessage{
		ID:             e.ID.String(),
		Type:           string(e.Type),
		OrderID:        e.OrderID.String(),
		TrackingNumber: e.TrackingNumber,
		Status:         e.Status.String(),
		ActorID:        e.ActorID.String(),
		ActorRole:      string(e.ActorRole),
		OccurredAt:     e.OccurredAt,
		Attributes:     e.Attributes,
	}
	if e.PreviousStatus != order.Unknown {
		m.PreviousStatus = e.PreviousStatus.String()
	}
	return m
}
