package memory

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OutboxRepository implements ports.OutboxRepository over a Store.
type OutboxRepository struct {
	store *Store
	tx    *UnitOfWork
}

func (r *OutboxRepository) Add(_ context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}

	staged := append([]order.Event(nil), events...)
	return r.tx.write(func(s *Store) (func(), error) {
		n := len(s.outbox)
		for _, e := range staged {
			s.outbox = append(s.outbox, outboxRecord{event: e})
		}
		return func() { s.outbox = s.outbox[:n] }, nil
	})
}

func (r *OutboxRepository) ListUnpublished(_ context.Context, limit int) ([]order.Event, error) {
	var events []order.Event
	r.store.read(func(s *Store) {
		for _, rec := range s.outbox {
			if rec.publishedAt != nil {
				continue
			}
			if limit > 0 && len(events) >= limit {
				return
			}
			events = append(events, rec.event)
		}
	})
	return events, nil
}

func (r *OutboxRepository) MarkPublished(_ context.Context, at time.Time, ids ...kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	return r.tx.write(func(s *Store) (func(), error) {
		var marked []int
		for i := range s.outbox {
			if s.outbox[i].publishedAt != nil {
				continue
			}
			for _, id := range ids {
				if s.outbox[i].event.ID.IsEqual(id) {
					published := at
					s.outbox[i].publishedAt = &published
					marked = append(marked, i)
					break
				}
			}
		}
		return func() {
			for _, i := range marked {
				s.outbox[i].publishedAt = nil
			}
		}, nil
	})
}
