// Package memory keeps fulfillment state in process memory with the same
// semantics as the Postgres adapter: conditional status writes, append-only
// ledgers and an outbox committed together with the order change.
//
// It backs local runs with STORAGE=memory and the concurrency tests of the
// command handlers.
//
// Usage:
//
//	store := memory.NewStore()
//	factory := memory.NewUnitOfWorkFactory(store)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().UpdateIfStatus(ctx, o, observed, version); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package memory

import (
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

type agentRecord struct {
	name         string
	role         order.Role
	availability agent.Availability
	zoneID       *kernel.UUID
	depotID      *kernel.UUID
}

type depotRecord struct {
	name      string
	zoneID    *kernel.UUID
	managerID *kernel.UUID
	layout    []string
}

type outboxRecord struct {
	event       order.Event
	publishedAt *time.Time
}

// Store is the shared committed state. All access goes through its mutex; units
// of work stage their writes and apply them under the lock on commit.
type Store struct {
	mu sync.Mutex

	orders     map[kernel.UUID]order.Snapshot
	byTracking map[string]kernel.UUID
	agents     map[kernel.UUID]agentRecord
	depots     map[kernel.UUID]depotRecord
	outbox     []outboxRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		orders:     make(map[kernel.UUID]order.Snapshot),
		byTracking: make(map[string]kernel.UUID),
		agents:     make(map[kernel.UUID]agentRecord),
		depots:     make(map[kernel.UUID]depotRecord),
	}
}

// op applies one staged write and returns how to undo it.
type op func(s *Store) (undo func(), err error)

// apply runs ops in order under the lock. When one fails, the ones already
// applied are undone in reverse so a commit is all or nothing.
func (s *Store) apply(ops []op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	undos := make([]func(), 0, len(ops))
	for _, o := range ops {
		undo, err := o(s)
		if err != nil {
			for i := len(undos) - 1; i >= 0; i-- {
				undos[i]()
			}
			return err
		}
		undos = append(undos, undo)
	}
	return nil
}

func (s *Store) read(fn func(s *Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}
