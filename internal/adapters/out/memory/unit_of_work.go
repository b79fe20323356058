package memory

import (
	"context"
	"errors"

	"fulfillment/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback without Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create returns a fresh unit of work. Each goroutine needs its own.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes between Begin and Commit. Reads see committed state
// only. Outside a transaction writes apply immediately.
type UnitOfWork struct {
	store  *Store
	active bool
	staged []op
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}
	uow.active = true
	uow.staged = nil
	return nil
}

// Commit applies the staged writes atomically. Conditional writes are checked
// again against the committed state, so a concurrent winner makes this commit
// fail with stale state and nothing is applied.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	staged := uow.staged
	uow.active = false
	uow.staged = nil
	return uow.store.apply(staged)
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.active = false
	uow.staged = nil
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{store: uow.store, tx: uow}
}

func (uow *UnitOfWork) AgentRepository() ports.AgentRepository {
	return &AgentRepository{store: uow.store, tx: uow}
}

func (uow *UnitOfWork) DepotRepository() ports.DepotRepository {
	return &DepotRepository{store: uow.store, tx: uow}
}

func (uow *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return &OutboxRepository{store: uow.store, tx: uow}
}

// write stages o inside a transaction or applies it right away.
func (uow *UnitOfWork) write(o op) error {
	if !uow.active {
		return uow.store.apply([]op{o})
	}
	uow.staged = append(uow.staged, o)
	return nil
}
