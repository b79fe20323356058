package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// DefaultMaxAttempts bounds the compare-and-swap retry loop.
const DefaultMaxAttempts = 3

// RetryPolicy configures how transition handlers react to a lost compare-and-swap.
type RetryPolicy struct {
	// MaxAttempts is the number of tries when the caller did not pin an observed
	// status. Values below 1 mean DefaultMaxAttempts.
	MaxAttempts int
	// Now stamps ledger entries. Nil means time.Now.
	Now func() time.Time
}

// DefaultRetryPolicy retries a lost compare-and-swap up to DefaultMaxAttempts times.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts, Now: time.Now}
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return DefaultMaxAttempts
	}
	return p.MaxAttempts
}

func (p RetryPolicy) now() time.Time {
	if p.Now == nil {
		return time.Now().UTC()
	}
	return p.Now()
}

// orderLoader fetches the order a transition applies to.
type orderLoader[U OrderUoW] func(ctx context.Context, uow U) (*order.Order, error)

// orderMutation applies the domain change to a freshly loaded order. It may read
// other repositories of the same unit of work.
type orderMutation[U OrderUoW] func(ctx context.Context, uow U, o *order.Order, at time.Time) error

// transitionRun is one compare-and-swap protected change of an order.
type transitionRun[U OrderUoW] struct {
	create func() U
	policy RetryPolicy
	load   orderLoader[U]
	mutate orderMutation[U]
	// expected pins the status the caller observed; a mismatch is stale state and
	// no retry happens.
	expected *order.Status
}

// run executes the change, retrying on stale state when the caller did not pin an
// observed status. On a retry, an illegal transition means another actor moved the
// order first, so it is reported as stale state.
func (r transitionRun[U]) run(ctx context.Context) (*order.Order, error) {
	maxAttempts := r.policy.attempts()
	if r.expected != nil {
		maxAttempts = 1
	}

	var firstSeen *order.Status
	for attempt := 1; ; attempt++ {
		o, seen, err := r.attempt(ctx)
		if firstSeen == nil && seen != order.Unknown {
			firstSeen = &seen
		}
		if err == nil {
			return o, nil
		}

		if attempt > 1 && firstSeen != nil && errors.Is(err, order.ErrIllegalTransition) {
			var illegal *order.IllegalTransitionError
			if errors.As(err, &illegal) && illegal.From != *firstSeen {
				return nil, order.NewStaleStateError(o.ID(), *firstSeen, err)
			}
		}
		if !errors.Is(err, order.ErrStaleState) || attempt >= maxAttempts {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}

// attempt returns the order (possibly partially mutated, never persisted on error),
// the status it was loaded in, and the outcome.
func (r transitionRun[U]) attempt(ctx context.Context) (*order.Order, order.Status, error) {
	uow := r.create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := r.load(ctx, uow)
	if err != nil {
		return nil, order.Unknown, err
	}

	observedStatus, observedVersion := o.Status(), o.Version()
	if r.expected != nil && observedStatus != *r.expected {
		return o, observedStatus, order.NewStaleStateError(o.ID(), *r.expected, nil)
	}

	if err = r.mutate(ctx, uow, o, r.policy.now()); err != nil {
		return o, observedStatus, err
	}

	if err = uow.OrderRepository().UpdateIfStatus(ctx, o, observedStatus, observedVersion); err != nil {
		return o, observedStatus, err
	}

	if events := o.PullEvents(); len(events) > 0 {
		if err = uow.OutboxRepository().Add(ctx, events...); err != nil {
			return o, observedStatus, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return o, observedStatus, err
	}

	return o, observedStatus, nil
}

// byOrderID loads the order with the given id.
func byOrderID[U OrderUoW](id kernel.UUID) orderLoader[U] {
	return func(ctx context.Context, uow U) (*order.Order, error) {
		return uow.OrderRepository().Get(ctx, id)
	}
}
