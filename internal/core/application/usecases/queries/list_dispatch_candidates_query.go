package queries

import (
	"errors"
	"fmt"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrListDispatchCandidatesQueryIsNotConstructed = errors.New(
		"ListDispatchCandidatesQuery must be created via NewListDispatchCandidatesQuery constructor",
	)
)

// ListDispatchCandidatesQuery shows which delivery agents a check-out of the order
// could pick right now: available agents of the order's dispatch zones.
type ListDispatchCandidatesQuery struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	actor      order.Actor
	extraZones []kernel.UUID

	guard guard.ConstructorGuard
}

func NewListDispatchCandidatesQuery(orderID kernel.UUID, actor order.Actor) (ListDispatchCandidatesQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return ListDispatchCandidatesQuery{}, err
	}
	if !slices.Contains(depotStaff, actor.Role) {
		return ListDispatchCandidatesQuery{}, fmt.Errorf("%w: only depot staff list dispatch candidates", order.ErrForbidden)
	}

	return ListDispatchCandidatesQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListDispatchCandidatesQuery) OrderID() kernel.UUID { return q.orderID }
func (q ListDispatchCandidatesQuery) Actor() order.Actor   { return q.actor }

func (q ListDispatchCandidatesQuery) ExtraZones() []kernel.UUID {
	return slices.Clone(q.extraZones)
}

// WithZones widens the search to the named zones, typically zones adjacent to the
// order's own. The order's dispatch zones are always searched.
func (q ListDispatchCandidatesQuery) WithZones(zoneIDs ...kernel.UUID) (ListDispatchCandidatesQuery, error) {
	for _, z := range zoneIDs {
		if err := z.Validate(); err != nil {
			return ListDispatchCandidatesQuery{}, err
		}
	}
	q.extraZones = append(slices.Clone(q.extraZones), zoneIDs...)
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDispatchCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrListDispatchCandidatesQueryIsNotConstructed)
}

// ListDispatchCandidatesQueryResponse is one eligible delivery agent.
type ListDispatchCandidatesQueryResponse struct {
	ID     kernel.UUID
	Name   string
	ZoneID kernel.UUID
}
