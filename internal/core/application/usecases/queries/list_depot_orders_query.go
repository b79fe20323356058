package queries

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrListDepotOrdersQueryIsNotConstructed = errors.New(
		"ListDepotOrdersQuery must be created via NewListDepotOrdersQuery constructor",
	)
)

var depotStaff = []order.Role{order.RoleDepotAgent, order.RoleDepotManager, order.RoleSuperadmin}

// ListDepotOrdersQuery lists the parcels checked in at a depot that sit in one
// status, oldest check-in first. Only depot staff may run it.
//
// Example:
//
//	query, err := NewListDepotOrdersQuery(depotID, order.AtDepot, actor)
//	shelf, err := handler.Handle(ctx, query)
//	for _, o := range shelf {
//	    fmt.Printf("%s on %s\n", o.TrackingNumber, o.StorageLocationID)
//	}
type ListDepotOrdersQuery struct { //nolint:recvcheck //using for validation
	depotID kernel.UUID
	status  order.Status
	actor   order.Actor

	guard guard.ConstructorGuard
}

func NewListDepotOrdersQuery(depotID kernel.UUID, status order.Status, actor order.Actor) (ListDepotOrdersQuery, error) {
	if err := errors.Join(depotID.Validate(), status.Validate(), actor.Validate()); err != nil {
		return ListDepotOrdersQuery{}, err
	}
	if !slices.Contains(depotStaff, actor.Role) {
		return ListDepotOrdersQuery{}, fmt.Errorf("%w: only depot staff list depot orders", order.ErrForbidden)
	}

	return ListDepotOrdersQuery{
		depotID: depotID,
		status:  status,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListDepotOrdersQuery) DepotID() kernel.UUID { return q.depotID }
func (q ListDepotOrdersQuery) Status() order.Status { return q.status }
func (q ListDepotOrdersQuery) Actor() order.Actor   { return q.actor }

// Validate ensures the query was created through the constructor.
func (q ListDepotOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListDepotOrdersQueryIsNotConstructed)
}

// ListDepotOrdersQueryResponse is one shelf entry.
type ListDepotOrdersQueryResponse struct {
	ID                kernel.UUID
	TrackingNumber    string
	Status            order.Status
	StorageLocationID string
	CheckedInAt       *time.Time
	AgentID           *kernel.UUID
}
