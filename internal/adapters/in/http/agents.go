package http

import (
	"net/http"
	"strings"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// RegisterAgent handles POST /api/v1/agents. The id defaults to a new one; the
// auth gateway is expected to issue the same id in X-User-ID.
func (s *Server) RegisterAgent(c echo.Context) error {
	var body NewAgent
	if err := s.bind(c, &body); err != nil {
		return s.fail(c, err)
	}

	agentID, err := idOrNew(body.ID)
	if err != nil {
		return s.fail(c, err)
	}
	zoneID, err := optionalUUID(body.ZoneID)
	if err != nil {
		return s.fail(c, err)
	}
	depotID, err := optionalUUID(body.DepotID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRegisterAgentCommand(agentID, actorFrom(c), body.Name, body.Role, zoneID, depotID)
	if err != nil {
		return s.fail(c, err)
	}
	a, err := s.h.RegisterAgent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toAgent(a))
}

// SetAgentAvailability handles PUT /api/v1/agents/me/availability.
func (s *Server) SetAgentAvailability(c echo.Context) error {
	var body AvailabilityUpdate
	if err := s.bind(c, &body); err != nil {
		return s.fail(c, err)
	}

	actor := actorFrom(c)
	cmd, err := commands.NewSetAgentAvailabilityCommand(actor.UserID, actor, body.Availability)
	if err != nil {
		return s.fail(c, err)
	}
	a, err := s.h.SetAgentAvailability.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toAgent(a))
}

// RegisterDepot handles POST /api/v1/depots.
func (s *Server) RegisterDepot(c echo.Context) error {
	var body NewDepot
	if err := s.bind(c, &body); err != nil {
		return s.fail(c, err)
	}

	depotID, err := idOrNew(body.ID)
	if err != nil {
		return s.fail(c, err)
	}
	zoneID, err := optionalUUID(body.ZoneID)
	if err != nil {
		return s.fail(c, err)
	}
	managerID, err := optionalUUID(body.ManagerID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRegisterDepotCommand(depotID, actorFrom(c), body.Name, zoneID, managerID, body.Layout)
	if err != nil {
		return s.fail(c, err)
	}
	d, err := s.h.RegisterDepot.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toDepot(d))
}

// ListDepotOrders handles GET /api/v1/depots/:depotId/orders?status=at-depot.
func (s *Server) ListDepotOrders(c echo.Context) error {
	depotID, err := pathUUID(c, "depotId")
	if err != nil {
		return s.fail(c, err)
	}
	rawStatus, err := queryString(c, "status", true)
	if err != nil {
		return s.fail(c, err)
	}
	status, err := order.ParseStatus(rawStatus)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListDepotOrdersQuery(depotID, status, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	orders, err := s.h.ListDepotOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]DepotOrder, len(orders))
	for i, o := range orders {
		response[i] = DepotOrder{
			ID:                o.ID.String(),
			TrackingNumber:    o.TrackingNumber,
			Status:            o.Status.String(),
			StorageLocationID: o.StorageLocationID,
			CheckedInAt:       o.CheckedInAt,
			AgentID:           idString(o.AgentID),
		}
	}
	return c.JSON(http.StatusOK, response)
}

func idOrNew(raw string) (kernel.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return kernel.NewUUID(), nil
	}
	return kernel.UUIDFromString(strings.TrimSpace(raw))
}
