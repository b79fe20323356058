package http

import (
	"fmt"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) bind(c echo.Context, body any) error {
	if err := c.Bind(body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

// CreateOrder handles POST /api/v1/orders. Customers create orders for themselves;
// a superadmin may create one on behalf of customerId.
func (s *Server) CreateOrder(c echo.Context) error {
	actor := actorFrom(c)
	var body NewOrder
	if err := s.bind(c, &body); err != nil {
		return s.fail(c, err)
	}

	details, err := checkoutDetails(actor, body)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), details)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toOrderFromAggregate(o))
}

func checkoutDetails(actor order.Actor, body NewOrder) (order.CheckoutDetails, error) {
	customerID := actor.UserID
	switch actor.Role { //nolint:exhaustive // only customers and superadmins check out
	case order.RoleCustomer:
	case order.RoleSuperadmin:
		id, err := kernel.UUIDFromString(body.CustomerID)
		if err != nil {
			return order.CheckoutDetails{}, errs.NewValueIsInvalidErrorWithCause("customerId", err)
		}
		customerID = id
	default:
		return order.CheckoutDetails{}, fmt.Errorf("%w: %s cannot create orders", order.ErrForbidden, actor.Role)
	}

	sellerID, err := kernel.UUIDFromString(body.SellerID)
	if err != nil {
		return order.CheckoutDetails{}, errs.NewValueIsInvalidErrorWithCause("sellerId", err)
	}
	fee, err := kernel.MoneyFromString(body.DeliveryFee)
	if err != nil {
		return order.CheckoutDetails{}, err
	}
	address, err := kernel.NewAddress(body.ShippingAddress.Street, body.ShippingAddress.City, body.ShippingAddress.PostalCode)
	if err != nil {
		return order.CheckoutDetails{}, err
	}
	method, err := order.ParseDeliveryMethod(body.DeliveryMethod)
	if err != nil {
		return order.CheckoutDetails{}, err
	}
	pickupPointID, err := optionalUUID(body.PickupPointID)
	if err != nil {
		return order.CheckoutDetails{}, err
	}

	items := make([]order.Item, 0, len(body.Items))
	for _, i := range body.Items {
		productID, err := kernel.UUIDFromString(i.ProductID)
		if err != nil {
			return order.CheckoutDetails{}, errs.NewValueIsInvalidErrorWithCause("productId", err)
		}
		price, err := kernel.MoneyFromString(i.UnitPrice)
		if err != nil {
			return order.CheckoutDetails{}, err
		}
		item, err := order.NewItem(productID, i.Name, i.Quantity, price)
		if err != nil {
			return order.CheckoutDetails{}, err
		}
		items = append(items, item)
	}

	return order.CheckoutDetails{
		TrackingNumber:  body.TrackingNumber,
		CustomerID:      customerID,
		SellerID:        sellerID,
		Items:           items,
		DeliveryFee:     fee,
		ShippingAddress: address,
		DeliveryMethod:  method,
		PickupPointID:   pickupPointID,
	}, nil
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetOrderQuery(orderID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}

	details, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrder(details))
}

// GetOrderByTrackingNumber handles GET /api/v1/orders/tracking/:trackingNumber.
func (s *Server) GetOrderByTrackingNumber(c echo.Context) error {
	trackingNumber, err := pathString(c, "trackingNumber")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetOrderByTrackingNumberQuery(trackingNumber, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}

	details, err := s.h.GetOrderByTrackingNumber.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrder(details))
}

// TransitionOrder handles POST /api/v1/orders/:orderId/transitions. When
// expectedStatus is given the transition fails with 409 if the order has moved on.
// Moves that need an agent, a depot or a shelf have their own endpoints and
// are answered with 422 here.
func (s *Server) TransitionOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	var body Transition
	if err = s.bind(c, &body); err != nil {
		return s.fail(c, err)
	}

	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, actorFrom(c), order.Payload{
		RecipientName: body.RecipientName,
		Location:      body.Location,
		Detail:        body.Detail,
	})
	if err != nil {
		return s.fail(c, err)
	}
	if body.ExpectedStatus != "" {
		expected, parseErr := order.ParseStatus(body.ExpectedStatus)
		if parseErr != nil {
			return s.fail(c, parseErr)
		}
		cmd = cmd.WithExpectedStatus(expected)
	}

	o, err := s.h.TransitionOrder.Handle(c.Request().Context(), cmd)
	return s.respondOrder(c, o, err)
}

// CheckIn handles POST /api/v1/orders/:orderId/check-in.
func (s *Server) CheckIn(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	var body CheckIn
	if err = s.bind(c, &body); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCheckInCommand(orderID, actorFrom(c), body.StorageLocationID)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.CheckIn.Handle(c.Request().Context(), cmd)
	return s.respondOrder(c, o, err)
}

// CheckOut handles POST /api/v1/orders/:orderId/check-out. Without agentId the
// dispatcher picks the first available agent of the dispatch zone.
func (s *Server) CheckOut(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	var body CheckOut
	if err = s.bind(c, &body); err != nil {
		return s.fail(c, err)
	}
	agentID, err := optionalUUID(body.AgentID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCheckOutCommand(orderID, actorFrom(c), agentID)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.CheckOut.Handle(c.Request().Context(), cmd)
	return s.respondOrder(c, o, err)
}

// ReportDiscrepancy handles POST /api/v1/orders/:orderId/discrepancies.
func (s *Server) ReportDiscrepancy(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	var body NewDiscrepancy
	if err = s.bind(c, &body); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewReportDiscrepancyCommand(orderID, actorFrom(c), body.Kind, body.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.ReportDiscrepancy.Handle(c.Request().Context(), cmd)
	return s.respondOrder(c, o, err)
}

// AssignAgent handles POST /api/v1/orders/:orderId/assign.
func (s *Server) AssignAgent(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	var body Assignment
	if err = s.bind(c, &body); err != nil {
		return s.fail(c, err)
	}
	agentID, err := kernel.UUIDFromString(body.AgentID)
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("agentId", err))
	}

	cmd, err := commands.NewAssignAgentCommand(orderID, actorFrom(c), agentID)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.AssignAgent.Handle(c.Request().Context(), cmd)
	return s.respondOrder(c, o, err)
}

// ScanPickup handles POST /api/v1/scans: a delivery agent scanned a parcel label.
func (s *Server) ScanPickup(c echo.Context) error {
	var body Scan
	if err := s.bind(c, &body); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewScanPickupCommand(body.TrackingNumber, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.ScanPickup.Handle(c.Request().Context(), cmd)
	return s.respondOrder(c, o, err)
}

// ReportDeliveryFailure handles POST /api/v1/orders/:orderId/delivery-failures.
func (s *Server) ReportDeliveryFailure(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	var body NewDeliveryFailure
	if err = s.bind(c, &body); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewReportDeliveryFailureCommand(orderID, actorFrom(c), body.Reason, body.Details)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.ReportDeliveryFailure.Handle(c.Request().Context(), cmd)
	return s.respondOrder(c, o, err)
}

// RerouteFailedDelivery handles POST /api/v1/orders/:orderId/reroute.
func (s *Server) RerouteFailedDelivery(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	var body Reroute
	if err = s.bind(c, &body); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRerouteFailedDeliveryCommand(orderID, actorFrom(c), body.StorageLocationID)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.RerouteFailedDelivery.Handle(c.Request().Context(), cmd)
	return s.respondOrder(c, o, err)
}

// RequestRefund handles POST /api/v1/orders/:orderId/refund-requests.
func (s *Server) RequestRefund(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	var body NewRefundRequest
	if err = s.bind(c, &body); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRequestRefundCommand(orderID, actorFrom(c), body.Reason, body.EvidenceURLs)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.RequestRefund.Handle(c.Request().Context(), cmd)
	return s.respondOrder(c, o, err)
}

// AppendDispute handles POST /api/v1/orders/:orderId/disputes.
func (s *Server) AppendDispute(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	var body NewDisputeMessage
	if err = s.bind(c, &body); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAppendDisputeCommand(orderID, actorFrom(c), body.Message)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.h.AppendDispute.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toOrderFromAggregate(o))
}

// ListDispatchCandidates handles GET /api/v1/orders/:orderId/candidates. Repeated
// zoneId parameters widen the search to those zones.
func (s *Server) ListDispatchCandidates(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.fail(c, err)
	}
	zones, err := queryUUIDs(c, "zoneId")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListDispatchCandidatesQuery(orderID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	if query, err = query.WithZones(zones...); err != nil {
		return s.fail(c, err)
	}

	candidates, err := s.h.ListDispatchCandidates.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]Candidate, len(candidates))
	for i, candidate := range candidates {
		response[i] = Candidate{
			ID:     candidate.ID.String(),
			Name:   candidate.Name,
			ZoneID: candidate.ZoneID.String(),
		}
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) respondOrder(c echo.Context, o *order.Order, err error) error {
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderFromAggregate(o))
}
