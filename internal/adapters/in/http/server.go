// Package http exposes the fulfillment use cases over REST.
package http

import (
	"log/slog"
	"net/http"

	_ "fulfillment/internal/adapters/in/http/docs"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	// Command handlers
	CreateOrder           commands.CreateOrderCommandHandler
	TransitionOrder       commands.TransitionOrderCommandHandler
	CheckIn               commands.CheckInCommandHandler
	CheckOut              commands.CheckOutCommandHandler
	ReportDiscrepancy     commands.ReportDiscrepancyCommandHandler
	AssignAgent           commands.AssignAgentCommandHandler
	ScanPickup            commands.ScanPickupCommandHandler
	ReportDeliveryFailure commands.ReportDeliveryFailureCommandHandler
	RerouteFailedDelivery commands.RerouteFailedDeliveryCommandHandler
	RequestRefund         commands.RequestRefundCommandHandler
	AppendDispute         commands.AppendDisputeCommandHandler
	SetAgentAvailability  commands.SetAgentAvailabilityCommandHandler
	RegisterAgent         commands.RegisterAgentCommandHandler
	RegisterDepot         commands.RegisterDepotCommandHandler

	// Query handlers
	GetOrder                 queries.GetOrderQueryHandler
	GetOrderByTrackingNumber queries.GetOrderByTrackingNumberQueryHandler
	ListDepotOrders          queries.ListDepotOrdersQueryHandler
	ListDispatchCandidates   queries.ListDispatchCandidatesQueryHandler
}

// Server translates HTTP requests into commands and queries. Handlers stay thin:
// every status change goes through the command layer.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      h,
		logger: logger.With("component", "http"),
	}
}

// apiBasePath prefixes every route the API document describes.
const apiBasePath = "/api/v1"

// NewEcho builds the echo instance with middleware and every route registered.
// API requests are checked against the served document before any handler runs.
func NewEcho(s *Server) (*echo.Echo, error) {
	doc, err := LoadAPIDoc()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			s.logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	s.Register(e.Group(apiBasePath, Authenticate(), s.ValidateRequests(doc, apiBasePath)))
	return e, nil
}

// Register mounts the API routes on g.
func (s *Server) Register(g *echo.Group) {
	g.POST("/orders", s.CreateOrder)
	g.GET("/orders/tracking/:trackingNumber", s.GetOrderByTrackingNumber)
	g.GET("/orders/:orderId", s.GetOrder)
	g.POST("/orders/:orderId/transitions", s.TransitionOrder)
	g.POST("/orders/:orderId/check-in", s.CheckIn)
	g.POST("/orders/:orderId/check-out", s.CheckOut)
	g.POST("/orders/:orderId/discrepancies", s.ReportDiscrepancy)
	g.POST("/orders/:orderId/assign", s.AssignAgent)
	g.POST("/orders/:orderId/delivery-failures", s.ReportDeliveryFailure)
	g.POST("/orders/:orderId/reroute", s.RerouteFailedDelivery)
	g.POST("/orders/:orderId/refund-requests", s.RequestRefund)
	g.POST("/orders/:orderId/disputes", s.AppendDispute)
	g.GET("/orders/:orderId/candidates", s.ListDispatchCandidates)
	g.POST("/scans", s.ScanPickup)

	g.POST("/agents", s.RegisterAgent)
	g.PUT("/agents/me/availability", s.SetAgentAvailability)
	g.POST("/depots", s.RegisterDepot)
	g.GET("/depots/:depotId/orders", s.ListDepotOrders)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}
