package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/rediscache"
	"fulfillment/internal/adapters/out/zonefile"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	uowFactory ports.UnitOfWorkFactory
	index      ports.TrackingNumberIndex
	resolver   ports.ZoneResolver
	publisher  ports.EventPublisher
	closers    []func() error
}

// NewCompositionRoot wires the adapters. A nil gormDB selects the in-memory store.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{cfg: cfg, logger: logger}

	if gormDB != nil {
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	} else {
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
	}

	if cfg.RedisAddr != "" {
		index := rediscache.New(cfg.RedisAddr, cfg.TrackingIndexTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := index.Ping(ctx); err != nil {
			logger.Warn("tracking index unavailable, scans fall back to the repository", "error", err)
		}
		c.index = index
		c.closers = append(c.closers, index.Close)
	}

	if cfg.ZonesFile != "" {
		zones, err := zonefile.Load(cfg.ZonesFile)
		if err != nil {
			return nil, fmt.Errorf("zone directory: %w", err)
		}
		c.resolver = zones
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaOrderEventsTopic)
		c.publisher = publisher
		c.closers = append(c.closers, publisher.Close)
	} else {
		c.publisher = logPublisher{logger: logger.With("component", "event_log")}
	}

	return c, nil
}

// Close releases the adapters in reverse order of creation.
func (c *CompositionRoot) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.logger.Error("failed to close adapter", "error", err)
		}
	}
}

func (c *CompositionRoot) retryPolicy() commands.RetryPolicy {
	return commands.RetryPolicy{
		MaxAttempts: c.cfg.TransitionMaxAttempts,
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

func (c *CompositionRoot) orderUoWs() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) allUoWs() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWs(), c.index, c.retryPolicy())
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWs(), c.retryPolicy())
}

func (c *CompositionRoot) CreateCheckInCommandHandler() commands.CheckInCommandHandler {
	return commands.NewCheckInCommandHandler(c.allUoWs(), c.retryPolicy())
}

func (c *CompositionRoot) CreateCheckOutCommandHandler() commands.CheckOutCommandHandler {
	return commands.NewCheckOutCommandHandler(c.allUoWs(), c.resolver, c.retryPolicy())
}

func (c *CompositionRoot) CreateReportDiscrepancyCommandHandler() commands.ReportDiscrepancyCommandHandler {
	return commands.NewReportDiscrepancyCommandHandler(c.orderUoWs(), c.retryPolicy())
}

func (c *CompositionRoot) CreateAssignAgentCommandHandler() commands.AssignAgentCommandHandler {
	return commands.NewAssignAgentCommandHandler(c.allUoWs(), c.retryPolicy())
}

func (c *CompositionRoot) CreateScanPickupCommandHandler() commands.ScanPickupCommandHandler {
	return commands.NewScanPickupCommandHandler(c.allUoWs(), c.index, c.resolver, c.retryPolicy())
}

func (c *CompositionRoot) CreateReportDeliveryFailureCommandHandler() commands.ReportDeliveryFailureCommandHandler {
	return commands.NewReportDeliveryFailureCommandHandler(c.orderUoWs(), c.retryPolicy())
}

func (c *CompositionRoot) CreateRerouteFailedDeliveryCommandHandler() commands.RerouteFailedDeliveryCommandHandler {
	return commands.NewRerouteFailedDeliveryCommandHandler(c.orderUoWs(), c.retryPolicy(), c.failurePolicy())
}

func (c *CompositionRoot) CreateRequestRefundCommandHandler() commands.RequestRefundCommandHandler {
	return commands.NewRequestRefundCommandHandler(c.orderUoWs(), c.retryPolicy())
}

func (c *CompositionRoot) CreateAppendDisputeCommandHandler() commands.AppendDisputeCommandHandler {
	return commands.NewAppendDisputeCommandHandler(c.orderUoWs(), c.retryPolicy())
}

func (c *CompositionRoot) CreateSetAgentAvailabilityCommandHandler() commands.SetAgentAvailabilityCommandHandler {
	f := FuncAgentUoWFactory(func() commands.AgentUoW { return c.uowFactory.Create() })
	return commands.NewSetAgentAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterAgentCommandHandler() commands.RegisterAgentCommandHandler {
	f := FuncAgentUoWFactory(func() commands.AgentUoW { return c.uowFactory.Create() })
	return commands.NewRegisterAgentCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterDepotCommandHandler() commands.RegisterDepotCommandHandler {
	f := FuncDepotUoWFactory(func() commands.DepotUoW { return c.uowFactory.Create() })
	return commands.NewRegisterDepotCommandHandler(f)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	f := FuncOutboxUoWFactory(func() commands.OutboxUoW { return c.uowFactory.Create() })
	return commands.NewRelayOutboxCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetOrderByTrackingNumberQueryHandler() queries.GetOrderByTrackingNumberQueryHandler {
	return queries.NewGetOrderByTrackingNumberQueryHandler(c.uowFactory, c.index)
}

func (c *CompositionRoot) CreateListDepotOrdersQueryHandler() queries.ListDepotOrdersQueryHandler {
	return queries.NewListDepotOrdersQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateListDispatchCandidatesQueryHandler() queries.ListDispatchCandidatesQueryHandler {
	return queries.NewListDispatchCandidatesQueryHandler(c.uowFactory, c.resolver)
}

func (c *CompositionRoot) CreateListStaleDeliveryFailuresQueryHandler() queries.ListStaleDeliveryFailuresQueryHandler {
	return queries.NewListStaleDeliveryFailuresQueryHandler(c.uowFactory, c.failurePolicy())
}

func (c *CompositionRoot) failurePolicy() services.FailurePolicy {
	return services.NewFailurePolicy(c.cfg.FailedDeliveryStaleAfter)
}

// CreateHTTPServer wires every use case into the REST adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		TransitionOrder:       c.CreateTransitionOrderCommandHandler(),
		CheckIn:               c.CreateCheckInCommandHandler(),
		CheckOut:              c.CreateCheckOutCommandHandler(),
		ReportDiscrepancy:     c.CreateReportDiscrepancyCommandHandler(),
		AssignAgent:           c.CreateAssignAgentCommandHandler(),
		ScanPickup:            c.CreateScanPickupCommandHandler(),
		ReportDeliveryFailure: c.CreateReportDeliveryFailureCommandHandler(),
		RerouteFailedDelivery: c.CreateRerouteFailedDeliveryCommandHandler(),
		RequestRefund:         c.CreateRequestRefundCommandHandler(),
		AppendDispute:         c.CreateAppendDisputeCommandHandler(),
		SetAgentAvailability:  c.CreateSetAgentAvailabilityCommandHandler(),
		RegisterAgent:         c.CreateRegisterAgentCommandHandler(),
		RegisterDepot:         c.CreateRegisterDepotCommandHandler(),

		GetOrder:                 c.CreateGetOrderQueryHandler(),
		GetOrderByTrackingNumber: c.CreateGetOrderByTrackingNumberQueryHandler(),
		ListDepotOrders:          c.CreateListDepotOrdersQueryHandler(),
		ListDispatchCandidates:   c.CreateListDispatchCandidatesQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayOutboxCommandHandler(),
		c.cfg.OutboxBatchSize,
		c.CreateListStaleDeliveryFailuresQueryHandler(),
		c.logger,
	)
}

// logPublisher stands in for Kafka when no broker is configured.
type logPublisher struct {
	logger *slog.Logger
}

func (p logPublisher) Publish(ctx context.Context, events ...order.Event) error {
	for _, e := range events {
		p.logger.InfoContext(ctx, "order event",
			"type", string(e.Type),
			"orderId", e.OrderID.String(),
			"status", e.Status.String(),
		)
	}
	return nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}

type FuncDepotUoWFactory func() commands.DepotUoW

func (f FuncDepotUoWFactory) Create() commands.DepotUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
