package orderrepo_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/order/ordertest"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	fx         ordertest.Fixture
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(orderrepo.Models()...))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_refund_requests, order_tracking_events, order_status_changes, order_dispute_messages",
	).Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
	suite.fx = ordertest.NewFixture()
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) add(status order.Status) *order.Order {
	o := suite.fx.OrderIn(suite.T(), status)
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsLedgersAndIncidents() {
	ctx := context.Background()
	stored := suite.add(order.RefundRequested)
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", stored.ID(), stored)

	loaded, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)

	suite.Equal(stored.TrackingNumber(), loaded.TrackingNumber())
	suite.Equal(order.RefundRequested, loaded.Status())
	suite.Equal(stored.Version(), loaded.Version())
	suite.True(stored.Total().IsEqual(loaded.Total()))
	suite.Equal(stored.ShippingAddress().String(), loaded.ShippingAddress().String())
	suite.Require().Len(loaded.Items(), 1)
	suite.Equal(stored.Items()[0].Name, loaded.Items()[0].Name)

	suite.Require().Len(loaded.StatusChangeLog(), len(stored.StatusChangeLog()))
	for i, c := range stored.StatusChangeLog() {
		got := loaded.StatusChangeLog()[i]
		suite.Equal(c.Status, got.Status)
		suite.Equal(c.Role, got.Role)
		suite.True(c.At.Equal(got.At))
	}
	suite.Len(loaded.TrackingHistory(), len(stored.TrackingHistory()))

	suite.Require().NotNil(loaded.RefundRequest())
	suite.Equal("damaged", loaded.RefundRequest().Reason)
	suite.Require().NotNil(loaded.CheckedInAt())
	suite.Equal("A-01", loaded.StorageLocationID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_IsRejected() {
	ctx := context.Background()
	o := suite.add(order.Confirmed)

	err := suite.repository.Add(ctx, o)
	suite.ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	o, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Nil(o)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByTrackingNumber_IgnoresCase() {
	o := suite.add(order.ReadyForPickup)

	loaded, err := suite.repository.GetByTrackingNumber(context.Background(), " "+strings.ToLower(o.TrackingNumber())+" ")
	suite.Require().NoError(err)
	suite.Equal(o.ID(), loaded.ID())

	_, err = suite.repository.GetByTrackingNumber(context.Background(), "TRK-NONE")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateIfStatus_AppendsLedgers() {
	ctx := context.Background()
	stored := suite.add(order.OutForDelivery)

	o, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	observed, version := o.Status(), o.Version()

	at := suite.fx.Now.Add(time.Hour)
	suite.Require().NoError(o.Transition(order.DeliveryFailed, suite.fx.Actor(order.RoleDeliveryAgent), suite.fx.Payload(), at))
	suite.Require().NoError(suite.repository.UpdateIfStatus(ctx, o, observed, version))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.DeliveryFailed, loaded.Status())
	suite.Equal(version+1, loaded.Version())
	suite.Len(loaded.StatusChangeLog(), len(stored.StatusChangeLog())+1)
	suite.Len(loaded.TrackingHistory(), len(stored.TrackingHistory())+1)
	suite.Require().NotNil(loaded.DeliveryFailure())
	suite.Equal(order.FailureClientAbsent, loaded.DeliveryFailure().Reason)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateIfStatus_StaleAndMissing() {
	ctx := context.Background()
	stored := suite.add(order.ReadyForPickup)

	o, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(o.Transition(order.PickedUp, suite.fx.Actor(order.RoleDeliveryAgent), suite.fx.Payload(), suite.fx.Now.Add(time.Hour)))

	suite.Run("wrong status", func() {
		err := suite.repository.UpdateIfStatus(ctx, o, order.Confirmed, stored.Version())
		suite.ErrorIs(err, order.ErrStaleState)
	})

	suite.Run("wrong version", func() {
		err := suite.repository.UpdateIfStatus(ctx, o, order.ReadyForPickup, stored.Version()+5)
		suite.ErrorIs(err, order.ErrStaleState)
	})

	suite.Run("unknown order", func() {
		other := suite.fx.OrderIn(suite.T(), order.Confirmed)
		err := suite.repository.UpdateIfStatus(ctx, other, order.Confirmed, other.Version())
		suite.ErrorIs(err, errs.ErrObjectNotFound)
	})

	loaded, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	suite.Equal(order.ReadyForPickup, loaded.Status())
	suite.Len(loaded.StatusChangeLog(), len(stored.StatusChangeLog()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateIfStatus_ConcurrentWritersHaveOneWinner() {
	ctx := context.Background()
	stored := suite.add(order.ReadyForPickup)

	const racers = 6
	results := make([]error, racers)
	var wg sync.WaitGroup
	for i := range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o, err := suite.repository.Get(ctx, stored.ID())
			if err != nil {
				results[i] = err
				return
			}
			actor := order.Actor{UserID: kernel.NewUUID(), Role: order.RoleDeliveryAgent}
			agentID := actor.UserID
			if err = o.Transition(order.PickedUp, actor, order.Payload{AgentID: &agentID}, suite.fx.Now.Add(time.Hour)); err != nil {
				results[i] = err
				return
			}
			results[i] = suite.repository.UpdateIfStatus(ctx, o, stored.Status(), stored.Version())
		}()
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		suite.ErrorIs(err, order.ErrStaleState)
	}
	suite.Equal(1, wins)

	loaded, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	suite.Len(loaded.StatusChangeLog(), len(stored.StatusChangeLog())+1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAppendDispute_KeepsStatusAndVersion() {
	ctx := context.Background()
	stored := suite.add(order.Delivered)

	for _, text := range []string{"parcel was opened", "seller answered"} {
		msg, err := order.NewDisputeMessage(suite.fx.Actor(order.RoleCustomer), text, suite.fx.Now.Add(time.Hour))
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.AppendDispute(ctx, stored.ID(), msg))
	}

	loaded, err := suite.repository.Get(ctx, stored.ID())
	suite.Require().NoError(err)
	suite.Equal(stored.Version(), loaded.Version())
	suite.Require().Len(loaded.DisputeLog(), 2)
	suite.Equal("parcel was opened", loaded.DisputeLog()[0].Message)
	suite.Equal("seller answered", loaded.DisputeLog()[1].Message)

	msg, err := order.NewDisputeMessage(suite.fx.Actor(order.RoleCustomer), "hello", suite.fx.Now)
	suite.Require().NoError(err)
	suite.ErrorIs(suite.repository.AppendDispute(ctx, kernel.NewUUID(), msg), errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByDepotAndStatus() {
	ctx := context.Background()
	first := suite.add(order.AtDepot)
	second := suite.add(order.AtDepot)
	suite.add(order.OutForDelivery)
	suite.add(order.Confirmed)

	orders, err := suite.repository.ListByDepotAndStatus(ctx, suite.fx.DepotID, order.AtDepot)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.ElementsMatch([]kernel.UUID{first.ID(), second.ID()}, []kernel.UUID{orders[0].ID(), orders[1].ID()})

	none, err := suite.repository.ListByDepotAndStatus(ctx, kernel.NewUUID(), order.AtDepot)
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListInStatusSince() {
	ctx := context.Background()
	failed := suite.add(order.DeliveryFailed)
	suite.add(order.Delivered)

	last, ok := failed.LastStatusChange()
	suite.Require().True(ok)

	orders, err := suite.repository.ListInStatusSince(ctx, order.DeliveryFailed, last.At.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal(failed.ID(), orders[0].ID())

	orders, err = suite.repository.ListInStatusSince(ctx, order.DeliveryFailed, last.At)
	suite.Require().NoError(err)
	suite.Empty(orders)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
