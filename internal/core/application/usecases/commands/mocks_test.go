package commands_test

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*order.Order, error) {
	args := m.Called(ctx, trackingNumber)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) UpdateIfStatus(
	ctx context.Context,
	o *order.Order,
	expectedStatus order.Status,
	expectedVersion int,
) error {
	args := m.Called(ctx, o, expectedStatus, expectedVersion)
	return args.Error(0)
}

func (m *MockOrderRepository) AppendDispute(ctx context.Context, orderID kernel.UUID, msg order.DisputeMessage) error {
	args := m.Called(ctx, orderID, msg)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByDepotAndStatus(
	_ context.Context,
	_ kernel.UUID,
	_ order.Status,
) ([]*order.Order, error) {
	return nil, nil
}

func (m *MockOrderRepository) ListInStatusSince(_ context.Context, _ order.Status, _ time.Time) ([]*order.Order, error) {
	return nil, nil
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, events ...order.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockOutboxRepository) ListUnpublished(_ context.Context, _ int) ([]order.Event, error) {
	return nil, nil
}

func (m *MockOutboxRepository) MarkPublished(_ context.Context, _ time.Time, _ ...kernel.UUID) error {
	return nil
}

type MockOrderUoW struct {
	mock.Mock
	orders *MockOrderRepository
	outbox *MockOutboxRepository
}

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.orders
}

func (m *MockOrderUoW) OutboxRepository() ports.OutboxRepository {
	return m.outbox
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func newMockOrderUoW() (*MockOrderUoW, *MockOrderRepository, *MockOutboxRepository) {
	orders := new(MockOrderRepository)
	outbox := new(MockOutboxRepository)
	return &MockOrderUoW{orders: orders, outbox: outbox}, orders, outbox
}
