package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type writerMock struct {
	mock.Mock
}

func (m *writerMock) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func sampleEvent(previous order.Status) order.Event {
	return order.Event{
		ID:             kernel.NewUUID(),
		Type:           order.EventStatusChanged,
		OrderID:        kernel.NewUUID(),
		TrackingNumber: "TRK-0001",
		Status:         order.PickedUp,
		PreviousStatus: previous,
		ActorID:        kernel.NewUUID(),
		ActorRole:      order.RoleDeliveryAgent,
		OccurredAt:     time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		Attributes:     map[string]string{"agentId": "a-1"},
	}
}

type PublisherSuite struct {
	suite.Suite
	wm *writerMock
	p  *Publisher
}

func (s *PublisherSuite) SetupTest() {
	s.wm = &writerMock{}
	s.p = newPublisherWithWriter(s.wm, "order-events")
}

func (s *PublisherSuite) TestNewPublisher_NotNil() {
	p := NewPublisher([]string{"localhost:0"}, "order-events")
	s.Require().NotNil(p)
	s.Require().NoError(p.Close())
}

func (s *PublisherSuite) TestPublish_KeyedByOrder() {
	e := sampleEvent(order.ReadyForPickup)
	s.wm.
		On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 {
				return false
			}
			var got EventMessage
			if err := json.Unmarshal(msgs[0].Value, &got); err != nil {
				return false
			}
			return msgs[0].Topic == "order-events" &&
				string(msgs[0].Key) == e.OrderID.String() &&
				got.Status == "picked-up" &&
				got.PreviousStatus == "ready-for-pickup" &&
				got.Attributes["agentId"] == "a-1"
		})).
		Return(nil).
		Once()

	s.Require().NoError(s.p.Publish(context.Background(), e))
	s.wm.AssertExpectations(s.T())
}

func (s *PublisherSuite) TestPublish_CreationHasNoPreviousStatus() {
	var sent []kafka.Message
	s.wm.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]kafka.Message) }).
		Return(nil).
		Once()

	s.Require().NoError(s.p.Publish(context.Background(), sampleEvent(order.Unknown)))
	s.Require().Len(sent, 1)
	s.NotContains(string(sent[0].Value), "previousStatus")
}

func (s *PublisherSuite) TestPublish_Empty() {
	s.Require().NoError(s.p.Publish(context.Background()))
	s.wm.AssertNotCalled(s.T(), "WriteMessages", mock.Anything, mock.Anything)
}

func (s *PublisherSuite) TestPublish_ErrorWrapped() {
	want := errors.New("boom")
	s.wm.On("WriteMessages", mock.Anything, mock.Anything).Return(want).Once()

	err := s.p.Publish(context.Background(), sampleEvent(order.Confirmed), sampleEvent(order.PickedUp))
	s.Require().Error(err)
	s.Require().ErrorIs(err, want)
	s.Contains(err.Error(), "kafka publish")
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func TestToMessage(t *testing.T) {
	e := sampleEvent(order.ReadyForPickup)
	m := toMessage(e)
	require.Equal(t, e.ID.String(), m.ID)
	require.Equal(t, "order.status_changed", m.Type)
	require.Equal(t, "delivery_agent", m.ActorRole)
}
