package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
	pkgkafka "github.com/Sule971/luxe-vogue-boutique/pkg/kafka"
	"github.com/Sule971/luxe-vogue-boutique/pkg/logger"
)

type mockKafka struct {
	mock.Mock
	events []*pkgkafka.Event
}

func (m *mockKafka) Publish(ctx context.Context, topic string, event *pkgkafka.Event) error {
	m.events = append(m.events, event)
	return m.Called(ctx, topic, event).Error(0)
}

func testLines() domain.Lines {
	return domain.Lines{
		{Product: domain.Product{ID: "1", Name: "Gown", Price: 10000}, Quantity: 2},
		{Product: domain.Product{ID: "7", Name: "Scarf", Price: 5000}, Quantity: 1},
	}
}

func TestTopics(t *testing.T) {
	assert.Equal(t, "storefront.cart.updated", TopicCartUpdated)
	assert.Equal(t, "storefront.cart.cleared", TopicCartCleared)
	assert.Equal(t, "storefront.order.placed", TopicOrderPlaced)
}

func TestProducer_PublishCartUpdated(t *testing.T) {
	k := new(mockKafka)
	k.On("Publish", mock.Anything, TopicCartUpdated, mock.Anything).Return(nil)
	p := NewProducer(k, "sess-1", logger.Discard())

	ctx := logger.WithCorrelationID(context.Background(), "corr-9")
	ctx = logger.WithUserID(ctx, "u-1")
	require.NoError(t, p.PublishCartUpdated(ctx, testLines()))

	require.Len(t, k.events, 1)
	ev := k.events[0]
	assert.Equal(t, TopicCartUpdated, ev.EventType)
	assert.Equal(t, "sess-1", ev.Aggregate.ID)
	assert.Equal(t, AggregateTypeSession, ev.Aggregate.Type)
	assert.Equal(t, SourceStorefront, ev.Source)
	assert.Equal(t, "corr-9", ev.CorrelationID)
	assert.Equal(t, "sess-1", ev.SessionID)
	assert.Equal(t, "u-1", ev.UserID)

	var data CartUpdatedData
	require.NoError(t, ev.UnmarshalData(&data))
	assert.Equal(t, "u-1", data.UserID)
	assert.Equal(t, 3, data.ItemCount)
	assert.Equal(t, int64(25000), data.Subtotal)
	assert.Len(t, data.Items, 2)
	k.AssertExpectations(t)
}

func TestProducer_PublishCartCleared(t *testing.T) {
	k := new(mockKafka)
	k.On("Publish", mock.Anything, TopicCartCleared, mock.Anything).Return(nil)

	require.NoError(t, NewProducer(k, "sess-1", logger.Discard()).PublishCartCleared(context.Background()))

	var data CartClearedData
	require.NoError(t, k.events[0].UnmarshalData(&data))
	assert.Equal(t, "sess-1", data.SessionID)
}

func TestProducer_PublishOrderPlaced(t *testing.T) {
	k := new(mockKafka)
	k.On("Publish", mock.Anything, TopicOrderPlaced, mock.Anything).Return(nil)

	order := domain.Order{ID: "ORD-123456", TrackingNumber: "LUXE-TRACK-654321", Items: testLines(), TotalAmount: 26500}
	require.NoError(t, NewProducer(k, "sess-1", logger.Discard()).PublishOrderPlaced(context.Background(), order))

	ev := k.events[0]
	assert.Equal(t, "ORD-123456", ev.Aggregate.ID)
	assert.Equal(t, AggregateTypeOrder, ev.Aggregate.Type)

	var data OrderPlacedData
	require.NoError(t, ev.UnmarshalData(&data))
	assert.Equal(t, int64(26500), data.TotalAmount)
	assert.Equal(t, "LUXE-TRACK-654321", data.TrackingNumber)
}

func TestProducer_PublishError(t *testing.T) {
	k := new(mockKafka)
	k.On("Publish", mock.Anything, TopicCartCleared, mock.Anything).Return(errors.New("broker down"))

	err := NewProducer(k, "sess-1", logger.Discard()).PublishCartCleared(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish storefront.cart.cleared event")
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.PublishCartUpdated(context.Background(), nil))
	assert.NoError(t, p.PublishCartCleared(context.Background()))
	assert.NoError(t, p.PublishOrderPlaced(context.Background(), domain.Order{}))
}
