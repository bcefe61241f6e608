package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
	pkgkafka "github.com/Sule971/luxe-vogue-boutique/pkg/kafka"
	"github.com/Sule971/luxe-vogue-boutique/pkg/logger"
)

// Kafka topics for storefront activity events.
var (
	TopicCartUpdated = pkgkafka.Topic("cart", "updated")
	TopicCartCleared = pkgkafka.Topic("cart", "cleared")
	TopicOrderPlaced = pkgkafka.Topic("order", "placed")
)

// Aggregate type constants.
const (
	AggregateTypeSession = "session"
	AggregateTypeOrder   = "order"
)

// SourceStorefront identifies events originating from the storefront.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID string         `json:"session_id"`
	UserID    string         `json:"user_id,omitempty"`
	Items     []CartItemData `json:"items"`
	ItemCount int            `json:"item_count"`
	Subtotal  int64          `json:"subtotal"`
}

// CartItemData is the item payload within cart events.
type CartItemData struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id,omitempty"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	SessionID      string         `json:"session_id"`
	UserID         string         `json:"user_id,omitempty"`
	OrderID        string         `json:"order_id"`
	TrackingNumber string         `json:"tracking_number"`
	Items          []CartItemData `json:"items"`
	TotalAmount    int64          `json:"total_amount"`
}

// Publisher publishes storefront activity events.
type Publisher interface {
	PublishCartUpdated(ctx context.Context, lines domain.Lines) error
	PublishCartCleared(ctx context.Context) error
	PublishOrderPlaced(ctx context.Context, order domain.Order) error
}

// kafkaPublisher is the subset of *pkgkafka.Producer used here.
type kafkaPublisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes events for one storefront session to Kafka.
type Producer struct {
	kafka     kafkaPublisher
	sessionID string
	logger    *slog.Logger
}

// NewProducer creates an event producer for the session.
func NewProducer(kafka kafkaPublisher, sessionID string, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:     kafka,
		sessionID: sessionID,
		logger:    logger,
	}
}

func itemData(lines domain.Lines) []CartItemData {
	items := make([]CartItemData, len(lines))
	for i, l := range lines {
		items[i] = CartItemData{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Price:     l.Product.Price,
			Quantity:  l.Quantity,
		}
	}
	return items
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	agg := pkgkafka.Aggregate{ID: aggregateID, Type: aggregateType}
	event, err := pkgkafka.NewEvent(topic, agg, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx)).
		ForSession(p.sessionID, logger.UserIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("event_id", event.EventID),
	)
	return nil
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, lines domain.Lines) error {
	return p.publish(ctx, TopicCartUpdated, p.sessionID, AggregateTypeSession, CartUpdatedData{
		SessionID: p.sessionID,
		UserID:    logger.UserIDFromContext(ctx),
		Items:     itemData(lines),
		ItemCount: lines.TotalItems(),
		Subtotal:  lines.Subtotal(),
	})
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context) error {
	return p.publish(ctx, TopicCartCleared, p.sessionID, AggregateTypeSession, CartClearedData{
		SessionID: p.sessionID,
		UserID:    logger.UserIDFromContext(ctx),
	})
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order domain.Order) error {
	return p.publish(ctx, TopicOrderPlaced, order.ID, AggregateTypeOrder, OrderPlacedData{
		SessionID:      p.sessionID,
		UserID:         logger.UserIDFromContext(ctx),
		OrderID:        order.ID,
		TrackingNumber: order.TrackingNumber,
		Items:          itemData(order.Items),
		TotalAmount:    order.TotalAmount,
	})
}

// Nop discards every event. It is used when Kafka is disabled.
type Nop struct{}

func (Nop) PublishCartUpdated(context.Context, domain.Lines) error { return nil }
func (Nop) PublishCartCleared(context.Context) error               { return nil }
func (Nop) PublishOrderPlaced(context.Context, domain.Order) error { return nil }
