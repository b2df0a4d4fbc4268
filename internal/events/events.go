// Package events publishes order lifecycle notifications to other systems.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/mmynk/idine/internal/models"
)

// OrderPlaced is emitted once per finalized order.
type OrderPlaced struct {
	OrderID     string   `json:"order_id"`
	UserID      string   `json:"user_id"`
	ItemIDs     []string `json:"item_ids"`
	TotalPrice  int      `json:"total_price"`
	TipPercent  int      `json:"tip_percent"`
	PaymentType string   `json:"payment_type"`
	PickupTime  string   `json:"pickup_time"`
	LoyaltyID   string   `json:"loyalty_id,omitempty"`
	CreatedAt   int64    `json:"created_at"`
}

// NewOrderPlaced builds the event for a record.
func NewOrderPlaced(userID string, rec models.OrderRecord) OrderPlaced {
	ids := make([]string, len(rec.Items))
	for i, item := range rec.Items {
		ids[i] = item.ID
	}
	return OrderPlaced{
		OrderID:    rec.ID,
		UserID:     userID,
		ItemIDs:    ids,
		TotalPrice: rec.TotalPrice,
		CreatedAt:  rec.CreatedAt,
	}
}

// Publisher delivers order events.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, ev OrderPlaced) error
	Close() error
}

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON, keyed by order ID.
type KafkaPublisher struct {
	writer MessageWriter
}

// NewKafkaPublisher wraps an existing writer.
func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// NewKafkaWriter builds a writer for topic on brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

// PublishOrderPlaced writes one message.
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, ev OrderPlaced) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

// PublishOrderPlaced discards the event.
func (NopPublisher) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }

// Close does nothing.
func (NopPublisher) Close() error { return nil }
