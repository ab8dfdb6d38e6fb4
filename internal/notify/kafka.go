package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/order"
	"github.com/segmentio/kafka-go"
)

// Publisher emits order.created events for back-office consumers. It is
// optional plumbing: when no brokers are configured the storefront runs
// without it.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w}
}

func (p *Publisher) OrderCreated(ctx context.Context, o *order.Order) error {
	payload := map[string]interface{}{
		"order_id":       o.ID,
		"customer_name":  o.CustomerName,
		"payment_method": o.PaymentMethod,
		"items":          o.Items,
		"subtotal":       o.Subtotal,
		"shipping":       o.Shipping,
		"total":          o.Total,
		"status":         o.Status,
		"created_at":     time.Now(),
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(o.ID.String()), // order_id for ordering
		Value: payloadJSON,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.created")},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
