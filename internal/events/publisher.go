package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"storefront-service/internal/models"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order models.Order) error
}

type AMQPPublisher struct {
	ch    Channel
	queue string
}

// NewAMQPPublisher declares the durable order queue on ch.
func NewAMQPPublisher(ch Channel) (*AMQPPublisher, error) {
	if err := declare(ch, OrderQueue); err != nil {
		return nil, err
	}
	return &AMQPPublisher{ch: ch, queue: OrderQueue}, nil
}

func (p *AMQPPublisher) PublishOrderPlaced(ctx context.Context, order models.Order) error {
	body, err := json.Marshal(NewOrderPlaced(order))
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		"", p.queue, false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Type:         EventOrderPlaced,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}
	return nil
}

// NoopPublisher drops events. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(ctx context.Context, order models.Order) error {
	log.Printf("events: no broker configured, dropping %s for order %d", EventOrderPlaced, order.OrderID)
	return nil
}
