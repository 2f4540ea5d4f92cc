// Package events connects the storefront to the order pipeline over
// RabbitMQ: placed orders go out on order_queue and fulfilment status
// changes come back on order_status_updates.
package events

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OrderQueue        = "order_queue"
	StatusUpdateQueue = "order_status_updates"

	EventOrderPlaced = "order.placed"
)

// Channel is the part of *amqp.Channel used here.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

func declare(ch Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	return nil
}

// Dial opens a connection and a channel on it.
func Dial(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	return conn, ch, nil
}

type OrderPlaced struct {
	Event     string             `json:"event"`
	OrderID   int                `json:"order_id"`
	UserEmail string             `json:"user_email"`
	Status    models.OrderStatus `json:"status"`
	Items     []models.OrderItem `json:"items"`
	Total     float64            `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
}

func NewOrderPlaced(o models.Order) OrderPlaced {
	return OrderPlaced{
		Event:     EventOrderPlaced,
		OrderID:   o.OrderID,
		UserEmail: o.UserEmail,
		Status:    o.Status,
		Items:     o.Items,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	}
}

type StatusUpdate struct {
	OrderID int    `json:"order_id"`
	Status  string `json:"status"`
}
