package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

type StatusApplier interface {
	ApplyStatusUpdate(ctx context.Context, orderID int, status string) error
}

type StatusConsumer struct {
	ch      Channel
	queue   string
	applier StatusApplier
}

func NewStatusConsumer(ch Channel, applier StatusApplier) *StatusConsumer {
	return &StatusConsumer{ch: ch, queue: StatusUpdateQueue, applier: applier}
}

// Run consumes status updates until ctx is done or the delivery channel
// closes.
func (c *StatusConsumer) Run(ctx context.Context) error {
	if err := declare(c.ch, c.queue); err != nil {
		return err
	}

	msgs, err := c.ch.Consume(
		c.queue, // queue
		"",      // consumer
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.Handle(ctx, d); err != nil {
				log.Printf("events: status update rejected: %v", err)
			}
		}
	}
}

// Handle applies one delivery. Applied updates are acked; malformed or
// rejected ones are nacked without requeue.
func (c *StatusConsumer) Handle(ctx context.Context, d amqp.Delivery) error {
	var update StatusUpdate
	if err := json.Unmarshal(d.Body, &update); err != nil {
		d.Nack(false, false)
		return fmt.Errorf("error decoding message: %w", err)
	}

	if err := c.applier.ApplyStatusUpdate(ctx, update.OrderID, update.Status); err != nil {
		d.Nack(false, false)
		return fmt.Errorf("order %d: %w", update.OrderID, err)
	}

	log.Printf("events: order %d is now %s", update.OrderID, update.Status)
	return d.Ack(false)
}
