package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueue is the queue applicant events are published to
const DefaultQueue = "applicant_scored"

const publishTimeout = 5 * time.Second

// amqpChannel is the subset of *amqp.Channel used for publishing
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes events to a durable RabbitMQ queue
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel amqpChannel
	queue   string
}

// NewAMQPPublisher dials url, opens a channel and declares queue.
func NewAMQPPublisher(url, queue string) (*AMQPPublisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, &PublishError{Queue: queue, Message: "failed to connect to RabbitMQ", Cause: err}
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, &PublishError{Queue: queue, Message: "failed to open channel", Cause: err}
	}

	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, &PublishError{Queue: queue, Message: "failed to declare queue", Cause: err}
	}

	log.Printf("[events] Connected to RabbitMQ, publishing to queue %q", q.Name)
	return &AMQPPublisher{conn: conn, channel: ch, queue: q.Name}, nil
}

// PublishApplicantScored publishes event as a persistent JSON message.
func (p *AMQPPublisher) PublishApplicantScored(ctx context.Context, event ApplicantScored) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		"",      // exchange
		p.queue, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ApplicantID.String(),
			Type:         event.Type,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return &PublishError{Queue: p.queue, Message: "failed to publish event", Cause: err}
	}
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	var firstErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			firstErr = err
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
