// Package broker publishes domain events to RabbitMQ.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	QueueOrderCommitted      = "order.committed"
	QueueStockReconciliation = "stock.reconciliation"
)

// Publisher sends an event as a persistent JSON message to the named queue.
type Publisher interface {
	Publish(ctx context.Context, queue string, event any) error
	Close() error
}

type rabbitPublisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	mu     sync.Mutex
	queues map[string]bool
	log    *zap.Logger
}

// NewPublisher dials url. An empty url yields a publisher that only logs.
func NewPublisher(url string, log *zap.Logger) (Publisher, error) {
	log = log.With(zap.String("component", "broker"))
	if url == "" {
		log.Info("RABBITMQ_URL not set, events will only be logged")
		return &nopPublisher{log: log}, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	return &rabbitPublisher{
		conn:   conn,
		ch:     ch,
		queues: make(map[string]bool),
		log:    log,
	}, nil
}

func (p *rabbitPublisher) Publish(ctx context.Context, queue string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", queue, err)
	}

	// amqp channels are not safe for concurrent use
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.queues[queue] {
		if _, err := p.ch.QueueDeclare(
			queue,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		); err != nil {
			p.log.Error("Failed to declare queue", zap.Error(err), zap.String("queue", queue))
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
		p.queues[queue] = true
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		p.log.Error("Failed to publish event", zap.Error(err), zap.String("queue", queue))
		return fmt.Errorf("publish to %s: %w", queue, err)
	}

	p.log.Debug("Event published", zap.String("queue", queue), zap.Int("bytes", len(body)))
	return nil
}

func (p *rabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

type nopPublisher struct {
	log *zap.Logger
}

func (p *nopPublisher) Publish(_ context.Context, queue string, event any) error {
	p.log.Debug("Event dropped, no broker configured", zap.String("queue", queue), zap.Any("event", event))
	return nil
}

func (p *nopPublisher) Close() error { return nil }
