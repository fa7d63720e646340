package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/laiff-festival/internal/pkg/logger"
)

// Publisher sends an event to a topic.  Callers treat failures as
// non-fatal: the request that produced the event has already succeeded.
type Publisher interface {
	Publish(ctx context.Context, topic string, v any) error
}

// RabbitPublisher dials the broker for every publish.  Events are rare
// (one per confirmed order or broadcast) so no connection is held open.
type RabbitPublisher struct {
	url string
}

func NewRabbitPublisher(url string) *RabbitPublisher {
	return &RabbitPublisher{url: url}
}

// Publish marshals v to JSON and sends it as a persistent message to the
// durable queue named topic.
func (p *RabbitPublisher) Publish(ctx context.Context, topic string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		logger.Warn("rabbitmq: dial failed", zap.String("topic", topic), zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Warn("rabbitmq: channel open failed", zap.String("topic", topic), zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(topic, true, false, false, false, nil); err != nil {
		logger.Warn("rabbitmq: queue declare failed", zap.String("topic", topic), zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", topic, false, false, pub); err != nil {
		logger.Warn("rabbitmq: publish failed", zap.String("topic", topic), zap.Error(err))
		return err
	}
	return nil
}

// NopPublisher only logs.  It is used when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, topic string, v any) error {
	logger.Debug("broker disabled, event dropped", zap.String("topic", topic), zap.Any("event", v))
	return nil
}
