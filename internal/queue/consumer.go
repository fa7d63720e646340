package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/laiff-festival/internal/pkg/logger"
)

const maxBackoff = 30 * time.Second

// Consumer drains the event queues and appends one line per message to
// orders.log or broadcasts.log under its log directory.
type Consumer struct {
	url    string
	logDir string
}

func NewConsumer(url, logDir string) *Consumer {
	if logDir == "" {
		logDir = "logs"
	}
	return &Consumer{url: url, logDir: logDir}
}

// Run connects, consumes and reconnects with exponential backoff until
// ctx is cancelled.  Bad messages are rejected without requeue so one
// poison message cannot stall the queue.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			logger.Warn("event-consumer: failed to dial broker",
				zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < maxBackoff {
				backoff *= 2
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("event-consumer: consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logger.Warn("event-consumer: set QoS failed", zap.Error(err))
	}

	merged := make(chan delivery)
	done := make(chan struct{})
	defer close(done)

	for _, topic := range Topics {
		if _, err := ch.QueueDeclare(topic, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", topic, err)
		}
		msgs, err := ch.Consume(topic, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", topic, err)
		}
		go func(topic string, msgs <-chan amqp.Delivery) {
			for d := range msgs {
				select {
				case merged <- delivery{topic: topic, d: d}:
				case <-done:
					return
				}
			}
		}(topic, msgs)
	}

	connClosed := conn.NotifyClose(make(chan *amqp.Error, 1))
	chClosed := ch.NotifyClose(make(chan *amqp.Error, 1))
	logger.Info("event-consumer: consuming", zap.Strings("queues", Topics))
	return c.dispatch(ctx, merged, connClosed, chClosed)
}

type delivery struct {
	topic string
	d     amqp.Delivery
}

// dispatch handles deliveries until ctx is done or the connection or the
// channel closes.  A closed channel alone stops every consumer on it, so
// both end the loop and Run reconnects.
func (c *Consumer) dispatch(ctx context.Context, merged <-chan delivery, connClosed, chClosed <-chan *amqp.Error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case amqpErr := <-connClosed:
			if amqpErr != nil {
				return amqpErr
			}
			return errors.New("connection closed")
		case amqpErr := <-chClosed:
			if amqpErr != nil {
				return amqpErr
			}
			return errors.New("channel closed")
		case m := <-merged:
			if err := c.handleMessage(m.topic, m.d.Body); err != nil {
				logger.Error("event-consumer: handle message failed", zap.String("topic", m.topic), zap.Error(err))
				_ = m.d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = m.d.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(topic string, body []byte) error {
	var (
		file string
		line string
	)
	switch topic {
	case TopicOrderConfirmed:
		var ev OrderConfirmedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		file = "orders.log"
		line = fmt.Sprintf("[%s] Order confirmed | order_id=%s | code=%s | movie=%q | date=%s | time=%q | venue=%q | tickets=%s | total=%d cents | email=%q\n",
			ev.ConfirmedAt, ev.OrderID, ev.ConfirmationCode, ev.MovieTitle, ev.Date, ev.Time, ev.Venue,
			formatTickets(ev.Tickets), ev.TotalCents, ev.CustomerEmail)
	case TopicBroadcastSent:
		var ev BroadcastSentEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		file = "broadcasts.log"
		line = fmt.Sprintf("[%s] Broadcast sent | broadcast_id=%s | title=%q | audience=%q | delivery=%s | recipients=%d\n",
			ev.SentAt, ev.BroadcastID, ev.Title, ev.Audience, ev.Delivery, ev.Recipients)
	default:
		return fmt.Errorf("unknown topic %q", topic)
	}
	return c.appendLine(file, line)
}

func (c *Consumer) appendLine(name, line string) error {
	// Ensure logs directory exists
	if err := os.MkdirAll(c.logDir, 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(c.logDir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// formatTickets renders {"adult":2,"child":1} as [adult=2,child=1].
func formatTickets(t map[string]int) string {
	kinds := make([]string, 0, len(t))
	for k, n := range t {
		if n > 0 {
			kinds = append(kinds, k)
		}
	}
	sort.Strings(kinds)
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = fmt.Sprintf("%s=%d", k, t[k])
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// sleep waits for d or until ctx is done, reporting whether it slept.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
