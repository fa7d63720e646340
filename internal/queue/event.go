// Package queue defines the broker topics and message payloads, the
// RabbitMQ publisher and the background consumer.
package queue

// Topics double as durable queue names on the default exchange.
const (
	TopicOrderConfirmed = "order.confirmed"
	TopicBroadcastSent  = "broadcast.sent"
)

// Topics lists every queue the consumer drains.
var Topics = []string{TopicOrderConfirmed, TopicBroadcastSent}

// OrderConfirmedEvent is published when a checkout reaches confirmation.
// It carries enough for downstream consumers to log or notify without
// querying the primary database.
type OrderConfirmedEvent struct {
	OrderID          string         `json:"order_id"`
	ConfirmationCode string         `json:"confirmation_code"`
	MovieTitle       string         `json:"movie_title"`
	Date             string         `json:"date"`
	Time             string         `json:"time"`
	Venue            string         `json:"venue"`
	Tickets          map[string]int `json:"tickets"`
	TotalCents       int            `json:"total_cents"`
	CustomerEmail    string         `json:"customer_email"`
	ConfirmedAt      string         `json:"confirmed_at"`
}

// BroadcastSentEvent is published for every admin broadcast.  Delivery is
// simulated, so this event is the hand-off point for a real sender.
type BroadcastSentEvent struct {
	BroadcastID string `json:"broadcast_id"`
	Title       string `json:"title"`
	Audience    string `json:"audience"`
	Delivery    string `json:"delivery"`
	Recipients  int    `json:"recipients"`
	SentAt      string `json:"sent_at"`
}
