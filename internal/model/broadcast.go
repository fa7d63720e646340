package model

// Delivery is the channel a broadcast goes out on.
type Delivery string

const (
	DeliveryPush  Delivery = "push"
	DeliveryEmail Delivery = "email"
	DeliveryBoth  Delivery = "both"
)

// IncludesPush reports whether the delivery reaches the notification center.
func (d Delivery) IncludesPush() bool { return d == DeliveryPush || d == DeliveryBoth }

func (d Delivery) Valid() bool {
	switch d {
	case DeliveryPush, DeliveryEmail, DeliveryBoth:
		return true
	}
	return false
}

// Broadcast is a message sent from the admin console to an audience.
// Delivery is simulated; the record and the broker event are the outcome.
type Broadcast struct {
	ID           string   `db:"id" json:"id"`
	Title        string   `db:"title" json:"title"`
	Message      string   `db:"message" json:"message"`
	AudienceID   string   `db:"audience_id" json:"audience_id"`
	AudienceName string   `db:"audience_name" json:"audience"`
	Delivery     Delivery `db:"delivery" json:"delivery"`
	Recipients   int      `db:"recipients" json:"recipients"`
	OpenRate     int      `db:"open_rate" json:"open_rate"`
	SentAt       int64    `db:"sent_at" json:"sent_at"`
}
