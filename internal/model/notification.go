package model

type NotificationType string

const (
	NotifyTicket NotificationType = "ticket"
	NotifyEvent  NotificationType = "event"
	NotifyPromo  NotificationType = "promo"
	NotifySystem NotificationType = "system"
)

// Notification is an entry in the consumer notification center.
type Notification struct {
	ID        string           `db:"id" json:"id"`
	Title     string           `db:"title" json:"title"`
	Message   string           `db:"message" json:"message"`
	Type      NotificationType `db:"notif_type" json:"type"`
	Read      bool             `db:"is_read" json:"read"`
	CreatedAt int64            `db:"created_at" json:"created_at"`
}
