package model

type ActivityType string

const (
	ActivityTicket    ActivityType = "ticket"
	ActivityFilm      ActivityType = "film"
	ActivityMember    ActivityType = "member"
	ActivitySchedule  ActivityType = "schedule"
	ActivityBroadcast ActivityType = "broadcast"
	ActivityEvent     ActivityType = "event"
)

// Activity is one line in the admin dashboard feed.
type Activity struct {
	ID        string       `db:"id" json:"id"`
	Action    string       `db:"action" json:"action"`
	Detail    string       `db:"detail" json:"detail"`
	Type      ActivityType `db:"activity_type" json:"type"`
	CreatedAt int64        `db:"created_at" json:"created_at"`
}
