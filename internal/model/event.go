package model

import (
	"fmt"
	"strings"
	"time"
)

type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
)

// EventCategories lists the kinds of festival events.
var EventCategories = []string{
	"Screening", "Premiere", "Workshop", "Networking", "Festival", "Q&A", "Party",
}

// Event is a non-ticketed festival happening such as a mixer or gala.
type Event struct {
	ID          string      `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description"`
	Category    string      `db:"category" json:"category"`
	Date        string      `db:"event_date" json:"date"`
	Time        string      `db:"event_time" json:"time"`
	Venue       string      `db:"venue" json:"venue"`
	Status      EventStatus `db:"status" json:"status"`
	Featured    bool        `db:"featured" json:"featured"`
	CreatedAt   int64       `db:"created_at" json:"created_at"`
	UpdatedAt   int64       `db:"updated_at" json:"updated_at"`
}

func (e *Event) Validate() error {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if !isEventCategory(e.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalid, e.Category)
	}
	switch e.Status {
	case EventUpcoming, EventOngoing, EventCompleted:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, e.Status)
	}
	if _, err := time.Parse(dateLayout, e.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalid)
	}
	if !isClockTime(e.Time) {
		return fmt.Errorf("%w: time must be HH:MM", ErrInvalid)
	}
	return nil
}

// Matches is a case-insensitive substring match on title or description.
func (e Event) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Description), q)
}

// DateLabel renders the date as "Friday, Nov 14".
func (e Event) DateLabel() string { return DateLabel(e.Date) }

// TimeLabel renders the time as "7:30 PM".
func (e Event) TimeLabel() string { return TimeLabel(e.Time) }

// DateLabel formats a YYYY-MM-DD date for display, returning the input
// unchanged when it does not parse.
func DateLabel(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Monday, Jan 2")
}

// TimeLabel formats an HH:MM time on a 12 hour clock.
func TimeLabel(hhmm string) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format("3:04 PM")
}

func isEventCategory(c string) bool {
	for _, ec := range EventCategories {
		if ec == c {
			return true
		}
	}
	return false
}
