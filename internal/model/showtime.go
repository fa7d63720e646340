package model

import (
	"fmt"
	"time"
)

// PriceCategory selects the ticket price tier of a showtime.
type PriceCategory string

const (
	PriceStandard PriceCategory = "standard"
	PricePremium  PriceCategory = "premium"
	PriceDiscount PriceCategory = "discount"
)

// PriceCategoryCents maps each tier to its price.
var PriceCategoryCents = map[PriceCategory]int{
	PriceStandard: 1500,
	PricePremium:  2000,
	PriceDiscount: 1000,
}

// ShowtimeStatus is the sales state of a screening.
type ShowtimeStatus string

const (
	ShowtimeScheduled ShowtimeStatus = "scheduled"
	ShowtimeOnSale    ShowtimeStatus = "on-sale"
	ShowtimeSoldOut   ShowtimeStatus = "sold-out"
	ShowtimeCancelled ShowtimeStatus = "cancelled"
)

// Showtime is one screening of a festival film.  MovieID refers to a
// festival movie but is not enforced; deleting the movie leaves its
// showtimes in place.
type Showtime struct {
	ID            string         `db:"id" json:"id"`
	MovieID       string         `db:"movie_id" json:"movie_id"`
	MovieTitle    string         `db:"movie_title" json:"movie_title"`
	Date          string         `db:"show_date" json:"date"`
	Time          string         `db:"show_time" json:"time"`
	Venue         string         `db:"venue" json:"venue"`
	Screen        string         `db:"screen" json:"screen"`
	Capacity      int            `db:"capacity" json:"capacity"`
	Sold          int            `db:"sold" json:"sold"`
	PriceCategory PriceCategory  `db:"price_category" json:"price_category"`
	Status        ShowtimeStatus `db:"status" json:"status"`
	Notes         string         `db:"notes" json:"notes"`
	CreatedAt     int64          `db:"created_at" json:"created_at"`
	UpdatedAt     int64          `db:"updated_at" json:"updated_at"`
}

// PriceCents is the ticket price of the showtime's tier.
func (s Showtime) PriceCents() int { return PriceCategoryCents[s.PriceCategory] }

// Validate checks the date and time formats, enums and seat counts.  Venue and screen are checked
// against the festival config by the caller.
func (s *Showtime) Validate() error {
	if s.MovieTitle == "" {
		return fmt.Errorf("%w: movie is required", ErrInvalid)
	}
	if _, err := time.Parse(dateLayout, s.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalid)
	}
	if !isClockTime(s.Time) {
		return fmt.Errorf("%w: time must be HH:MM", ErrInvalid)
	}
	if _, ok := PriceCategoryCents[s.PriceCategory]; !ok {
		return fmt.Errorf("%w: unknown price category %q", ErrInvalid, s.PriceCategory)
	}
	switch s.Status {
	case ShowtimeScheduled, ShowtimeOnSale, ShowtimeSoldOut, ShowtimeCancelled:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, s.Status)
	}
	if s.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalid)
	}
	if s.Sold < 0 || s.Sold > s.Capacity {
		return fmt.Errorf("%w: sold must be between 0 and capacity", ErrInvalid)
	}
	return nil
}

// isClockTime reports whether v is a zero-padded 24-hour "HH:MM".
// Stored times sort lexically, so "9:00" is rejected.
func isClockTime(v string) bool {
	if len(v) != len("15:04") {
		return false
	}
	_, err := time.Parse("15:04", v)
	return err == nil
}

// Duplicate copies the screening under a new id with no seats sold.
func (s Showtime) Duplicate(id string, now int64) Showtime {
	cp := s
	cp.ID = id
	cp.Sold = 0
	cp.Status = ShowtimeScheduled
	cp.CreatedAt = now
	cp.UpdatedAt = now
	return cp
}

// ShowtimeStats summarises sales across showtimes.
type ShowtimeStats struct {
	Showtimes int `json:"showtimes"`
	TotalSold int `json:"total_sold"`
	Capacity  int `json:"capacity"`
	OnSale    int `json:"on_sale"`
	SoldOut   int `json:"sold_out"`
}

// ComputeShowtimeStats folds a list of showtimes into ShowtimeStats.
func ComputeShowtimeStats(items []Showtime) ShowtimeStats {
	st := ShowtimeStats{Showtimes: len(items)}
	for _, s := range items {
		st.TotalSold += s.Sold
		st.Capacity += s.Capacity
		switch s.Status {
		case ShowtimeOnSale:
			st.OnSale++
		case ShowtimeSoldOut:
			st.SoldOut++
		}
	}
	return st
}
