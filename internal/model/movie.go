package model

import (
	"fmt"
	"strings"
)

// MovieStatus is the programming state of a festival film.
type MovieStatus string

const (
	MovieActive     MovieStatus = "active"
	MovieComingSoon MovieStatus = "coming-soon"
	MovieArchived   MovieStatus = "archived"
)

// Defaults applied to new and imported festival films.
const (
	DefaultMoviePriceCents = 1500
	DefaultMovieRuntime    = 90
	DefaultMovieCategory   = "Main Competition"
	DefaultMovieGenre      = "Drama"
)

// FestivalCategories lists the programme sections a film can be entered in.
var FestivalCategories = []string{
	"Main Competition",
	"Documentary",
	"Short Films",
	"Horror/Sci-Fi",
	"Animation",
	"International",
	"Experimental",
	"Music Videos",
}

// FestivalMovie is a film in the festival programme.  It may have been
// imported from the catalog, in which case TMDBID is set.  This struct
// corresponds to a row in the `festival_movies` table.
type FestivalMovie struct {
	ID               string      `db:"id" json:"id"`
	TMDBID           int64       `db:"tmdb_id" json:"tmdb_id,omitempty"`
	Title            string      `db:"title" json:"title"`
	Director         string      `db:"director" json:"director"`
	Year             int         `db:"release_year" json:"year"`
	Genre            string      `db:"genre" json:"genre"`
	Runtime          int         `db:"runtime" json:"runtime"`
	Synopsis         string      `db:"synopsis" json:"synopsis"`
	PosterURL        string      `db:"poster_url" json:"poster_url"`
	Rating           float64     `db:"rating" json:"rating"`
	PriceCents       int         `db:"price_cents" json:"price_cents"`
	Status           MovieStatus `db:"status" json:"status"`
	FestivalCategory string      `db:"festival_category" json:"festival_category"`
	Notes            string      `db:"notes" json:"notes"`
	CreatedAt        int64       `db:"created_at" json:"created_at"`
	UpdatedAt        int64       `db:"updated_at" json:"updated_at"`
}

// ApplyDefaults fills zero fields with the programme defaults.
func (m *FestivalMovie) ApplyDefaults() {
	if m.PriceCents == 0 {
		m.PriceCents = DefaultMoviePriceCents
	}
	if m.Runtime == 0 {
		m.Runtime = DefaultMovieRuntime
	}
	if m.FestivalCategory == "" {
		m.FestivalCategory = DefaultMovieCategory
	}
	if m.Status == "" {
		m.Status = MovieActive
	}
}

// Validate checks the enumerated fields and required values.
func (m *FestivalMovie) Validate() error {
	m.Title = strings.TrimSpace(m.Title)
	if m.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	switch m.Status {
	case MovieActive, MovieComingSoon, MovieArchived:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, m.Status)
	}
	if !IsFestivalCategory(m.FestivalCategory) {
		return fmt.Errorf("%w: unknown festival category %q", ErrInvalid, m.FestivalCategory)
	}
	if m.Runtime < 0 || m.PriceCents < 0 {
		return fmt.Errorf("%w: runtime and price must not be negative", ErrInvalid)
	}
	if m.Rating < 0 || m.Rating > 10 {
		return fmt.Errorf("%w: rating must be between 0 and 10", ErrInvalid)
	}
	return nil
}

// Matches reports whether q is a case-insensitive substring of the title
// or the director.  An empty query matches everything.
func (m FestivalMovie) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Title), q) ||
		strings.Contains(strings.ToLower(m.Director), q)
}

func IsFestivalCategory(c string) bool {
	for _, fc := range FestivalCategories {
		if fc == c {
			return true
		}
	}
	return false
}
