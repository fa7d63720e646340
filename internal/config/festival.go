package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

//go:embed festival.yaml
var defaultFestival []byte

const dateLayout = "2006-01-02"

// Festival holds the season data that changes every year: dates, venues,
// links, prices and the broadcast audiences.
type Festival struct {
	Name        string `yaml:"name" json:"name"`
	FullName    string `yaml:"full_name" json:"full_name"`
	Year        int    `yaml:"year" json:"year"`
	Tagline     string `yaml:"tagline" json:"tagline"`
	StartDate   string `yaml:"start_date" json:"start_date"`
	EndDate     string `yaml:"end_date" json:"end_date"`
	DateDisplay string `yaml:"date_display" json:"date_display"`
	Timezone    string `yaml:"timezone" json:"timezone"`
	MainVenue   string `yaml:"main_venue" json:"main_venue"`

	Venues     []Venue          `yaml:"venues" json:"venues"`
	Links      Links            `yaml:"links" json:"links"`
	Map        MapConfig        `yaml:"map" json:"-"`
	Checkout   CheckoutConfig   `yaml:"checkout" json:"-"`
	Schedule   ScheduleConfig   `yaml:"schedule" json:"-"`
	Membership []MembershipTier `yaml:"membership" json:"-"`
	Passes     []Pass           `yaml:"passes" json:"passes"`
	Audiences  []Audience       `yaml:"audiences" json:"-"`

	loc   *time.Location
	start time.Time
}

// Venue is a festival location.  Venues with screens can host showtimes.
type Venue struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	ShortName   string   `yaml:"short_name" json:"short_name"`
	Address     string   `yaml:"address" json:"address"`
	Description string   `yaml:"description" json:"description"`
	Coordinates LngLat   `yaml:"coordinates" json:"coordinates"`
	Screens     []string `yaml:"screens" json:"screens,omitempty"`
	Image       string   `yaml:"image" json:"image,omitempty"`
}

// HasScreen reports whether screen is one of the venue's screens.
func (v Venue) HasScreen(screen string) bool {
	for _, s := range v.Screens {
		if s == screen {
			return true
		}
	}
	return false
}

// LngLat is a coordinate pair in map order.
type LngLat struct {
	Lng float64 `yaml:"lng" json:"lng"`
	Lat float64 `yaml:"lat" json:"lat"`
}

type Links struct {
	Website        string `yaml:"website" json:"website"`
	FilmFreeway    string `yaml:"film_freeway" json:"film_freeway"`
	Donate         string `yaml:"donate" json:"donate"`
	Email          string `yaml:"email" json:"email"`
	VolunteerEmail string `yaml:"volunteer_email" json:"volunteer_email"`
	SponsorEmail   string `yaml:"sponsor_email" json:"sponsor_email"`
}

type MapConfig struct {
	Style         string `yaml:"style"`
	Center        LngLat `yaml:"center"`
	Zoom          int    `yaml:"zoom"`
	FallbackImage string `yaml:"fallback_image"`
}

// CheckoutConfig prices the checkout ticket kinds in cents.
type CheckoutConfig struct {
	CodePrefix string         `yaml:"code_prefix"`
	MaxPerKind int            `yaml:"max_per_kind"`
	Prices     map[string]int `yaml:"prices"`
}

type ScheduleConfig struct {
	Days      int      `yaml:"days"`
	ShowTimes []string `yaml:"show_times"`
	Films     int      `yaml:"films"`
}

type MembershipTier struct {
	ID         string   `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	PriceCents int      `yaml:"price_cents" json:"price_cents"`
	Period     string   `yaml:"period" json:"period"`
	Popular    bool     `yaml:"popular" json:"popular"`
	Benefits   []string `yaml:"benefits" json:"benefits"`
}

type Pass struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	PriceCents  int      `yaml:"price_cents" json:"price_cents"`
	Description string   `yaml:"description" json:"description"`
	Features    []string `yaml:"features" json:"features"`
	Popular     bool     `yaml:"popular" json:"popular"`
}

// Audience is a broadcast recipient group with its member count.
type Audience struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Count int    `yaml:"count" json:"count"`
}

// LoadFestival reads the festival YAML at path, or the embedded default
// when path is empty.
func LoadFestival(path string) (*Festival, error) {
	raw := defaultFestival
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read festival config: %w", err)
		}
		raw = b
	}
	return ParseFestival(raw)
}

// ParseFestival decodes and validates festival YAML.
func ParseFestival(raw []byte) (*Festival, error) {
	var f Festival
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode festival config: %w", err)
	}
	if err := f.init(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Festival) init() error {
	if f.Name == "" {
		return errors.New("festival name is required")
	}
	tz := f.Timezone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("festival timezone: %w", err)
	}
	f.loc = loc
	start, err := time.ParseInLocation(dateLayout, f.StartDate, loc)
	if err != nil {
		return fmt.Errorf("festival start_date: %w", err)
	}
	f.start = start
	if _, err := time.ParseInLocation(dateLayout, f.EndDate, loc); err != nil {
		return fmt.Errorf("festival end_date: %w", err)
	}
	if len(f.Venues) == 0 {
		return errors.New("festival needs at least one venue")
	}
	if _, ok := f.Venue(f.MainVenue); !ok {
		return fmt.Errorf("main_venue %q is not a configured venue", f.MainVenue)
	}
	if len(f.Checkout.Prices) == 0 {
		return errors.New("checkout prices are required")
	}
	if f.Checkout.MaxPerKind <= 0 {
		f.Checkout.MaxPerKind = 10
	}
	if f.Checkout.CodePrefix == "" {
		f.Checkout.CodePrefix = f.Name
	}
	if f.Schedule.Days <= 0 {
		f.Schedule.Days = 7
	}
	if f.Schedule.Films <= 0 {
		f.Schedule.Films = 8
	}
	if len(f.Schedule.ShowTimes) == 0 {
		f.Schedule.ShowTimes = []string{"2:30 PM", "5:00 PM", "7:30 PM"}
	}
	return nil
}

// Location is the festival timezone.
func (f *Festival) Location() *time.Location {
	if f.loc == nil {
		return time.UTC
	}
	return f.loc
}

// StartTime is midnight of the opening day in the festival timezone.
func (f *Festival) StartTime() time.Time { return f.start }

// DaysUntil counts whole days, rounded up, from now until opening day.
// It goes negative once the festival has started.
func (f *Festival) DaysUntil(now time.Time) int {
	return int(math.Ceil(f.start.Sub(now).Hours() / 24))
}

// Venue looks a venue up by id.
func (f *Festival) Venue(id string) (Venue, bool) {
	for _, v := range f.Venues {
		if v.ID == id {
			return v, true
		}
	}
	return Venue{}, false
}

// VenueByName looks a venue up by its display name.
func (f *Festival) VenueByName(name string) (Venue, bool) {
	for _, v := range f.Venues {
		if v.Name == name {
			return v, true
		}
	}
	return Venue{}, false
}

// ScheduleVenues returns the venues that have screens, in config order.
func (f *Festival) ScheduleVenues() []Venue {
	var out []Venue
	for _, v := range f.Venues {
		if len(v.Screens) > 0 {
			out = append(out, v)
		}
	}
	return out
}

// Audience looks a broadcast audience up by id.
func (f *Festival) Audience(id string) (Audience, bool) {
	for _, a := range f.Audiences {
		if a.ID == id {
			return a, true
		}
	}
	return Audience{}, false
}

// TicketPrice returns the checkout price in cents for a ticket kind.
func (f *Festival) TicketPrice(kind string) (int, bool) {
	p, ok := f.Checkout.Prices[kind]
	return p, ok
}
