package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/laiff-festival/internal/catalog"
	"github.com/iliyamo/laiff-festival/internal/config"
	"github.com/iliyamo/laiff-festival/internal/model"
)

// AllVenues selects every schedule venue.
const AllVenues = "all"

type ScheduleDate struct {
	ISO   string `json:"iso"`
	Label string `json:"label"`
	Day   int    `json:"day"`
}

type ScheduleVenue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ShowSlot struct {
	Time      string `json:"time"`
	VenueID   string `json:"venue_id"`
	VenueName string `json:"venue_name"`
}

type ScheduleFilm struct {
	FilmCard
	Showtimes []ShowSlot `json:"showtimes"`
}

// Schedule is the browse page: a week of dates, the venue filter options
// and the films playing on the selected day.
type Schedule struct {
	Day              int             `json:"day"`
	Venue            string          `json:"venue"`
	Dates            []ScheduleDate  `json:"dates"`
	Venues           []ScheduleVenue `json:"venues"`
	Films            []ScheduleFilm  `json:"films"`
	CatalogAvailable bool            `json:"catalog_available"`
}

// ScheduleService lays now-playing films onto the configured show times.
type ScheduleService struct {
	films    *FilmService
	festival *config.Festival
	clock    Clock
}

func NewScheduleService(films *FilmService, f *config.Festival, clock Clock) *ScheduleService {
	return &ScheduleService{films: films, festival: f, clock: clock}
}

// Dates returns the selectable days starting today in the festival
// timezone.
func (s *ScheduleService) Dates() []ScheduleDate {
	days := scheduleDates(s.clock.now(), s.festival.Location(), s.festival.Schedule.Days)
	out := make([]ScheduleDate, len(days))
	for i, d := range days {
		out[i] = ScheduleDate{ISO: d.Format("2006-01-02"), Label: d.Format("Mon, Jan 2"), Day: i}
	}
	return out
}

// ResolveVenue returns the venue slots are booked at: the selected one, or
// the first schedule venue for "all".
func (s *ScheduleService) ResolveVenue(id string) (config.Venue, error) {
	venues := s.festival.ScheduleVenues()
	if len(venues) == 0 {
		return config.Venue{}, fmt.Errorf("%w: no schedule venues configured", model.ErrInvalid)
	}
	if id == "" || id == AllVenues {
		return venues[0], nil
	}
	for _, v := range venues {
		if v.ID == id {
			return v, nil
		}
	}
	return config.Venue{}, fmt.Errorf("%w: unknown venue %q", model.ErrInvalid, id)
}

// Build assembles the schedule for a day index and venue id.
func (s *ScheduleService) Build(ctx context.Context, day int, venueID string) (*Schedule, error) {
	cfg := s.festival.Schedule
	if day < 0 || day >= cfg.Days {
		return nil, fmt.Errorf("%w: day must be between 0 and %d", model.ErrInvalid, cfg.Days-1)
	}
	if venueID == "" {
		venueID = AllVenues
	}
	slotVenue, err := s.ResolveVenue(venueID)
	if err != nil {
		return nil, err
	}

	out := &Schedule{Day: day, Venue: venueID, Dates: s.Dates()}
	out.Venues = append(out.Venues, ScheduleVenue{ID: AllVenues, Name: "All Venues"})
	for _, v := range s.festival.ScheduleVenues() {
		out.Venues = append(out.Venues, ScheduleVenue{ID: v.ID, Name: v.Name})
	}

	page, err := s.films.List(ctx, FilmQuery{Category: string(catalog.NowPlaying), Page: 1})
	if err != nil {
		return nil, err
	}
	out.CatalogAvailable = page.CatalogAvailable
	films := page.Results
	if len(films) > cfg.Films {
		films = films[:cfg.Films]
	}
	out.Films = make([]ScheduleFilm, 0, len(films))
	for _, f := range films {
		sf := ScheduleFilm{FilmCard: f, Showtimes: make([]ShowSlot, 0, len(cfg.ShowTimes))}
		for _, t := range cfg.ShowTimes {
			sf.Showtimes = append(sf.Showtimes, ShowSlot{Time: t, VenueID: slotVenue.ID, VenueName: slotVenue.Name})
		}
		out.Films = append(out.Films, sf)
	}
	return out, nil
}

// hasShowTime reports whether t is one of the configured slots.
func (s *ScheduleService) hasShowTime(t string) bool {
	for _, st := range s.festival.Schedule.ShowTimes {
		if st == t {
			return true
		}
	}
	return false
}
