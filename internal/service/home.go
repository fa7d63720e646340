package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/laiff-festival/internal/config"
	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/pkg/logger"
	"github.com/iliyamo/laiff-festival/internal/repository"
)

const homeFilms = 10

// EventCard is an event with display labels.
type EventCard struct {
	model.Event
	DateLabel string `json:"date_label"`
	TimeLabel string `json:"time_label"`
}

func eventCard(e model.Event) EventCard {
	return EventCard{Event: e, DateLabel: e.DateLabel(), TimeLabel: e.TimeLabel()}
}

// HomeFeed is the landing page payload.
type HomeFeed struct {
	Festival         HomeFestival `json:"festival"`
	NowPlaying       []FilmCard   `json:"now_playing"`
	CatalogAvailable bool         `json:"catalog_available"`
	FeaturedEvents   []EventCard  `json:"featured_events"`
}

type HomeFestival struct {
	Name        string       `json:"name"`
	FullName    string       `json:"full_name"`
	Tagline     string       `json:"tagline"`
	DateDisplay string       `json:"date_display"`
	DaysUntil   int          `json:"days_until"`
	Venue       config.Venue `json:"venue"`
}

// HomeService assembles the landing page.
type HomeService struct {
	films    *FilmService
	events   *repository.EventRepo
	festival *config.Festival
	clock    Clock
}

func NewHomeService(films *FilmService, events *repository.EventRepo, f *config.Festival, clock Clock) *HomeService {
	return &HomeService{films: films, events: events, festival: f, clock: clock}
}

// Feed loads the film and event sections concurrently.  A catalog failure
// only empties the film section; a store failure fails the feed.
func (s *HomeService) Feed(ctx context.Context) (*HomeFeed, error) {
	venue, _ := s.festival.Venue(s.festival.MainVenue)
	feed := &HomeFeed{
		Festival: HomeFestival{
			Name:        s.festival.Name,
			FullName:    s.festival.FullName,
			Tagline:     s.festival.Tagline,
			DateDisplay: s.festival.DateDisplay,
			DaysUntil:   s.festival.DaysUntil(s.clock.now()),
			Venue:       venue,
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := s.films.List(gctx, FilmQuery{Category: "now_playing", Page: 1})
		if err != nil {
			logger.Warn("home: now playing failed", zap.Error(err))
			feed.NowPlaying = []FilmCard{}
			return nil
		}
		feed.CatalogAvailable = page.CatalogAvailable
		feed.NowPlaying = page.Results
		if len(feed.NowPlaying) > homeFilms {
			feed.NowPlaying = feed.NowPlaying[:homeFilms]
		}
		return nil
	})
	g.Go(func() error {
		evs, err := s.events.Featured(gctx)
		if err != nil {
			return err
		}
		feed.FeaturedEvents = make([]EventCard, 0, len(evs))
		for _, e := range evs {
			feed.FeaturedEvents = append(feed.FeaturedEvents, eventCard(e))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return feed, nil
}
