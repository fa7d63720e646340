package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/laiff-festival/internal/model"
)

func TestScheduleService_Build(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	s := NewScheduleService(NewFilmService(&fakeCatalog{page: samplePage()}), f, clk.Now)

	sc, err := s.Build(context.Background(), 4, "")
	require.NoError(t, err)
	require.Len(t, sc.Dates, 7)
	assert.Equal(t, ScheduleDate{ISO: "2025-11-10", Label: "Mon, Nov 10", Day: 0}, sc.Dates[0])
	assert.Equal(t, "2025-11-16", sc.Dates[6].ISO)
	assert.Equal(t, "all", sc.Venue)
	assert.Equal(t, []ScheduleVenue{{"all", "All Venues"}, {"mdt", "Million Dollar Theatre"}, {"smc", "Secret Movie Club"}}, sc.Venues)
	require.Len(t, sc.Films, 8)
	require.Len(t, sc.Films[0].Showtimes, 3)
	assert.Equal(t, ShowSlot{Time: "2:30 PM", VenueID: "mdt", VenueName: "Million Dollar Theatre"}, sc.Films[0].Showtimes[0])

	sc, err = s.Build(context.Background(), 0, "smc")
	require.NoError(t, err)
	assert.Equal(t, "smc", sc.Films[0].Showtimes[2].VenueID)

	_, err = s.Build(context.Background(), 7, "all")
	assert.ErrorIs(t, err, model.ErrInvalid)
	_, err = s.Build(context.Background(), 0, "gcm")
	assert.ErrorIs(t, err, model.ErrInvalid)
}

func TestScheduleService_CatalogDown(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	s := NewScheduleService(NewFilmService(&fakeCatalog{err: errCatalogDown}), f, clk.Now)

	sc, err := s.Build(context.Background(), 0, "all")
	require.NoError(t, err)
	assert.False(t, sc.CatalogAvailable)
	assert.Empty(t, sc.Films)
	assert.Len(t, sc.Dates, 7)
}

func TestFestivalService_Map(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)

	static := NewFestivalService(f, "", clk.Now).Map()
	assert.Equal(t, "static", static.Provider)
	assert.Equal(t, "/images/venues/million-dollar-theatre.jpg", static.FallbackImage)
	assert.Empty(t, static.StaticImageURL)
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=34.0505,-118.2492", static.PlaceURL)

	mb := NewFestivalService(f, "pk.test", clk.Now).Map()
	assert.Equal(t, "mapbox", mb.Provider)
	assert.Equal(t, "mapbox://styles/mapbox/dark-v11", mb.Style)
	assert.Equal(t, []float64{-118.2492, 34.0505}, mb.Center)
	assert.Equal(t, 15, mb.Zoom)
	assert.Len(t, mb.Markers, 3)
	assert.True(t, strings.HasPrefix(mb.StaticImageURL, "https://api.mapbox.com/styles/v1/mapbox/dark-v11/static/pin-s+ff6b6b(-118.2491,34.0497)"))
	assert.True(t, strings.HasSuffix(mb.StaticImageURL, "access_token=pk.test"))
}

func TestFestivalService_InfoAndVenues(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	s := NewFestivalService(f, "", clk.Now)

	assert.Equal(t, 4, s.Info().DaysUntil)
	venues := s.Venues()
	require.Len(t, venues, 3)
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=34.0497,-118.2491", venues[0].DirectionsURL)

	tiers := s.Membership()
	require.Len(t, tiers, 3)
	assert.Equal(t, 15000, tiers[1].PriceCents)
	assert.True(t, tiers[1].Popular)
}

func TestHomeService_Feed(t *testing.T) {
	f := testFestival(t)
	clk := newTestClock(t, f)
	store := seededStore(t, clk.Now())

	feed, err := NewHomeService(NewFilmService(&fakeCatalog{page: samplePage()}), store.Events, f, clk.Now).Feed(context.Background())
	require.NoError(t, err)
	assert.True(t, feed.CatalogAvailable)
	assert.Len(t, feed.NowPlaying, 10)
	assert.Len(t, feed.FeaturedEvents, 2)
	assert.Equal(t, "LAIFF", feed.Festival.Name)
	assert.Equal(t, "mdt", feed.Festival.Venue.ID)
	assert.Equal(t, 4, feed.Festival.DaysUntil)

	degraded, err := NewHomeService(NewFilmService(&fakeCatalog{err: errCatalogDown}), store.Events, f, clk.Now).Feed(context.Background())
	require.NoError(t, err)
	assert.False(t, degraded.CatalogAvailable)
	assert.Empty(t, degraded.NowPlaying)
	assert.Len(t, degraded.FeaturedEvents, 2, "a catalog failure only empties the film section")
}
