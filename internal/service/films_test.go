package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/laiff-festival/internal/catalog"
)

func TestFilmService_ListDefaultsToNowPlaying(t *testing.T) {
	cat := &fakeCatalog{page: samplePage()}
	s := NewFilmService(cat)

	p, err := s.List(context.Background(), FilmQuery{})
	require.NoError(t, err)
	assert.Equal(t, catalog.NowPlaying, cat.category)
	assert.Equal(t, "now_playing", p.Category)
	assert.True(t, p.CatalogAvailable)
	require.Len(t, p.Results, 12)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/p.jpg", p.Results[0].PosterURL)
	assert.Equal(t, []string{"Drama"}, p.Results[0].Genres)
	assert.Equal(t, 2025, p.Results[0].Year)
}

func TestFilmService_ListRoutesFiltersThroughDiscover(t *testing.T) {
	cat := &fakeCatalog{page: samplePage()}
	s := NewFilmService(cat)

	p, err := s.List(context.Background(), FilmQuery{Category: "popular", GenreID: 27, Year: 2023, MinRating: 6.5, Page: 2})
	require.NoError(t, err)
	require.NotNil(t, cat.discover)
	assert.Equal(t, catalog.DiscoverParams{GenreID: 27, Year: 2023, MinRating: 6.5, Page: 2}, *cat.discover)
	assert.Empty(t, cat.category, "category listing is not called")
	assert.Empty(t, p.Category)
}

func TestFilmService_ListDegradesOnCatalogFailure(t *testing.T) {
	s := NewFilmService(&fakeCatalog{err: errCatalogDown})

	p, err := s.List(context.Background(), FilmQuery{Category: "top_rated"})
	require.NoError(t, err)
	assert.False(t, p.CatalogAvailable)
	assert.NotNil(t, p.Results)
	assert.Empty(t, p.Results)
	assert.Equal(t, "top_rated", p.Category)
}

func TestFilmService_ListUnknownCategory(t *testing.T) {
	s := NewFilmService(&fakeCatalog{page: samplePage()})
	_, err := s.List(context.Background(), FilmQuery{Category: "cult"})
	assert.ErrorIs(t, err, catalog.ErrUnknownCategory)
}

func TestFilmService_BlankSearchRestoresCategory(t *testing.T) {
	cat := &fakeCatalog{page: samplePage()}
	s := NewFilmService(cat)

	searched, err := s.Search(context.Background(), "alien", FilmQuery{Category: "upcoming"})
	require.NoError(t, err)
	assert.Equal(t, "alien", cat.query)
	assert.Equal(t, "alien", searched.Query)

	cleared, err := s.Search(context.Background(), "   ", FilmQuery{Category: "upcoming"})
	require.NoError(t, err)
	assert.Equal(t, catalog.Upcoming, cat.category)
	assert.Equal(t, "upcoming", cleared.Category)
	assert.Empty(t, cleared.Query)
	assert.Len(t, cleared.Results, 12)
}

func TestFilmService_Details(t *testing.T) {
	d := &catalog.MovieDetails{
		Movie:   catalog.Movie{ID: 550, Title: "Fight Club", Runtime: 139, PosterPath: "/fc.jpg", BackdropPath: "/bd.jpg"},
		Tagline: "Mischief. Mayhem. Soap.",
		Genres:  []catalog.Genre{{ID: 18, Name: "Drama"}},
	}
	for i := 0; i < 15; i++ {
		d.Credits.Cast = append(d.Credits.Cast, catalog.CastMember{Name: "Actor", ProfilePath: "/a.jpg"})
	}
	d.Credits.Crew = []catalog.CrewMember{{Name: "Jim Uhls", Job: "Screenplay"}, {Name: "David Fincher", Job: "Director"}}
	d.Videos.Results = []catalog.Video{{Key: "teaser", Site: "YouTube", Type: "Teaser"}, {Key: "abc", Site: "YouTube", Type: "Trailer"}}
	d.Similar = *samplePage()
	s := NewFilmService(&fakeCatalog{details: d})

	got, err := s.Details(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "David Fincher", got.Director)
	assert.Equal(t, "https://www.youtube.com/embed/abc", got.TrailerURL)
	assert.Equal(t, "2h 19m", got.RuntimeLabel)
	assert.Equal(t, []string{"Drama"}, got.Genres)
	assert.Len(t, got.Cast, 10)
	assert.Equal(t, "https://image.tmdb.org/t/p/w185/a.jpg", got.Cast[0].ProfileURL)
	assert.Len(t, got.Similar, 6)
	assert.Empty(t, got.Recommendations)
	assert.NotNil(t, got.Reviews)
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/bd.jpg", got.BackdropURL)
}

func TestFilmService_DetailsFailure(t *testing.T) {
	s := NewFilmService(&fakeCatalog{err: errCatalogDown})
	_, err := s.Details(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.ErrorIs(t, err, errCatalogDown)
}
