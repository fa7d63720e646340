package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/laiff-festival/internal/catalog"
	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/repository"
	"github.com/iliyamo/laiff-festival/internal/utils"
)

const tmdbSearchLimit = 10

// MovieService manages the festival programme.
type MovieService struct {
	store   *repository.Store
	catalog Catalog
	films   *FilmService
	clock   Clock
}

func NewMovieService(store *repository.Store, c Catalog, clock Clock) *MovieService {
	return &MovieService{store: store, catalog: c, films: NewFilmService(c), clock: clock}
}

func (s *MovieService) List(ctx context.Context, q string) ([]model.FestivalMovie, error) {
	return s.store.Movies.List(ctx, q)
}

func (s *MovieService) Get(ctx context.Context, id string) (*model.FestivalMovie, error) {
	return s.store.Movies.GetByID(ctx, id)
}

func (s *MovieService) Create(ctx context.Context, m *model.FestivalMovie) (*model.FestivalMovie, error) {
	m.ApplyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	now := s.clock.now()
	m.ID = utils.NewID()
	m.CreatedAt, m.UpdatedAt = now.Unix(), now.Unix()
	if err := s.store.Movies.Create(ctx, m); err != nil {
		return nil, err
	}
	recordActivity(ctx, s.store.Activity, "Film added", m.Title, model.ActivityFilm, now)
	return m, nil
}

// Update replaces the editable fields of a stored film.
func (s *MovieService) Update(ctx context.Context, id string, m *model.FestivalMovie) (*model.FestivalMovie, error) {
	cur, err := s.store.Movies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.ApplyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.ID = cur.ID
	m.CreatedAt = cur.CreatedAt
	m.UpdatedAt = s.clock.now().Unix()
	if err := s.store.Movies.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MovieService) Delete(ctx context.Context, id string) error {
	return s.store.Movies.Delete(ctx, id)
}

// SearchCatalog returns the top catalog matches for an import picker.
// A catalog failure degrades to an empty result.
func (s *MovieService) SearchCatalog(ctx context.Context, q string) ([]FilmCard, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []FilmCard{}, nil
	}
	p, err := s.catalog.Search(ctx, q, 1)
	if err != nil {
		return []FilmCard{}, nil
	}
	return s.films.cards(p.Results, tmdbSearchLimit), nil
}

// Import builds a festival film from catalog details and stores it.
func (s *MovieService) Import(ctx context.Context, tmdbID int64) (*model.FestivalMovie, error) {
	if tmdbID <= 0 {
		return nil, fmt.Errorf("%w: tmdb_id is required", model.ErrInvalid)
	}
	d, err := s.catalog.Details(ctx, tmdbID)
	if err != nil {
		return nil, errors.Join(ErrCatalogUnavailable, err)
	}
	now := s.clock.now()

	m := &model.FestivalMovie{
		TMDBID:    d.ID,
		Title:     d.Title,
		Director:  catalog.Director(d.Credits.Crew),
		Genre:     model.DefaultMovieGenre,
		Runtime:   d.Runtime,
		Synopsis:  d.Overview,
		PosterURL: s.catalog.Images().Poster(d.PosterPath),
		Rating:    d.VoteAverage,
		Year:      releaseYearOr(d.ReleaseDate, now.Year()),
	}
	if len(d.Genres) > 0 && d.Genres[0].Name != "" {
		m.Genre = d.Genres[0].Name
	}
	return s.Create(ctx, m)
}

func releaseYearOr(date string, fallback int) int {
	if y := catalog.ReleaseYear(date); y > 0 {
		return y
	}
	return fallback
}
