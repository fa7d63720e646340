package service

import (
	"context"
	"errors"
	"strings"

	"github.com/iliyamo/laiff-festival/internal/catalog"
)

// FilmCard is a catalog movie with its image URLs and genre labels
// resolved.
type FilmCard struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	ReleaseDate string   `json:"release_date"`
	Year        int      `json:"year,omitempty"`
	Rating      float64  `json:"rating"`
	VoteCount   int      `json:"vote_count"`
	PosterURL   string   `json:"poster_url"`
	BackdropURL string   `json:"backdrop_url"`
	PosterPath  string   `json:"poster_path"`
	Genres      []string `json:"genre_names"`
}

// FilmPage is one page of film cards.  CatalogAvailable is false when the
// catalog call failed and the page was degraded to empty.
type FilmPage struct {
	Category         string     `json:"category,omitempty"`
	Query            string     `json:"query,omitempty"`
	Page             int        `json:"page"`
	TotalPages       int        `json:"total_pages"`
	TotalResults     int        `json:"total_results"`
	Results          []FilmCard `json:"results"`
	CatalogAvailable bool       `json:"catalog_available"`
}

// FilmQuery selects a listing.  Any of GenreID, Year or MinRating routes
// the query through discover; otherwise Category is listed.
type FilmQuery struct {
	Category  string
	GenreID   int
	Year      int
	SortBy    string
	MinRating float64
	Page      int
	Window    string
}

func (q FilmQuery) discover() bool { return q.GenreID > 0 || q.Year > 0 || q.MinRating > 0 }

// CastCard is a billed cast member.
type CastCard struct {
	Name       string `json:"name"`
	Character  string `json:"character"`
	ProfileURL string `json:"profile_url"`
}

// FilmDetails is the details page payload.
type FilmDetails struct {
	FilmCard
	Tagline         string           `json:"tagline"`
	Runtime         int              `json:"runtime"`
	RuntimeLabel    string           `json:"runtime_label"`
	Status          string           `json:"status"`
	Director        string           `json:"director"`
	TrailerURL      string           `json:"trailer_url"`
	Languages       []string         `json:"languages"`
	Cast            []CastCard       `json:"cast"`
	Similar         []FilmCard       `json:"similar"`
	Recommendations []FilmCard       `json:"recommendations"`
	Reviews         []catalog.Review `json:"reviews"`
}

const (
	maxCast    = 10
	maxRelated = 6
)

// FilmService serves the consumer film pages from the catalog.
type FilmService struct {
	catalog Catalog
}

func NewFilmService(c Catalog) *FilmService { return &FilmService{catalog: c} }

// List returns a category listing or a discover page.  A catalog failure
// yields an empty page with CatalogAvailable false; an unknown category is
// the caller's error.
func (s *FilmService) List(ctx context.Context, q FilmQuery) (*FilmPage, error) {
	if q.Category == "" {
		q.Category = string(catalog.NowPlaying)
	}
	var (
		p   *catalog.Page
		err error
	)
	if q.discover() {
		p, err = s.catalog.Discover(ctx, catalog.DiscoverParams{
			GenreID: q.GenreID, Year: q.Year, SortBy: q.SortBy, MinRating: q.MinRating, Page: q.Page,
		})
	} else {
		p, err = s.catalog.Category(ctx, catalog.Category(q.Category), q.Page, q.Window)
	}
	if errors.Is(err, catalog.ErrUnknownCategory) {
		return nil, err
	}
	out := s.page(p, err)
	if !q.discover() {
		out.Category = q.Category
	}
	return out, nil
}

// Search runs a title search.  A blank query falls back to the category
// listing so clearing the search box restores the browse view.
func (s *FilmService) Search(ctx context.Context, query string, fallback FilmQuery) (*FilmPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx, fallback)
	}
	p, err := s.catalog.Search(ctx, query, fallback.Page)
	out := s.page(p, err)
	out.Query = query
	return out, nil
}

// Details fetches one film.  There is no empty state for a single record,
// so catalog failures surface as ErrCatalogUnavailable.
func (s *FilmService) Details(ctx context.Context, id int64) (*FilmDetails, error) {
	d, err := s.catalog.Details(ctx, id)
	if err != nil {
		return nil, errors.Join(ErrCatalogUnavailable, err)
	}
	img := s.catalog.Images()

	card := s.card(d.Movie)
	if len(card.Genres) == 0 {
		for _, g := range d.Genres {
			card.Genres = append(card.Genres, g.Name)
		}
	}
	out := &FilmDetails{
		FilmCard:        card,
		Tagline:         d.Tagline,
		Runtime:         d.Runtime,
		RuntimeLabel:    catalog.FormatRuntime(d.Runtime),
		Status:          d.Status,
		Director:        catalog.Director(d.Credits.Crew),
		TrailerURL:      catalog.TrailerURL(d.Videos.Results),
		Languages:       make([]string, 0, len(d.SpokenLanguages)),
		Cast:            make([]CastCard, 0, maxCast),
		Similar:         s.cards(d.Similar.Results, maxRelated),
		Recommendations: s.cards(d.Recommendations.Results, maxRelated),
		Reviews:         d.Reviews.Results,
	}
	if out.Reviews == nil {
		out.Reviews = []catalog.Review{}
	}
	for _, l := range d.SpokenLanguages {
		out.Languages = append(out.Languages, l.Name)
	}
	for i, c := range d.Credits.Cast {
		if i == maxCast {
			break
		}
		out.Cast = append(out.Cast, CastCard{Name: c.Name, Character: c.Character, ProfileURL: img.Profile(c.ProfilePath)})
	}
	return out, nil
}

// Genres lists the static genre table.
func (s *FilmService) Genres() []catalog.Genre { return catalog.Genres() }

func (s *FilmService) page(p *catalog.Page, err error) *FilmPage {
	if err != nil || p == nil {
		return &FilmPage{Page: 1, Results: []FilmCard{}}
	}
	return &FilmPage{
		Page:             p.Page,
		TotalPages:       p.TotalPages,
		TotalResults:     p.TotalResults,
		Results:          s.cards(p.Results, 0),
		CatalogAvailable: true,
	}
}

// cards converts up to limit movies; limit 0 converts all.
func (s *FilmService) cards(ms []catalog.Movie, limit int) []FilmCard {
	if limit > 0 && len(ms) > limit {
		ms = ms[:limit]
	}
	out := make([]FilmCard, 0, len(ms))
	for _, m := range ms {
		out = append(out, s.card(m))
	}
	return out
}

func (s *FilmService) card(m catalog.Movie) FilmCard {
	img := s.catalog.Images()
	return FilmCard{
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		ReleaseDate: m.ReleaseDate,
		Year:        catalog.ReleaseYear(m.ReleaseDate),
		Rating:      m.VoteAverage,
		VoteCount:   m.VoteCount,
		PosterURL:   img.Poster(m.PosterPath),
		BackdropURL: img.Backdrop(m.BackdropPath),
		PosterPath:  m.PosterPath,
		Genres:      catalog.GenreNames(m.GenreIDs),
	}
}
