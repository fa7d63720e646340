package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/laiff-festival/internal/catalog"
	"github.com/iliyamo/laiff-festival/internal/config"
	"github.com/iliyamo/laiff-festival/internal/database"
	"github.com/iliyamo/laiff-festival/internal/repository"
)

var errCatalogDown = errors.New("catalog down")

// fakeCatalog answers every listing with page and every details call with
// details, unless err is set.  It records the last request of each kind.
type fakeCatalog struct {
	mu       sync.Mutex
	page     *catalog.Page
	details  *catalog.MovieDetails
	err      error
	category catalog.Category
	discover *catalog.DiscoverParams
	query    string
}

func (f *fakeCatalog) NowPlaying(ctx context.Context, page int) (*catalog.Page, error) {
	return f.Category(ctx, catalog.NowPlaying, page, "")
}

func (f *fakeCatalog) Category(_ context.Context, cat catalog.Category, _ int, _ string) (*catalog.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch cat {
	case catalog.NowPlaying, catalog.Popular, catalog.TopRated, catalog.Upcoming, catalog.Trending:
	default:
		return nil, catalog.ErrUnknownCategory
	}
	f.category = cat
	return f.page, f.err
}

func (f *fakeCatalog) Discover(_ context.Context, p catalog.DiscoverParams) (*catalog.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discover = &p
	return f.page, f.err
}

func (f *fakeCatalog) Search(_ context.Context, q string, _ int) (*catalog.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.query = q
	return f.page, f.err
}

func (f *fakeCatalog) Details(context.Context, int64) (*catalog.MovieDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

func (f *fakeCatalog) Images() catalog.ImageBase { return catalog.DefaultImageBase }

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, topic string, v any) error {
	return m.Called(ctx, topic, v).Error(0)
}

// testClock is a settable clock pinned to a few days before opening.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t *testing.T, f *config.Festival) *testClock {
	t.Helper()
	return &testClock{t: time.Date(2025, 11, 10, 12, 0, 0, 0, f.Location())}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func testFestival(t *testing.T) *config.Festival {
	t.Helper()
	f, err := config.LoadFestival("")
	require.NoError(t, err)
	return f
}

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := database.Open(config.Config{DBDriver: "sqlite"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.CreateSchema(context.Background(), db))
	return repository.NewStore(db)
}

func seededStore(t *testing.T, now time.Time) *repository.Store {
	t.Helper()
	s := newTestStore(t)
	_, err := database.Seed(context.Background(), s.DB(), now)
	require.NoError(t, err)
	return s
}

func samplePage() *catalog.Page {
	p := &catalog.Page{Page: 1, TotalPages: 3, TotalResults: 12}
	for i := 1; i <= 12; i++ {
		p.Results = append(p.Results, catalog.Movie{
			ID:          int64(i),
			Title:       "Film " + string(rune('A'+i-1)),
			PosterPath:  "/p.jpg",
			ReleaseDate: "2025-03-01",
			VoteAverage: 7.1,
			GenreIDs:    []int{18},
		})
	}
	return p
}
