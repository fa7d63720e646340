package catalog

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/laiff-festival/internal/pkg/metrics"
)

const testBase = "https://catalog.test/3"

func newMockedClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)
	return New(testBase, "secret-key", append([]Option{WithHTTPClient(hc)}, opts...)...)
}

func pageResponder(t *testing.T, check func(*http.Request), body map[string]any) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		if check != nil {
			check(req)
		}
		return httpmock.NewJsonResponse(200, body)
	}
}

func TestNowPlaying_SendsKeyAndPage(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder("GET", testBase+"/movie/now_playing",
		pageResponder(t, func(req *http.Request) {
			q := req.URL.Query()
			assert.Equal(t, "secret-key", q.Get("api_key"))
			assert.Equal(t, "2", q.Get("page"))
			assert.Equal(t, "en-US", q.Get("language"))
		}, map[string]any{
			"page":          2,
			"total_pages":   812,
			"total_results": 16000,
			"results": []map[string]any{
				{"id": 1, "title": "Deadly Vows", "poster_path": "/dv.jpg", "genre_ids": []int{53}},
			},
		}))

	p, err := c.NowPlaying(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 500, p.TotalPages, "total pages is capped")
	require.Len(t, p.Results, 1)
	assert.Equal(t, "Deadly Vows", p.Results[0].Title)
	assert.Equal(t, []int{53}, p.Results[0].GenreIDs)
}

func TestCategory_Dispatch(t *testing.T) {
	c := newMockedClient(t)
	for _, path := range []string{"/movie/popular", "/movie/top_rated", "/movie/upcoming", "/trending/movie/week", "/trending/movie/day"} {
		httpmock.RegisterResponder("GET", testBase+path, httpmock.NewStringResponder(200, `{"page":1,"results":[],"total_pages":1}`))
	}

	for _, cat := range []Category{Popular, TopRated, Upcoming, Trending} {
		_, err := c.Category(context.Background(), cat, 1, "")
		require.NoError(t, err, cat)
	}
	_, err := c.Category(context.Background(), Trending, 1, "day")
	require.NoError(t, err)
	_, err = c.Category(context.Background(), "cult", 1, "")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["GET "+testBase+"/trending/movie/week"], "blank window falls back to week")
	assert.Equal(t, 1, info["GET "+testBase+"/trending/movie/day"])
}

func TestSearch_EmptyResultsNeverNil(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder("GET", testBase+"/search/movie",
		pageResponder(t, func(req *http.Request) {
			assert.Equal(t, "where darkness", req.URL.Query().Get("query"))
			assert.Equal(t, "1", req.URL.Query().Get("page"))
		}, map[string]any{"page": 1, "total_pages": 0}))

	p, err := c.Search(context.Background(), "where darkness", 0)
	require.NoError(t, err)
	assert.NotNil(t, p.Results)
	assert.Empty(t, p.Results)
}

func TestDiscover_Params(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder("GET", testBase+"/discover/movie",
		pageResponder(t, func(req *http.Request) {
			q := req.URL.Query()
			assert.Equal(t, "27", q.Get("with_genres"))
			assert.Equal(t, "2024", q.Get("primary_release_year"))
			assert.Equal(t, "popularity.desc", q.Get("sort_by"))
			assert.Equal(t, "6.5", q.Get("vote_average.gte"))
			assert.Equal(t, "3", q.Get("page"))
		}, map[string]any{"page": 3, "total_pages": 4, "results": []any{}}))

	_, err := c.Discover(context.Background(), DiscoverParams{GenreID: 27, Year: 2024, MinRating: 6.5, Page: 3})
	require.NoError(t, err)
}

func TestDetails_DecodesAppendedResources(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder("GET", testBase+"/movie/603",
		pageResponder(t, func(req *http.Request) {
			assert.Equal(t, "videos,credits,similar,recommendations,reviews", req.URL.Query().Get("append_to_response"))
		}, map[string]any{
			"id": 603, "title": "Where Darkness Dwells", "runtime": 102, "release_date": "2024-10-01",
			"genres":  []map[string]any{{"id": 27, "name": "Horror"}},
			"credits": map[string]any{"crew": []map[string]any{{"name": "Jane Doe", "job": "Producer"}, {"name": "Michael May", "job": "Director"}}},
			"videos":  map[string]any{"results": []map[string]any{{"key": "abc", "site": "YouTube", "type": "Teaser"}, {"key": "xyz", "site": "YouTube", "type": "Trailer"}}},
		}))

	d, err := c.Details(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, int64(603), d.ID)
	assert.Equal(t, 102, d.Runtime)
	assert.Equal(t, "Michael May", Director(d.Credits.Crew))
	assert.Equal(t, "https://www.youtube.com/embed/xyz", TrailerURL(d.Videos.Results))
	assert.Equal(t, "Horror", d.Genres[0].Name)
}

func TestGet_NonSuccessStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)
	c := newMockedClient(t, WithMetrics(m))
	httpmock.RegisterResponder("GET", testBase+"/movie/popular",
		httpmock.NewStringResponder(401, `{"status_code":7,"status_message":"Invalid API key"}`))

	_, err := c.Popular(context.Background(), 1)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "popular", apiErr.Endpoint)
	assert.Equal(t, "Invalid API key", apiErr.Message)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogRequestsTotal.WithLabelValues("popular", "error")))
}

func TestGet_TransportError(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder("GET", testBase+"/movie/upcoming", httpmock.NewErrorResponder(errors.New("connection refused")))

	_, err := c.Upcoming(context.Background(), 1)
	assert.ErrorContains(t, err, "connection refused")
}
