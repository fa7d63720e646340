// Package catalog is a read-only client for the external movie catalog
// (The Movie Database v3 API).  Authentication is the api_key query
// parameter.  Calls are single attempts: failures are logged, counted and
// returned so callers can fall back to an empty state.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/laiff-festival/internal/pkg/logger"
	"github.com/iliyamo/laiff-festival/internal/pkg/metrics"
)

// DefaultBaseURL is the v3 REST root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// MaxPages is the deepest page the catalog will serve for any listing.
const MaxPages = 500

// Category names a listing endpoint.
type Category string

const (
	NowPlaying Category = "now_playing"
	Popular    Category = "popular"
	TopRated   Category = "top_rated"
	Upcoming   Category = "upcoming"
	Trending   Category = "trending"
)

// ErrUnknownCategory is returned by Category for an unsupported name.
var ErrUnknownCategory = errors.New("unknown catalog category")

// APIError is a non-2xx answer from the catalog.
type APIError struct {
	Status   int
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("catalog %s: status %d: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("catalog %s: status %d", e.Endpoint, e.Status)
}

// Client talks to the catalog.  It is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	images  ImageBase
	http    *http.Client
	metrics *metrics.Metrics
}

type Option func(*Client)

// WithHTTPClient replaces the default client, e.g. to install a mock
// transport in tests.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

func WithMetrics(m *metrics.Metrics) Option { return func(c *Client) { c.metrics = m } }

func WithImageBase(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.images = ImageBase(strings.TrimRight(base, "/"))
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New builds a client.  An empty baseURL selects DefaultBaseURL.
func New(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		images:  DefaultImageBase,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Images returns the image URL builder bound to the configured CDN.
func (c *Client) Images() ImageBase { return c.images }

func (c *Client) NowPlaying(ctx context.Context, page int) (*Page, error) {
	return c.list(ctx, "now_playing", "/movie/now_playing", page)
}

func (c *Client) Popular(ctx context.Context, page int) (*Page, error) {
	return c.list(ctx, "popular", "/movie/popular", page)
}

func (c *Client) TopRated(ctx context.Context, page int) (*Page, error) {
	return c.list(ctx, "top_rated", "/movie/top_rated", page)
}

func (c *Client) Upcoming(ctx context.Context, page int) (*Page, error) {
	return c.list(ctx, "upcoming", "/movie/upcoming", page)
}

// Trending lists trending movies for window "day" or "week".  Anything
// else is treated as "week".
func (c *Client) Trending(ctx context.Context, window string) (*Page, error) {
	if window != "day" {
		window = "week"
	}
	var p Page
	if err := c.get(ctx, "trending", "/trending/movie/"+window, nil, &p); err != nil {
		return nil, err
	}
	p.capPages()
	return &p, nil
}

// Search runs a title search.
func (c *Client) Search(ctx context.Context, query string, page int) (*Page, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(normPage(page)))
	var p Page
	if err := c.get(ctx, "search", "/search/movie", q, &p); err != nil {
		return nil, err
	}
	p.capPages()
	return &p, nil
}

// Details fetches one movie with videos, credits, similar,
// recommendations and reviews appended.
func (c *Client) Details(ctx context.Context, id int64) (*MovieDetails, error) {
	q := url.Values{}
	q.Set("append_to_response", "videos,credits,similar,recommendations,reviews")
	var d MovieDetails
	if err := c.get(ctx, "details", "/movie/"+strconv.FormatInt(id, 10), q, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Discover filters the catalog by genre, year and rating.
func (c *Client) Discover(ctx context.Context, p DiscoverParams) (*Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(normPage(p.Page)))
	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = "popularity.desc"
	}
	q.Set("sort_by", sortBy)
	if p.GenreID > 0 {
		q.Set("with_genres", strconv.Itoa(p.GenreID))
	}
	if p.Year > 0 {
		q.Set("primary_release_year", strconv.Itoa(p.Year))
	}
	if p.MinRating > 0 {
		q.Set("vote_average.gte", strconv.FormatFloat(p.MinRating, 'f', -1, 64))
	}
	var out Page
	if err := c.get(ctx, "discover", "/discover/movie", q, &out); err != nil {
		return nil, err
	}
	out.capPages()
	return &out, nil
}

// Category dispatches to the listing named by cat.  window only applies
// to trending.
func (c *Client) Category(ctx context.Context, cat Category, page int, window string) (*Page, error) {
	switch cat {
	case NowPlaying:
		return c.NowPlaying(ctx, page)
	case Popular:
		return c.Popular(ctx, page)
	case TopRated:
		return c.TopRated(ctx, page)
	case Upcoming:
		return c.Upcoming(ctx, page)
	case Trending:
		return c.Trending(ctx, window)
	}
	return nil, ErrUnknownCategory
}

func (c *Client) list(ctx context.Context, endpoint, path string, page int) (*Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(normPage(page)))
	var p Page
	if err := c.get(ctx, endpoint, path, q, &p); err != nil {
		return nil, err
	}
	p.capPages()
	return &p, nil
}

// get issues one GET and decodes a JSON body into out.
func (c *Client) get(ctx context.Context, endpoint, path string, q url.Values, out any) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveCatalog(endpoint, err, time.Since(start))
		if err != nil {
			logger.Warn("catalog request failed",
				zap.String("endpoint", endpoint),
				zap.Duration("took", time.Since(start)),
				zap.Error(err),
			)
		}
	}()

	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)
	q.Set("language", "en-US")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("catalog %s: build request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Endpoint: endpoint}
		var body struct {
			StatusMessage string `json:"status_message"`
		}
		if b, rerr := io.ReadAll(io.LimitReader(resp.Body, 4096)); rerr == nil && json.Unmarshal(b, &body) == nil {
			apiErr.Message = body.StatusMessage
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog %s: decode: %w", endpoint, err)
	}
	return nil
}

func (p *Page) capPages() {
	if p.TotalPages > MaxPages {
		p.TotalPages = MaxPages
	}
	if p.Results == nil {
		p.Results = []Movie{}
	}
}

func normPage(p int) int {
	if p < 1 {
		return 1
	}
	if p > MaxPages {
		return MaxPages
	}
	return p
}
