package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/laiff-festival/internal/config"
	"github.com/iliyamo/laiff-festival/internal/pkg/metrics"
	"github.com/iliyamo/laiff-festival/internal/prefs"
	"github.com/iliyamo/laiff-festival/internal/utils"
)

const secret = "test-secret"

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"client_id": ClientID(c)})
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestClientSession(t *testing.T) {
	e := echo.New()
	e.GET("/me", okHandler, ClientSession(secret))

	tok, err := utils.NewSessionToken(secret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	rec := serve(e, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), tok.ClientID)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing bearer token")

	other, err := utils.NewSessionToken("other-secret", time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+other.Token)
	rec = serve(e, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid session")
}

func TestOptionalClientSession(t *testing.T) {
	e := echo.New()
	e.GET("/films", okHandler, OptionalClientSession(secret))

	req := httptest.NewRequest(http.MethodGet, "/films", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec := serve(e, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"client_id":""}`, rec.Body.String())
}

type failingModes struct{}

func (failingModes) Load(context.Context, string) (bool, error) { return false, errors.New("redis down") }

func TestRequireAdminMode(t *testing.T) {
	modes := prefs.NewAdminMode(prefs.NewMemoryStore())
	e := echo.New()
	e.GET("/admin", okHandler, ClientSession(secret), RequireAdminMode(modes))

	tok, err := utils.NewSessionToken(secret, time.Hour)
	require.NoError(t, err)
	req := func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/admin", nil)
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
		return r
	}

	rec := serve(e, req())
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"admin mode disabled"}`, rec.Body.String())

	require.NoError(t, modes.Save(context.Background(), tok.ClientID, true))
	rec = serve(e, req())
	assert.Equal(t, http.StatusOK, rec.Code)

	e2 := echo.New()
	e2.GET("/admin", okHandler, ClientSession(secret), RequireAdminMode(failingModes{}))
	rec = serve(e2, req())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMetricsBasicAuth(t *testing.T) {
	e := echo.New()
	e.GET("/open", func(c echo.Context) error { return c.String(http.StatusOK, "metrics") }, MetricsBasicAuth("", ""))
	e.GET("/guarded", func(c echo.Context) error { return c.String(http.StatusOK, "metrics") }, MetricsBasicAuth("prom", "scrape"))

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic "+base64.StdEncoding.EncodeToString([]byte("prom:wrong")))
	rec = serve(e, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic "+base64.StdEncoding.EncodeToString([]byte("prom:scrape")))
	rec = serve(e, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPrometheus(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	e := echo.New()
	e.Use(Prometheus(m))
	e.GET("/v1/films/:id", func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadGateway, "catalog down") })
	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	serve(e, httptest.NewRequest(http.MethodGet, "/v1/films/550", nil))
	serve(e, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	serve(e, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/v1/films/:id", "502")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/healthz", "200")))
}

func TestRequestLoggerPassesErrorsThrough(t *testing.T) {
	e := echo.New()
	boom := errors.New("boom")
	h := RequestLogger()(func(echo.Context) error { return boom })
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), httptest.NewRecorder())
	assert.ErrorIs(t, h(c), boom)
}

func TestCacheAndRateLimitPassthroughWithoutRedis(t *testing.T) {
	e := echo.New()
	calls := 0
	h := func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, "ok")
	}
	e.GET("/x", h, NewRedisCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil, nil),
		NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil))

	for i := 0; i < 3; i++ {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
	assert.Equal(t, 3, calls)
}

func TestCacheKeyFrom(t *testing.T) {
	e := echo.New()
	key := func(strategy, target string) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.SetPath("/v1/films")
		return cacheKeyFrom(config.CacheConfig{Prefix: "laiff:cache", KeyStrategy: strategy}, c)
	}
	assert.Equal(t, key("route_query", "/v1/films?page=1"), key("", "/v1/films?page=1"))
	assert.NotEqual(t, key("route_query", "/v1/films?page=1"), key("route_query", "/v1/films?page=2"))
	assert.Equal(t, key("route", "/v1/films?page=1"), key("route", "/v1/films?page=2"))
	assert.Regexp(t, `^laiff:cache:[0-9a-f]{40}$`, key("route", "/v1/films"))
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/checkout", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/checkout")

	cfg := config.RateLimitConfig{Prefix: "laiff:rl"}
	assert.Equal(t, "laiff:rl:ip:10.0.0.7:client:anon:route:POST /v1/checkout", buildRateKey(cfg, c))

	c.Set(ContextClientID, "c-1")
	cfg.KeyStrategy = "client_route"
	assert.Equal(t, "laiff:rl:client:c-1:route:POST /v1/checkout", buildRateKey(cfg, c))
	cfg.KeyStrategy = "ip"
	assert.Equal(t, "laiff:rl:ip:10.0.0.7", buildRateKey(cfg, c))
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, err := cw.Write([]byte("abc"))
	require.NoError(t, err)
	assert.False(t, cw.truncated())
	_, err = cw.Write([]byte("defg"))
	require.NoError(t, err)
	assert.Equal(t, "abcd", cw.buf.String())
	assert.Equal(t, "abcdefg", rec.Body.String())
	assert.True(t, cw.truncated())
}

// TestRedisCacheAndLimiter runs against a live server when REDIS_TEST_ADDR
// is set.
func TestRedisCacheAndLimiter(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	prefix := "laiff:test:" + utils.NewID()
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	e := echo.New()
	calls := 0
	e.GET("/films", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"page": 1})
	}, NewRedisCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute,
		Prefix: prefix, MaxBodyBytes: 1 << 10}, rdb, m))

	first := serve(e, httptest.NewRequest(http.MethodGet, "/films", nil))
	second := serve(e, httptest.NewRequest(http.MethodGet, "/films", nil))
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("hit")))

	e.GET("/limited", okHandler, NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 2, RefillTokens: 1,
		RefillInterval: time.Hour, TTL: time.Hour, Prefix: prefix, KeyStrategy: "route"}, rdb))
	codes := []int{}
	for i := 0; i < 3; i++ {
		codes = append(codes, serve(e, httptest.NewRequest(http.MethodGet, "/limited", nil)).Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}
