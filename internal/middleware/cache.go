package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/laiff-festival/internal/config"
	"github.com/iliyamo/laiff-festival/internal/pkg/logger"
	"github.com/iliyamo/laiff-festival/internal/pkg/metrics"
)

// captureWriter tees the response body into buf, up to limit bytes, while
// forwarding everything to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 {
		cw.buf.Write(b)
	} else if remain := cw.limit - cw.size; remain > 0 {
		if int64(len(b)) <= remain {
			cw.buf.Write(b)
		} else {
			cw.buf.Write(b[:remain])
		}
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// truncated reports whether the body outgrew the capture limit.
func (cw *captureWriter) truncated() bool { return cw.limit > 0 && cw.size > cw.limit }

// cachedResponse is the stored form of a response.
type cachedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// cacheKeyFrom hashes the request parts chosen by the key strategy under
// the configured prefix.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	var parts []string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		parts = []string{"route", c.Path()}
	case "method_route_query":
		parts = []string{"method", r.Method, "route", c.Path(), "q", r.URL.RawQuery}
	default:
		parts = []string{"route", c.Path(), "q", r.URL.RawQuery}
	}
	sum := sha1.Sum([]byte(strings.Join(parts, ":")))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// NewRedisCache caches successful responses of the configured methods in
// Redis.  Responses marked Cache-Control: no-store are not stored.
// Without a client it is a passthrough.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client, m *metrics.Metrics) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	maxBody := int64(cfg.MaxBodyBytes)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}
			ctx := c.Request().Context()
			key := cacheKeyFrom(cfg, c)

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cr cachedResponse
				if json.Unmarshal(bs, &cr) == nil && cr.Status != 0 {
					m.CountCache("hit")
					h := c.Response().Header()
					for k, vals := range cr.Header {
						if strings.EqualFold(k, echo.HeaderContentLength) {
							continue
						}
						for _, v := range vals {
							h.Add(k, v)
						}
					}
					h.Set("X-Cache", "HIT")
					c.Response().WriteHeader(cr.Status)
					_, err := c.Response().Write(cr.Body)
					return err
				}
			} else if err != redis.Nil {
				logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
			}
			m.CountCache("miss")

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status != http.StatusOK || cw.truncated() ||
				strings.Contains(c.Response().Header().Get("Cache-Control"), "no-store") {
				return nil
			}

			hdr := c.Response().Header().Clone()
			hdr.Del("X-Cache")
			payload, err := json.Marshal(cachedResponse{Status: cw.status, Header: hdr, Body: cw.buf.Bytes()})
			if err != nil {
				return nil
			}
			if err := rdb.Set(context.WithoutCancel(ctx), key, payload, ttl).Err(); err != nil {
				logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}
