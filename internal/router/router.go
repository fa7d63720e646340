// Package router wires handlers and middleware onto an echo instance.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/laiff-festival/internal/handler"
	"github.com/iliyamo/laiff-festival/internal/middleware"
	"github.com/iliyamo/laiff-festival/internal/pkg/metrics"
)

// Handlers are the route targets.
type Handlers struct {
	Health        *handler.HealthHandler
	Session       *handler.SessionHandler
	Films         *handler.FilmHandler
	Festival      *handler.FestivalHandler
	Notifications *handler.NotificationHandler
	Me            *handler.MeHandler
	Checkout      *handler.CheckoutHandler
	Admin         *handler.AdminHandler
}

// Options carries the cross-cutting pieces.  Cache and RateLimit may be
// nil, in which case requests pass straight through.
type Options struct {
	SessionSecret string
	AdminModes    middleware.AdminModeReader

	Cache     echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc

	Metrics         *metrics.Metrics
	Gatherer        prometheus.Gatherer
	MetricsUser     string
	MetricsPassword string

	AllowOrigins []string
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

func orPass(mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	if mw == nil {
		return passthrough
	}
	return mw
}

// New builds the echo instance with the global middleware and every
// route group registered.
func New(h Handlers, o Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.CustomHTTPErrorHandler

	origins := o.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	if o.Metrics != nil {
		e.Use(middleware.Prometheus(o.Metrics))
	}

	RegisterRoutes(e, h.Health, o)
	RegisterPublic(e, h, o)
	RegisterMe(e, h.Me, o)
	RegisterCheckout(e, h.Checkout, o)
	RegisterAdmin(e, h.Admin, o)
	return e
}

// RegisterRoutes registers the unauthenticated operational endpoints:
// the health check and the Prometheus scrape target.
func RegisterRoutes(e *echo.Echo, health *handler.HealthHandler, o Options) {
	e.GET("/healthz", health.Check)

	var scrape http.Handler
	if o.Gatherer != nil {
		scrape = promhttp.HandlerFor(o.Gatherer, promhttp.HandlerOpts{})
	} else {
		scrape = promhttp.Handler()
	}
	e.GET("/metrics", echo.WrapHandler(scrape), middleware.MetricsBasicAuth(o.MetricsUser, o.MetricsPassword))
}
