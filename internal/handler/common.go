package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/laiff-festival/internal/catalog"
	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/pkg/logger"
	"github.com/iliyamo/laiff-festival/internal/repository"
	"github.com/iliyamo/laiff-festival/internal/service"
)

// statusFor maps a domain error onto an HTTP status and a client-facing
// message.  Unknown errors are 500 and keep their detail out of the body.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrPromoNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, "already exists"
	case errors.Is(err, model.ErrInvalidTransition), errors.Is(err, model.ErrNoTickets):
		return http.StatusConflict, err.Error()
	case errors.Is(err, model.ErrPromoDepleted):
		return http.StatusConflict, err.Error()
	case errors.Is(err, model.ErrPromoExpired), errors.Is(err, model.ErrPromoNotStarted):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, model.ErrInvalid),
		errors.Is(err, model.ErrInvalidTicketKind),
		errors.Is(err, model.ErrCustomerRequired),
		errors.Is(err, catalog.ErrUnknownCategory):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrCatalogUnavailable):
		return http.StatusBadGateway, service.ErrCatalogUnavailable.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

// fail writes err as a JSON error answer.  Server errors are logged with
// the route so the generic body can be traced.
func fail(c echo.Context, err error) error {
	status, msg := statusFor(err)
	if status >= 500 {
		logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	return c.JSON(status, echo.Map{"error": msg})
}

// bindValid binds the request body into v and runs its validate tags.
// Both failures come back as a 400 HTTPError for the error handler.
func bindValid(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(v)
}

// queryInt parses an optional integer query parameter.  A blank value
// yields def; garbage yields ok=false.
func queryInt(c echo.Context, name string, def int) (int, bool) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func queryFloat(c echo.Context, name string) (float64, bool) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// noStore marks a degraded answer so the response cache skips it.
func noStore(c echo.Context) {
	c.Response().Header().Set("Cache-Control", "no-store")
}
