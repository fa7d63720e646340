package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/laiff-festival/internal/service"
)

// FestivalHandler serves the consumer pages that are not film listings:
// the home feed, the schedule, festival info and the events list.
type FestivalHandler struct {
	home     HomeReader
	schedule ScheduleReader
	festival FestivalReader
	events   EventCardReader
}

func NewFestivalHandler(home HomeReader, schedule ScheduleReader, festival FestivalReader, events EventCardReader) *FestivalHandler {
	return &FestivalHandler{home: home, schedule: schedule, festival: festival, events: events}
}

// Home handles GET /v1/home.
func (h *FestivalHandler) Home(c echo.Context) error {
	feed, err := h.home.Feed(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	if !feed.CatalogAvailable {
		noStore(c)
	}
	return c.JSON(http.StatusOK, feed)
}

// Schedule handles GET /v1/schedule?day=&venue=.
func (h *FestivalHandler) Schedule(c echo.Context) error {
	day, ok := queryInt(c, "day", 0)
	if !ok {
		return badRequest(c, "day must be a number")
	}
	venue := c.QueryParam("venue")
	if venue == "" {
		venue = service.AllVenues
	}
	s, err := h.schedule.Build(c.Request().Context(), day, venue)
	if err != nil {
		return fail(c, err)
	}
	if !s.CatalogAvailable {
		noStore(c)
	}
	return c.JSON(http.StatusOK, s)
}

// Info handles GET /v1/festival.
func (h *FestivalHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, h.festival.Info())
}

// Venues handles GET /v1/festival/venues.
func (h *FestivalHandler) Venues(c echo.Context) error {
	return c.JSON(http.StatusOK, h.festival.Venues())
}

// Map handles GET /v1/festival/map.
func (h *FestivalHandler) Map(c echo.Context) error {
	return c.JSON(http.StatusOK, h.festival.Map())
}

// Membership handles GET /v1/membership/tiers.
func (h *FestivalHandler) Membership(c echo.Context) error {
	return c.JSON(http.StatusOK, h.festival.Membership())
}

// Events handles GET /v1/events?q=.
func (h *FestivalHandler) Events(c echo.Context) error {
	cards, err := h.events.Cards(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cards)
}
