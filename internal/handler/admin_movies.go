package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/repository"
)

// AdminHandler bundles the admin mode services.  All of its routes sit
// behind ClientSession and RequireAdminMode.
type AdminHandler struct {
	Movies     MovieManager
	Showtimes  ShowtimeManager
	Tickets    TicketManager
	Events     EventManager
	Broadcasts Broadcaster
	Dashboard  DashboardLoader
}

// ListMovies handles GET /v1/admin/movies?q=.
func (h *AdminHandler) ListMovies(c echo.Context) error {
	items, err := h.Movies.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetMovie handles GET /v1/admin/movies/:id.
func (h *AdminHandler) GetMovie(c echo.Context) error {
	m, err := h.Movies.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// CreateMovie handles POST /v1/admin/movies.
func (h *AdminHandler) CreateMovie(c echo.Context) error {
	var m model.FestivalMovie
	if err := c.Bind(&m); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.Movies.Create(c.Request().Context(), &m)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// UpdateMovie handles PUT /v1/admin/movies/:id.
func (h *AdminHandler) UpdateMovie(c echo.Context) error {
	var m model.FestivalMovie
	if err := c.Bind(&m); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.Movies.Update(c.Request().Context(), c.Param("id"), &m)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteMovie handles DELETE /v1/admin/movies/:id.  Showtimes of the
// movie are left in place.
func (h *AdminHandler) DeleteMovie(c echo.Context) error {
	if err := h.Movies.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SearchCatalog handles GET /v1/admin/movies/tmdb-search?q=.
func (h *AdminHandler) SearchCatalog(c echo.Context) error {
	cards, err := h.Movies.SearchCatalog(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cards)
}

// ImportMovie handles POST /v1/admin/movies/import {tmdb_id}.
func (h *AdminHandler) ImportMovie(c echo.Context) error {
	var body struct {
		TMDBID int64 `json:"tmdb_id" validate:"required,gt=0"`
	}
	if err := bindValid(c, &body); err != nil {
		return err
	}
	m, err := h.Movies.Import(c.Request().Context(), body.TMDBID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// ListShowtimes handles GET /v1/admin/showtimes?date=&venue=.
func (h *AdminHandler) ListShowtimes(c echo.Context) error {
	items, err := h.Showtimes.List(c.Request().Context(), repository.ShowtimeFilter{
		Date:  c.QueryParam("date"),
		Venue: c.QueryParam("venue"),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AdminHandler) GetShowtime(c echo.Context) error {
	st, err := h.Showtimes.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *AdminHandler) CreateShowtime(c echo.Context) error {
	var st model.Showtime
	if err := c.Bind(&st); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.Showtimes.Create(c.Request().Context(), &st)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminHandler) UpdateShowtime(c echo.Context) error {
	var st model.Showtime
	if err := c.Bind(&st); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.Showtimes.Update(c.Request().Context(), c.Param("id"), &st)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) DeleteShowtime(c echo.Context) error {
	if err := h.Showtimes.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DuplicateShowtime handles POST /v1/admin/showtimes/:id/duplicate.
func (h *AdminHandler) DuplicateShowtime(c echo.Context) error {
	st, err := h.Showtimes.Duplicate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, st)
}

// ShowtimeStats handles GET /v1/admin/showtimes/stats.
func (h *AdminHandler) ShowtimeStats(c echo.Context) error {
	stats, err := h.Showtimes.Stats(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
