package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/laiff-festival/internal/catalog"
	"github.com/iliyamo/laiff-festival/internal/service"
)

// FilmHandler serves the catalog-backed film pages.
type FilmHandler struct {
	films FilmReader
}

func NewFilmHandler(films FilmReader) *FilmHandler { return &FilmHandler{films: films} }

// filmQuery reads the listing parameters shared by List and Search.
func filmQuery(c echo.Context) (service.FilmQuery, error) {
	q := service.FilmQuery{
		Category: c.QueryParam("category"),
		SortBy:   c.QueryParam("sort"),
		Window:   c.QueryParam("window"),
	}
	var ok bool
	if q.GenreID, ok = queryInt(c, "genre", 0); !ok {
		return q, errors.New("genre must be a number")
	}
	if q.Year, ok = queryInt(c, "year", 0); !ok {
		return q, errors.New("year must be a number")
	}
	if q.Page, ok = queryInt(c, "page", 1); !ok {
		return q, errors.New("page must be a number")
	}
	if q.MinRating, ok = queryFloat(c, "min_rating"); !ok {
		return q, errors.New("min_rating must be a number")
	}
	return q, nil
}

// List handles GET /v1/films.
func (h *FilmHandler) List(c echo.Context) error {
	q, err := filmQuery(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	page, err := h.films.List(c.Request().Context(), q)
	if err != nil {
		return fail(c, err)
	}
	if !page.CatalogAvailable {
		noStore(c)
	}
	return c.JSON(http.StatusOK, page)
}

// Search handles GET /v1/films/search.  A blank q returns the category
// listing in the same shape.
func (h *FilmHandler) Search(c echo.Context) error {
	q, err := filmQuery(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	page, err := h.films.Search(c.Request().Context(), c.QueryParam("q"), q)
	if err != nil {
		return fail(c, err)
	}
	if !page.CatalogAvailable {
		noStore(c)
	}
	return c.JSON(http.StatusOK, page)
}

// Details handles GET /v1/films/:id.
func (h *FilmHandler) Details(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest(c, "invalid id")
	}
	d, err := h.films.Details(c.Request().Context(), id)
	if err != nil {
		var apiErr *catalog.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "film not found"})
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// Genres handles GET /v1/genres.
func (h *FilmHandler) Genres(c echo.Context) error {
	return c.JSON(http.StatusOK, h.films.Genres())
}
