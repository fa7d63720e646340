package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/laiff-festival/internal/model"
)

func (h *AdminHandler) ListEvents(c echo.Context) error {
	items, err := h.Events.List(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AdminHandler) GetEvent(c echo.Context) error {
	e, err := h.Events.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *AdminHandler) CreateEvent(c echo.Context) error {
	var e model.Event
	if err := c.Bind(&e); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.Events.Create(c.Request().Context(), &e)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminHandler) UpdateEvent(c echo.Context) error {
	var e model.Event
	if err := c.Bind(&e); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.Events.Update(c.Request().Context(), c.Param("id"), &e)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) DeleteEvent(c echo.Context) error {
	if err := h.Events.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
