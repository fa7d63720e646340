package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/laiff-festival/internal/model"
)

func (h *AdminHandler) ListTicketTypes(c echo.Context) error {
	items, err := h.Tickets.ListTypes(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AdminHandler) GetTicketType(c echo.Context) error {
	t, err := h.Tickets.GetType(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// CreateTicketType handles POST /v1/admin/ticket-types.  Any
// final_price_cents in the body is ignored and recomputed.
func (h *AdminHandler) CreateTicketType(c echo.Context) error {
	var t model.TicketType
	if err := c.Bind(&t); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.Tickets.CreateType(c.Request().Context(), &t)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminHandler) UpdateTicketType(c echo.Context) error {
	var t model.TicketType
	if err := c.Bind(&t); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.Tickets.UpdateType(c.Request().Context(), c.Param("id"), &t)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) DeleteTicketType(c echo.Context) error {
	if err := h.Tickets.DeleteType(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPromos handles GET /v1/admin/promos.  Each code carries its
// effective status for today.
func (h *AdminHandler) ListPromos(c echo.Context) error {
	items, err := h.Tickets.ListPromos(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AdminHandler) GetPromo(c echo.Context) error {
	p, err := h.Tickets.GetPromo(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// CreatePromo handles POST /v1/admin/promos.  A duplicate code is 409.
func (h *AdminHandler) CreatePromo(c echo.Context) error {
	var p model.PromoCode
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.Tickets.CreatePromo(c.Request().Context(), &p)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminHandler) UpdatePromo(c echo.Context) error {
	var p model.PromoCode
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid request body")
	}
	out, err := h.Tickets.UpdatePromo(c.Request().Context(), c.Param("id"), &p)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) DeletePromo(c echo.Context) error {
	if err := h.Tickets.DeletePromo(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ValidatePromo handles POST /v1/admin/promos/validate.  An unusable code
// is a 200 with valid=false; only an unknown code is 404.
func (h *AdminHandler) ValidatePromo(c echo.Context) error {
	var body struct {
		Code          string `json:"code" validate:"required"`
		SubtotalCents int    `json:"subtotal_cents" validate:"gte=0"`
	}
	if err := bindValid(c, &body); err != nil {
		return err
	}
	check, err := h.Tickets.ValidatePromo(c.Request().Context(), body.Code, body.SubtotalCents)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, check)
}
