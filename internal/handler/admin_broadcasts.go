package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/service"
)

// Audiences handles GET /v1/admin/broadcasts/audiences.
func (h *AdminHandler) Audiences(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Broadcasts.Audiences())
}

// SendBroadcast handles POST /v1/admin/broadcasts.
func (h *AdminHandler) SendBroadcast(c echo.Context) error {
	var body struct {
		Title    string         `json:"title" validate:"required"`
		Message  string         `json:"message" validate:"required"`
		Audience string         `json:"audience" validate:"required"`
		Delivery model.Delivery `json:"delivery" validate:"required,oneof=push email both"`
	}
	if err := bindValid(c, &body); err != nil {
		return err
	}
	b, err := h.Broadcasts.Send(c.Request().Context(), service.BroadcastInput{
		Title:    body.Title,
		Message:  body.Message,
		Audience: body.Audience,
		Delivery: body.Delivery,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// RecentBroadcasts handles GET /v1/admin/broadcasts.
func (h *AdminHandler) RecentBroadcasts(c echo.Context) error {
	items, err := h.Broadcasts.Recent(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetDashboard handles GET /v1/admin/dashboard.
func (h *AdminHandler) GetDashboard(c echo.Context) error {
	d, err := h.Dashboard.Load(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, d)
}
