package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	center NotificationCenter
}

func NewNotificationHandler(center NotificationCenter) *NotificationHandler {
	return &NotificationHandler{center: center}
}

// List handles GET /v1/notifications.
func (h *NotificationHandler) List(c echo.Context) error {
	list, err := h.center.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// MarkRead handles POST /v1/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.center.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead handles POST /v1/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	n, err := h.center.MarkAllRead(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": n})
}
