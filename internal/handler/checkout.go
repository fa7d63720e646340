package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/laiff-festival/internal/middleware"
	"github.com/iliyamo/laiff-festival/internal/model"
	"github.com/iliyamo/laiff-festival/internal/service"
)

// CheckoutHandler drives the ticket wizard.  Every order is scoped to the
// session client; another client's order id answers 404.
type CheckoutHandler struct {
	flow CheckoutFlow
}

func NewCheckoutHandler(flow CheckoutFlow) *CheckoutHandler { return &CheckoutHandler{flow: flow} }

type startRequest struct {
	MovieID    int64  `json:"movie_id" validate:"required,gt=0"`
	MovieTitle string `json:"movie_title" validate:"required"`
	PosterPath string `json:"poster_path"`
	Day        int    `json:"day" validate:"gte=0"`
	Time       string `json:"time" validate:"required"`
	Venue      string `json:"venue"`
}

// adjustRequest moves one count by delta.  A zero delta is a no-op.
type adjustRequest struct {
	Kind  model.TicketKind `json:"kind" validate:"required"`
	Delta int              `json:"delta"`
}

type setTicketsRequest struct {
	Counts map[model.TicketKind]int `json:"counts" validate:"required"`
}

type completeRequest struct {
	Customer  model.Customer `json:"customer"`
	PromoCode string         `json:"promo_code"`
}

// Start handles POST /v1/checkout.
func (h *CheckoutHandler) Start(c echo.Context) error {
	var body startRequest
	if err := bindValid(c, &body); err != nil {
		return err
	}
	v, err := h.flow.Start(c.Request().Context(), middleware.ClientID(c), service.StartInput{
		MovieID:    body.MovieID,
		MovieTitle: body.MovieTitle,
		PosterPath: body.PosterPath,
		Day:        body.Day,
		Time:       body.Time,
		VenueID:    body.Venue,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

// Get handles GET /v1/checkout/:id.
func (h *CheckoutHandler) Get(c echo.Context) error {
	v, err := h.flow.Get(c.Request().Context(), middleware.ClientID(c), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// AdjustTickets handles POST /v1/checkout/:id/tickets {kind, delta}.
func (h *CheckoutHandler) AdjustTickets(c echo.Context) error {
	var body adjustRequest
	if err := bindValid(c, &body); err != nil {
		return err
	}
	v, err := h.flow.AdjustTickets(c.Request().Context(), middleware.ClientID(c), c.Param("id"), body.Kind, body.Delta)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// SetTickets handles PUT /v1/checkout/:id/tickets {counts}.
func (h *CheckoutHandler) SetTickets(c echo.Context) error {
	var body setTicketsRequest
	if err := bindValid(c, &body); err != nil {
		return err
	}
	v, err := h.flow.SetTickets(c.Request().Context(), middleware.ClientID(c), c.Param("id"), body.Counts)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// Proceed handles POST /v1/checkout/:id/proceed.
func (h *CheckoutHandler) Proceed(c echo.Context) error {
	return h.step(c, h.flow.Proceed)
}

// Back handles POST /v1/checkout/:id/back.
func (h *CheckoutHandler) Back(c echo.Context) error {
	return h.step(c, h.flow.Back)
}

// Reset handles POST /v1/checkout/:id/reset.
func (h *CheckoutHandler) Reset(c echo.Context) error {
	return h.step(c, h.flow.Reset)
}

// Complete handles POST /v1/checkout/:id/complete.
func (h *CheckoutHandler) Complete(c echo.Context) error {
	var body completeRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	v, err := h.flow.Complete(c.Request().Context(), middleware.ClientID(c), c.Param("id"), service.CompleteInput{
		Customer:  body.Customer,
		PromoCode: body.PromoCode,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

type stepFunc func(ctx context.Context, clientID, orderID string) (*service.OrderView, error)

func (h *CheckoutHandler) step(c echo.Context, fn stepFunc) error {
	v, err := fn(c.Request().Context(), middleware.ClientID(c), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}
