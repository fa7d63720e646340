package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/laiff-festival/internal/handler"
	"github.com/iliyamo/laiff-festival/internal/middleware"
)

// RegisterMe registers the per-client preference endpoints under /v1/me.
// They require a session token.
func RegisterMe(e *echo.Echo, h *handler.MeHandler, o Options) {
	g := e.Group("/v1/me", middleware.ClientSession(o.SessionSecret), orPass(o.RateLimit))
	g.GET("/admin-mode", h.GetAdminMode)
	g.PUT("/admin-mode", h.SetAdminMode)
	g.POST("/admin-mode/toggle", h.ToggleAdminMode)
	g.GET("/settings", h.GetSettings)
	g.PUT("/settings", h.PutSettings)
}

// RegisterCheckout registers the ticket wizard.  Orders belong to the
// session client.
func RegisterCheckout(e *echo.Echo, h *handler.CheckoutHandler, o Options) {
	g := e.Group("/v1/checkout", middleware.ClientSession(o.SessionSecret), orPass(o.RateLimit))
	g.POST("", h.Start)
	g.GET("/:id", h.Get)
	g.POST("/:id/tickets", h.AdjustTickets)
	g.PUT("/:id/tickets", h.SetTickets)
	g.POST("/:id/proceed", h.Proceed)
	g.POST("/:id/back", h.Back)
	g.POST("/:id/complete", h.Complete)
	g.POST("/:id/reset", h.Reset)
}
