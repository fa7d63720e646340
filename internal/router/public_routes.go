package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/laiff-festival/internal/middleware"
)

// RegisterPublic registers the consumer endpoints that need no session.
// A valid token is still read so rate limit keys can use the client id.
// Only the catalog-backed pages go through the response cache.
func RegisterPublic(e *echo.Echo, h Handlers, o Options) {
	g := e.Group("/v1", middleware.OptionalClientSession(o.SessionSecret), orPass(o.RateLimit))

	g.POST("/sessions", h.Session.Create)

	cached := g.Group("", orPass(o.Cache))
	cached.GET("/films", h.Films.List)
	cached.GET("/films/search", h.Films.Search)
	cached.GET("/films/:id", h.Films.Details)
	cached.GET("/genres", h.Films.Genres)
	cached.GET("/home", h.Festival.Home)
	cached.GET("/schedule", h.Festival.Schedule)

	g.GET("/festival", h.Festival.Info)
	g.GET("/festival/venues", h.Festival.Venues)
	g.GET("/festival/map", h.Festival.Map)
	g.GET("/membership/tiers", h.Festival.Membership)
	g.GET("/events", h.Festival.Events)

	g.GET("/notifications", h.Notifications.List)
	g.POST("/notifications/read-all", h.Notifications.MarkAllRead)
	g.POST("/notifications/:id/read", h.Notifications.MarkRead)
}
