package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/laiff-festival/internal/handler"
	"github.com/iliyamo/laiff-festival/internal/middleware"
)

// RegisterAdmin registers the admin mode endpoints.  They need a session
// whose admin flag is on; otherwise RequireAdminMode answers 403.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, o Options) {
	g := e.Group("/v1/admin",
		middleware.ClientSession(o.SessionSecret),
		middleware.RequireAdminMode(o.AdminModes),
		orPass(o.RateLimit),
	)

	g.GET("/dashboard", h.GetDashboard)

	g.GET("/movies", h.ListMovies)
	g.GET("/movies/tmdb-search", h.SearchCatalog)
	g.POST("/movies/import", h.ImportMovie)
	g.POST("/movies", h.CreateMovie)
	g.GET("/movies/:id", h.GetMovie)
	g.PUT("/movies/:id", h.UpdateMovie)
	g.DELETE("/movies/:id", h.DeleteMovie)

	g.GET("/showtimes", h.ListShowtimes)
	g.GET("/showtimes/stats", h.ShowtimeStats)
	g.POST("/showtimes", h.CreateShowtime)
	g.GET("/showtimes/:id", h.GetShowtime)
	g.PUT("/showtimes/:id", h.UpdateShowtime)
	g.DELETE("/showtimes/:id", h.DeleteShowtime)
	g.POST("/showtimes/:id/duplicate", h.DuplicateShowtime)

	g.GET("/ticket-types", h.ListTicketTypes)
	g.POST("/ticket-types", h.CreateTicketType)
	g.GET("/ticket-types/:id", h.GetTicketType)
	g.PUT("/ticket-types/:id", h.UpdateTicketType)
	g.DELETE("/ticket-types/:id", h.DeleteTicketType)

	g.GET("/promos", h.ListPromos)
	g.POST("/promos", h.CreatePromo)
	g.POST("/promos/validate", h.ValidatePromo)
	g.GET("/promos/:id", h.GetPromo)
	g.PUT("/promos/:id", h.UpdatePromo)
	g.DELETE("/promos/:id", h.DeletePromo)

	g.GET("/events", h.ListEvents)
	g.POST("/events", h.CreateEvent)
	g.GET("/events/:id", h.GetEvent)
	g.PUT("/events/:id", h.UpdateEvent)
	g.DELETE("/events/:id", h.DeleteEvent)

	g.GET("/broadcasts", h.RecentBroadcasts)
	g.GET("/broadcasts/audiences", h.Audiences)
	g.POST("/broadcasts", h.SendBroadcast)
}
