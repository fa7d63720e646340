package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler answers load balancer checks.
type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler { return &HealthHandler{db: db} }

// Check handles GET /healthz.  It reports 503 when the store does not
// answer a ping within two seconds.
func (h *HealthHandler) Check(c echo.Context) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable", "error": "database unreachable"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
