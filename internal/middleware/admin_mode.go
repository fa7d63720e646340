package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/laiff-festival/internal/pkg/logger"
)

// AdminModeReader reports whether a client has admin mode switched on.
type AdminModeReader interface {
	Load(ctx context.Context, clientID string) (bool, error)
}

// RequireAdminMode rejects requests from clients whose admin flag is off.
// It must run after ClientSession.
func RequireAdminMode(modes AdminModeReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			on, err := modes.Load(c.Request().Context(), ClientID(c))
			if err != nil {
				logger.Error("load admin mode failed", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read admin mode"})
			}
			if !on {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "admin mode disabled"})
			}
			return next(c)
		}
	}
}
