package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// MetricsBasicAuth guards /metrics with basic auth when both user and
// password are configured.  Otherwise it is a passthrough.
func MetricsBasicAuth(user, password string) echo.MiddlewareFunc {
	if user == "" || password == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return middleware.BasicAuth(func(u, p string, _ echo.Context) (bool, error) {
		userOK := subtle.ConstantTimeCompare([]byte(u), []byte(user)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(p), []byte(password)) == 1
		return userOK && passOK, nil
	})
}
