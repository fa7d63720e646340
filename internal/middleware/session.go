package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/laiff-festival/internal/utils"
)

// ContextClientID is the echo context key holding the session client id.
const ContextClientID = "client_id"

// ClientSession validates the Bearer session token and stores its client
// id in the context.  Handlers read it with ClientID.
func ClientSession(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			clientID, err := utils.ParseSessionToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
			}
			c.Set(ContextClientID, clientID)
			return next(c)
		}
	}
}

// OptionalClientSession is ClientSession for public routes: a valid token
// sets the client id, anything else is ignored.
func OptionalClientSession(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if raw, ok := strings.CutPrefix(auth, "Bearer "); ok {
				if id, err := utils.ParseSessionToken(secret, raw); err == nil {
					c.Set(ContextClientID, id)
				}
			}
			return next(c)
		}
	}
}

// ClientID returns the session client id, or "" when none was set.
func ClientID(c echo.Context) string {
	if s, ok := c.Get(ContextClientID).(string); ok {
		return s
	}
	return ""
}

// rateKeyClient is the client part of rate limit keys.
func rateKeyClient(c echo.Context) string {
	if id := ClientID(c); id != "" {
		return id
	}
	return "anon"
}
