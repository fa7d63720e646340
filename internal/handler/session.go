package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/laiff-festival/internal/utils"
)

// SessionHandler issues anonymous client sessions.  The client id scopes
// the admin flag, settings and checkout orders.
type SessionHandler struct {
	secret string
	ttl    time.Duration
}

func NewSessionHandler(secret string, ttl time.Duration) *SessionHandler {
	return &SessionHandler{secret: secret, ttl: ttl}
}

// Create handles POST /v1/sessions.
func (h *SessionHandler) Create(c echo.Context) error {
	tok, err := utils.NewSessionToken(h.secret, h.ttl)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"token":      tok.Token,
		"token_type": "Bearer",
		"client_id":  tok.ClientID,
		"expires_at": tok.Exp.Format(time.RFC3339),
	})
}
