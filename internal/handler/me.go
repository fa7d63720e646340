package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/laiff-festival/internal/middleware"
	"github.com/iliyamo/laiff-festival/internal/model"
)

// NavItem is one entry of the bottom navigation bar.
type NavItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

var (
	consumerNav = []NavItem{
		{Path: "/", Label: "Home"},
		{Path: "/films", Label: "Films"},
		{Path: "/schedule", Label: "Schedule"},
		{Path: "/events", Label: "Events"},
	}
	adminNav = []NavItem{
		{Path: "/admin", Label: "Dashboard"},
		{Path: "/admin/movies", Label: "Movies"},
		{Path: "/admin/showtimes", Label: "Showtimes"},
		{Path: "/admin/tickets", Label: "Tickets"},
		{Path: "/admin/events", Label: "Events"},
		{Path: "/admin/broadcast", Label: "Broadcast"},
	}
)

// AdminModeResponse tells the client which layout to render.
type AdminModeResponse struct {
	AdminMode bool      `json:"admin_mode"`
	Layout    string    `json:"layout"`
	Nav       []NavItem `json:"nav"`
}

func adminModeResponse(on bool) AdminModeResponse {
	if on {
		return AdminModeResponse{AdminMode: true, Layout: "admin", Nav: adminNav}
	}
	return AdminModeResponse{AdminMode: false, Layout: "consumer", Nav: consumerNav}
}

// SettingsResponse adds the badge label to the stored settings.
type SettingsResponse struct {
	model.UserSettings
	Badge string `json:"badge"`
}

// MeHandler serves the per-client preferences under /v1/me.
type MeHandler struct {
	modes    AdminModeStore
	settings SettingsStore
}

func NewMeHandler(modes AdminModeStore, settings SettingsStore) *MeHandler {
	return &MeHandler{modes: modes, settings: settings}
}

// GetAdminMode handles GET /v1/me/admin-mode.
func (h *MeHandler) GetAdminMode(c echo.Context) error {
	on, err := h.modes.Load(c.Request().Context(), middleware.ClientID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, adminModeResponse(on))
}

// SetAdminMode handles PUT /v1/me/admin-mode.
func (h *MeHandler) SetAdminMode(c echo.Context) error {
	var body struct {
		Enabled *bool `json:"enabled" validate:"required"`
	}
	if err := bindValid(c, &body); err != nil {
		return err
	}
	if err := h.modes.Save(c.Request().Context(), middleware.ClientID(c), *body.Enabled); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, adminModeResponse(*body.Enabled))
}

// ToggleAdminMode handles POST /v1/me/admin-mode/toggle.
func (h *MeHandler) ToggleAdminMode(c echo.Context) error {
	on, err := h.modes.Toggle(c.Request().Context(), middleware.ClientID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, adminModeResponse(on))
}

// GetSettings handles GET /v1/me/settings.
func (h *MeHandler) GetSettings(c echo.Context) error {
	us, err := h.settings.Load(c.Request().Context(), middleware.ClientID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, SettingsResponse{UserSettings: us, Badge: us.MembershipLevel.Badge()})
}

// PutSettings handles PUT /v1/me/settings.  Validation of the level and
// required fields happens in the model.
func (h *MeHandler) PutSettings(c echo.Context) error {
	var us model.UserSettings
	if err := c.Bind(&us); err != nil {
		return badRequest(c, "invalid request body")
	}
	saved, err := h.settings.Save(c.Request().Context(), middleware.ClientID(c), us)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, SettingsResponse{UserSettings: saved, Badge: saved.MembershipLevel.Badge()})
}
