package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/iliyamo/laiff-festival/internal/model"
)

// Preference keys.
const (
	AdminModeKey    = "laiff_adminMode"
	UserSettingsKey = "laiff_userSettings"
)

// AdminMode reads and writes the per-client admin mode flag.  The flag is
// stored as "true" or "false"; a missing or unreadable value is false.
type AdminMode struct {
	store Store
}

func NewAdminMode(s Store) *AdminMode { return &AdminMode{store: s} }

func (a *AdminMode) Load(ctx context.Context, clientID string) (bool, error) {
	v, ok, err := a.store.Load(ctx, clientID, AdminModeKey)
	if err != nil || !ok {
		return false, err
	}
	on, err := strconv.ParseBool(v)
	if err != nil {
		return false, nil
	}
	return on, nil
}

func (a *AdminMode) Save(ctx context.Context, clientID string, on bool) error {
	return a.store.Save(ctx, clientID, AdminModeKey, strconv.FormatBool(on))
}

// Toggle flips the flag, persists it and returns the new value.
func (a *AdminMode) Toggle(ctx context.Context, clientID string) (bool, error) {
	on, err := a.Load(ctx, clientID)
	if err != nil {
		return false, err
	}
	on = !on
	if err := a.Save(ctx, clientID, on); err != nil {
		return false, err
	}
	return on, nil
}

// Settings persists model.UserSettings as JSON.
type Settings struct {
	store Store
}

func NewSettings(s Store) *Settings { return &Settings{store: s} }

// Load returns the saved settings, or the defaults when none are stored
// or the stored value no longer decodes.
func (s *Settings) Load(ctx context.Context, clientID string) (model.UserSettings, error) {
	v, ok, err := s.store.Load(ctx, clientID, UserSettingsKey)
	if err != nil {
		return model.UserSettings{}, err
	}
	if !ok {
		return model.DefaultUserSettings(), nil
	}
	var us model.UserSettings
	if err := json.Unmarshal([]byte(v), &us); err != nil {
		return model.DefaultUserSettings(), nil
	}
	return us, nil
}

// Save validates and stores us.
func (s *Settings) Save(ctx context.Context, clientID string, us model.UserSettings) (model.UserSettings, error) {
	if err := us.Validate(); err != nil {
		return model.UserSettings{}, err
	}
	b, err := json.Marshal(us)
	if err != nil {
		return model.UserSettings{}, fmt.Errorf("encode settings: %w", err)
	}
	if err := s.store.Save(ctx, clientID, UserSettingsKey, string(b)); err != nil {
		return model.UserSettings{}, err
	}
	return us, nil
}
