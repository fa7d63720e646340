package model

import (
	"fmt"
	"strings"
)

type MembershipLevel string

const (
	MembershipNone      MembershipLevel = "none"
	MembershipFilmClub  MembershipLevel = "film-club"
	MembershipSupporter MembershipLevel = "supporter"
	MembershipChampion  MembershipLevel = "champion"
)

var membershipBadges = map[MembershipLevel]string{
	MembershipNone:      "Guest",
	MembershipFilmClub:  "Film Club Member",
	MembershipSupporter: "Supporter",
	MembershipChampion:  "Champion",
}

// Badge returns the display label for a membership level.
func (l MembershipLevel) Badge() string { return membershipBadges[l] }

type NotificationPrefs struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	SMS   bool `json:"sms"`
}

// UserSettings are the per-client profile preferences.
type UserSettings struct {
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	MembershipLevel MembershipLevel   `json:"membership_level"`
	Notifications   NotificationPrefs `json:"notifications"`
}

// DefaultUserSettings is what a new client starts with.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		Name:            "Film Enthusiast",
		Email:           "cinephile@example.com",
		MembershipLevel: MembershipFilmClub,
		Notifications:   NotificationPrefs{Email: true, Push: true, SMS: false},
	}
}

func (s *UserSettings) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	if s.Name == "" || s.Email == "" {
		return fmt.Errorf("%w: name and email are required", ErrInvalid)
	}
	if _, ok := membershipBadges[s.MembershipLevel]; !ok {
		return fmt.Errorf("%w: unknown membership level %q", ErrInvalid, s.MembershipLevel)
	}
	return nil
}
