package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/iliyamo/laiff-festival/internal/config"
)

// FestivalInfo is the public festival summary.
type FestivalInfo struct {
	*config.Festival
	DaysUntil int `json:"days_until"`
}

// VenueInfo is a venue with its directions link.
type VenueInfo struct {
	config.Venue
	DirectionsURL string `json:"directions_url"`
}

// Marker pins a venue on the map.
type Marker struct {
	VenueID string  `json:"venue_id"`
	Name    string  `json:"name"`
	Lng     float64 `json:"lng"`
	Lat     float64 `json:"lat"`
}

// VenueMap is the map widget payload.  Provider "mapbox" carries the tile
// style and a static image URL; provider "static" carries the fallback
// image and a place link.
type VenueMap struct {
	Provider       string    `json:"provider"`
	Style          string    `json:"style,omitempty"`
	Center         []float64 `json:"center"`
	Zoom           int       `json:"zoom"`
	Markers        []Marker  `json:"markers"`
	StaticImageURL string    `json:"static_image_url,omitempty"`
	FallbackImage  string    `json:"fallback_image,omitempty"`
	PlaceURL       string    `json:"place_url"`
}

// FestivalService serves the read-only festival pages from config.
type FestivalService struct {
	festival    *config.Festival
	mapboxToken string
	clock       Clock
}

func NewFestivalService(f *config.Festival, mapboxToken string, clock Clock) *FestivalService {
	return &FestivalService{festival: f, mapboxToken: mapboxToken, clock: clock}
}

func (s *FestivalService) Info() FestivalInfo {
	return FestivalInfo{Festival: s.festival, DaysUntil: s.festival.DaysUntil(s.clock.now())}
}

func (s *FestivalService) Venues() []VenueInfo {
	out := make([]VenueInfo, 0, len(s.festival.Venues))
	for _, v := range s.festival.Venues {
		out = append(out, VenueInfo{Venue: v, DirectionsURL: DirectionsURL(v.Coordinates)})
	}
	return out
}

func (s *FestivalService) Membership() []config.MembershipTier { return s.festival.Membership }

// Map builds the venue map.  Without a tile token it degrades to the
// static fallback image.
func (s *FestivalService) Map() VenueMap {
	mc := s.festival.Map
	m := VenueMap{
		Center:   []float64{mc.Center.Lng, mc.Center.Lat},
		Zoom:     mc.Zoom,
		Markers:  make([]Marker, 0, len(s.festival.Venues)),
		PlaceURL: PlaceURL(mc.Center),
	}
	for _, v := range s.festival.Venues {
		m.Markers = append(m.Markers, Marker{VenueID: v.ID, Name: v.Name, Lng: v.Coordinates.Lng, Lat: v.Coordinates.Lat})
	}
	if s.mapboxToken == "" {
		m.Provider = "static"
		m.FallbackImage = mc.FallbackImage
		return m
	}
	m.Provider = "mapbox"
	m.Style = mc.Style
	m.StaticImageURL = staticImageURL(mc, m.Markers, s.mapboxToken)
	return m
}

// DirectionsURL links to turn-by-turn directions to a coordinate.
func DirectionsURL(c config.LngLat) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%g,%g", c.Lat, c.Lng)
}

// PlaceURL links to a coordinate on Google Maps.
func PlaceURL(c config.LngLat) string {
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%g,%g", c.Lat, c.Lng)
}

// staticImageURL composes a Mapbox Static Images API URL:
// /styles/v1/{owner}/{style}/static/{overlay}/{lng},{lat},{zoom}/{w}x{h}
func staticImageURL(mc config.MapConfig, markers []Marker, token string) string {
	style := strings.TrimPrefix(mc.Style, "mapbox://styles/")
	pins := make([]string, 0, len(markers))
	for _, mk := range markers {
		pins = append(pins, fmt.Sprintf("pin-s+ff6b6b(%g,%g)", mk.Lng, mk.Lat))
	}
	overlay := strings.Join(pins, ",")
	if overlay != "" {
		overlay += "/"
	}
	return fmt.Sprintf("https://api.mapbox.com/styles/v1/%s/static/%s%g,%g,%d/800x400@2x?access_token=%s",
		style, overlay, mc.Center.Lng, mc.Center.Lat, mc.Zoom, url.QueryEscape(token))
}

// scheduleDates returns n consecutive days starting today in loc.
func scheduleDates(now time.Time, loc *time.Location, n int) []time.Time {
	y, m, d := now.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}
