package catalog

import (
	"fmt"
	"sort"
	"strconv"
)

// Image sizes used by the consumer pages.
const (
	PosterSize   = "w500"
	BackdropSize = "w1280"
	ProfileSize  = "w185"
)

// DefaultImageBase is the catalog image CDN.
const DefaultImageBase ImageBase = "https://image.tmdb.org/t/p"

// ImageBase composes image URLs as {base}/{size}{path}.
type ImageBase string

// URL returns the sized image URL, or "" when the record has no image.
func (b ImageBase) URL(path, size string) string {
	if path == "" {
		return ""
	}
	return string(b) + "/" + size + path
}

func (b ImageBase) Poster(path string) string   { return b.URL(path, PosterSize) }
func (b ImageBase) Backdrop(path string) string { return b.URL(path, BackdropSize) }
func (b ImageBase) Profile(path string) string  { return b.URL(path, ProfileSize) }

// FormatRuntime renders minutes as "2h 5m", or "45m" under an hour.
func FormatRuntime(minutes int) string {
	h, m := minutes/60, minutes%60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// TrailerURL returns the embed URL of the first YouTube trailer, or "".
func TrailerURL(videos []Video) string {
	for _, v := range videos {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return "https://www.youtube.com/embed/" + v.Key
		}
	}
	return ""
}

// Director returns the first crew member credited as Director.
func Director(crew []CrewMember) string {
	for _, c := range crew {
		if c.Job == "Director" {
			return c.Name
		}
	}
	return "Unknown"
}

// ReleaseYear parses the year from a YYYY-MM-DD release date.  It returns
// 0 when the date is missing or malformed.
func ReleaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}

var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Sci-Fi",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// GenreName maps a catalog genre id to its label.
func GenreName(id int) (string, bool) {
	n, ok := genreNames[id]
	return n, ok
}

// GenreNames maps ids to labels, skipping unknown ids.
func GenreNames(ids []int) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := genreNames[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Genres lists the genre table sorted by name.
func Genres() []Genre {
	out := make([]Genre, 0, len(genreNames))
	for id, n := range genreNames {
		out = append(out, Genre{ID: id, Name: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
