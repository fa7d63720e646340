package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageBase(t *testing.T) {
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/p.jpg", DefaultImageBase.Poster("/p.jpg"))
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/b.jpg", DefaultImageBase.Backdrop("/b.jpg"))
	assert.Equal(t, "https://image.tmdb.org/t/p/original/x.jpg", DefaultImageBase.URL("/x.jpg", "original"))
	assert.Equal(t, "", DefaultImageBase.Poster(""))

	c := New("", "k", WithImageBase("https://cdn.test/img/"))
	assert.Equal(t, "https://cdn.test/img/w500/p.jpg", c.Images().Poster("/p.jpg"))
}

func TestFormatRuntime(t *testing.T) {
	tests := map[int]string{0: "0m", 45: "45m", 60: "1h 0m", 95: "1h 35m", 125: "2h 5m"}
	for in, want := range tests {
		assert.Equal(t, want, FormatRuntime(in))
	}
}

func TestTrailerURL_NoneFound(t *testing.T) {
	assert.Equal(t, "", TrailerURL(nil))
	assert.Equal(t, "", TrailerURL([]Video{{Key: "v", Site: "Vimeo", Type: "Trailer"}}))
}

func TestDirector_Unknown(t *testing.T) {
	assert.Equal(t, "Unknown", Director([]CrewMember{{Name: "A", Job: "Editor"}}))
}

func TestGenres(t *testing.T) {
	n, ok := GenreName(878)
	assert.True(t, ok)
	assert.Equal(t, "Sci-Fi", n)

	assert.Equal(t, []string{"Horror", "Thriller"}, GenreNames([]int{27, 1, 53}))

	all := Genres()
	assert.Len(t, all, 19)
	assert.Equal(t, "Action", all[0].Name)
}

func TestReleaseYear(t *testing.T) {
	assert.Equal(t, 2024, ReleaseYear("2024-03-01"))
	assert.Equal(t, 0, ReleaseYear(""))
	assert.Equal(t, 0, ReleaseYear("TBA-"))
}
