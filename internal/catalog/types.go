package catalog

// Movie is a catalog listing entry.  Runtime is only populated on details.
type Movie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
	Runtime      int     `json:"runtime,omitempty"`
	Popularity   float64 `json:"popularity,omitempty"`
}

// Page is one page of a listing.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Language struct {
	ISO  string `json:"iso_639_1"`
	Name string `json:"english_name"`
}

type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

type CrewMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type Review struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// MovieDetails is the details payload with the appended sub-resources.
type MovieDetails struct {
	Movie
	Tagline         string     `json:"tagline"`
	Status          string     `json:"status"`
	Budget          int64      `json:"budget"`
	Revenue         int64      `json:"revenue"`
	Genres          []Genre    `json:"genres"`
	SpokenLanguages []Language `json:"spoken_languages"`
	Credits         struct {
		Cast []CastMember `json:"cast"`
		Crew []CrewMember `json:"crew"`
	} `json:"credits"`
	Videos struct {
		Results []Video `json:"results"`
	} `json:"videos"`
	Similar         Page `json:"similar"`
	Recommendations Page `json:"recommendations"`
	Reviews         struct {
		Results []Review `json:"results"`
	} `json:"reviews"`
}

// DiscoverParams filters /discover/movie.  Zero values are omitted.
type DiscoverParams struct {
	GenreID   int
	Year      int
	SortBy    string
	MinRating float64
	Page      int
}
