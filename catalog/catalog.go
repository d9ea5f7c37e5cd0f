// Package catalog talks to the remote movie catalog (TMDB).
package catalog

const (
	NowPlaying = "now_playing"
	Upcoming   = "upcoming"
)

type Item struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
	GenreIds    []int   `json:"genre_ids"`
}

type Page struct {
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Results    []Item `json:"results"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Detail struct {
	ID       int64   `json:"id"`
	Overview string  `json:"overview"`
	Runtime  int     `json:"runtime"`
	Genres   []Genre `json:"genres"`
}
