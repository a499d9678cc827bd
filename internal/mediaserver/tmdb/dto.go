package tmdb

// ListResponse is the paginated envelope shared by listing and search endpoints.
// Results is a pointer so a missing "results" key can be told apart from an empty page.
type ListResponse struct {
	Page         int     `json:"page"`
	Results      *[]Item `json:"results"`
	TotalPages   int     `json:"total_pages,omitempty"`
	TotalResults int     `json:"total_results,omitempty"`
}

// Item is a listing entry. Movies carry "title", series carry "name".
type Item struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	PosterPath   *string `json:"poster_path"`
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     *[]int  `json:"genre_ids"`
	MediaType    string  `json:"media_type,omitempty"` // trending endpoints only
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
}

// Details is the movie or series payload with credits and videos appended
type Details struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title,omitempty"`
	Name             string   `json:"name,omitempty"`
	Overview         string   `json:"overview"`
	PosterPath       *string  `json:"poster_path"`
	ReleaseDate      string   `json:"release_date,omitempty"`
	FirstAirDate     string   `json:"first_air_date,omitempty"`
	VoteAverage      float64  `json:"vote_average"`
	Genres           []Genre  `json:"genres"`
	NumberOfSeasons  int      `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int      `json:"number_of_episodes,omitempty"`
	Seasons          []Season `json:"seasons,omitempty"`
	Credits          *Credits `json:"credits,omitempty"`
	Videos           *Videos  `json:"videos,omitempty"`
}

// Genre is a named genre on a details payload
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Season is a series season summary
type Season struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	EpisodeCount int     `json:"episode_count"`
	PosterPath   *string `json:"poster_path"`
	Overview     string  `json:"overview"`
	SeasonNumber int     `json:"season_number"`
}

// Credits holds the appended credits block
type Credits struct {
	Cast []Cast `json:"cast"`
}

// Cast is a credited actor
type Cast struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character,omitempty"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// Videos holds the appended videos block
type Videos struct {
	Results []Video `json:"results"`
}

// Video is a hosted video reference
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
	Type string `json:"type"` // "Trailer", "Teaser", "Clip", ...
	Site string `json:"site"` // "YouTube", "Vimeo"
}

// ErrorResponse is the body TMDB returns with non-2xx statuses
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
