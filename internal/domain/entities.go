package domain

import (
	"fmt"
	"strconv"
)

// MediaKind distinguishes the two catalog domains
type MediaKind string

const (
	MediaKindMovie MediaKind = "movie"
	MediaKindTV    MediaKind = "tv"
)

// ParseMediaKind accepts the route/query spelling ("movie", "tv").
func ParseMediaKind(s string) (MediaKind, bool) {
	switch MediaKind(s) {
	case MediaKindMovie, MediaKindTV:
		return MediaKind(s), true
	}
	return "", false
}

// Label returns the display name used by the UI
func (k MediaKind) Label() string {
	if k == MediaKindTV {
		return "Series"
	}
	return "Películas"
}

// Category is a named listing bucket or the "my list" pseudo-category
type Category string

const (
	CategoryPopular  Category = "popular"
	CategoryTrending Category = "trending"
	CategoryTopRated Category = "top"
	CategoryMyList   Category = "mylist"
)

// Categories lists the explore tabs in display order
var Categories = []Category{CategoryPopular, CategoryTrending, CategoryTopRated, CategoryMyList}

// ParseCategory accepts tab keys plus a few CLI-friendly aliases.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "popular":
		return CategoryPopular, true
	case "trending":
		return CategoryTrending, true
	case "top", "top_rated", "toprated":
		return CategoryTopRated, true
	case "mylist", "my-list", "list":
		return CategoryMyList, true
	}
	return "", false
}

// Label returns the tab title
func (c Category) Label() string {
	switch c {
	case CategoryTrending:
		return "Tendencias"
	case CategoryTopRated:
		return "Mejor valoradas"
	case CategoryMyList:
		return "Mi lista"
	default:
		return "Populares"
	}
}

// ItemKey identifies an item across both media kinds.
// Movie and series ids may collide numerically.
type ItemKey struct {
	Kind MediaKind
	ID   int64
}

func (k ItemKey) String() string {
	return string(k.Kind) + ":" + strconv.FormatInt(k.ID, 10)
}

// CatalogItem is the normalized listing entry
type CatalogItem struct {
	ID          int64     `json:"id"`
	Kind        MediaKind `json:"media_type"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"poster_path,omitempty"` // empty = no poster
	VoteAverage float64   `json:"vote_average"`
	GenreIDs    []int     `json:"genre_ids,omitempty"`
	HasGenres   bool      `json:"has_genres,omitempty"` // false when the provider omitted genre_ids
}

// Key returns the (kind, id) identity of the item
func (c CatalogItem) Key() ItemKey {
	return ItemKey{Kind: c.Kind, ID: c.ID}
}

// Clone returns a copy that shares no memory with c
func (c CatalogItem) Clone() CatalogItem {
	if c.GenreIDs != nil {
		ids := make([]int, len(c.GenreIDs))
		copy(ids, c.GenreIDs)
		c.GenreIDs = ids
	}
	return c
}

// HasGenre reports whether the item is tagged with genre.
// Items without genre data match no genre.
func (c CatalogItem) HasGenre(genre int) bool {
	if !c.HasGenres {
		return false
	}
	for _, id := range c.GenreIDs {
		if id == genre {
			return true
		}
	}
	return false
}

// FormattedRating renders the vote average with one decimal
func (c CatalogItem) FormattedRating() string {
	return FormatRating(c.VoteAverage)
}

// FormatRating renders a vote average with one decimal
func FormatRating(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// Genre is a named TMDB genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is one credited actor
type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// Video is an embedded video reference (trailers, teasers, clips)
type Video struct {
	Key  string `json:"key"`
	Type string `json:"type"`
	Site string `json:"site"`
}

// Season describes one season of a series
type Season struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
	PosterPath   string `json:"poster_path,omitempty"`
	Overview     string `json:"overview"`
}

// DetailRecord is an item enriched with credits, videos and seasons
type DetailRecord struct {
	CatalogItem

	Overview     string
	ReleaseDate  string // release_date for movies, first_air_date for series
	Genres       []Genre
	Cast         []CastMember
	Videos       []Video
	Seasons      []Season // series only
	SeasonCount  int      // series only
	EpisodeCount int      // series only
}

// GenreNames returns the genre names in provider order
func (d DetailRecord) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}
	return names
}
