package tmdb

import "github.com/scenra/scenra/internal/domain"

// ListingLabel names a listing operation for errors, e.g. "popular movies"
func ListingLabel(kind domain.MediaKind, category domain.Category) string {
	var prefix string
	switch category {
	case domain.CategoryPopular:
		prefix = "popular"
	case domain.CategoryTopRated:
		prefix = "top rated"
	case domain.CategoryTrending:
		prefix = "trending"
	default:
		prefix = string(category)
	}
	return prefix + " " + kindNoun(kind)
}

// SearchLabel names a search operation, e.g. "movie search"
func SearchLabel(kind domain.MediaKind) string {
	if kind == domain.MediaKindTV {
		return "series search"
	}
	return "movie search"
}

// DetailsLabel names a details operation, e.g. "series details"
func DetailsLabel(kind domain.MediaKind) string {
	if kind == domain.MediaKindTV {
		return "series details"
	}
	return "movie details"
}

func kindNoun(kind domain.MediaKind) string {
	if kind == domain.MediaKindTV {
		return "series"
	}
	return "movies"
}
