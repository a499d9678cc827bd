package tmdb

import "strings"

// Poster and profile sizes served by the image CDN
const (
	PosterSize  = "w500"
	ProfileSize = "w185"
)

// ImageURL joins the image CDN base, a size and a relative path.
// An empty path yields "" so callers can render a placeholder.
func ImageURL(base, size, path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + size + "/" + strings.TrimLeft(path, "/")
}
