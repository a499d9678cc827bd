// Package tmdb is the read-only TMDB v3 client behind the catalog views.
//
// It issues the three listing queries (popular, top rated, weekly trending),
// text search and details-with-credits-and-videos for both movies and series,
// always with the configured API key and locale and always for page 1. Raw
// payloads are normalized by the Map/Normalize functions into the domain shapes,
// so series "name" and movie "title" both surface as CatalogItem.Title.
//
// Every failure is a *domain.FetchError labeled with the operation name. The
// client never retries and never caches; callers decide what to do with errors.
package tmdb
