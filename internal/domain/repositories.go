package domain

import (
	"context"
)

// ListingRepository provides the single-page category listings
type ListingRepository interface {
	// List returns page 1 of a (kind, category) listing in provider order.
	// CategoryMyList is not a remote listing and must not be passed.
	List(ctx context.Context, kind MediaKind, category Category) ([]CatalogItem, error)
}

// SearchRepository provides text search
type SearchRepository interface {
	// Search returns matches for a trimmed, non-empty query in provider order
	Search(ctx context.Context, kind MediaKind, query string) ([]CatalogItem, error)
}

// DetailRepository provides enriched single-item records
type DetailRepository interface {
	// Details returns base attributes plus credits and videos
	Details(ctx context.Context, kind MediaKind, id int64) (*DetailRecord, error)
}

// CatalogClient combines all provider queries
type CatalogClient interface {
	ListingRepository
	SearchRepository
	DetailRepository
}

// FavoritesStore is the persisted "my list".
// Mutations persist before they become visible to readers.
type FavoritesStore interface {
	Items() []CatalogItem
	Contains(kind MediaKind, id int64) bool
	Add(item CatalogItem) error
	Remove(kind MediaKind, id int64) error
	Toggle(item CatalogItem) (added bool, err error)
	Find(query string) []CatalogItem
}
