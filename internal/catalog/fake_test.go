package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/scenra/scenra/internal/domain"
)

var errBoom = &domain.FetchError{Op: "popular movies", Status: 500, Err: errors.New("boom")}

type listKey struct {
	kind     domain.MediaKind
	category domain.Category
}

// fakeClient serves canned listings and records every call
type fakeClient struct {
	mu       sync.Mutex
	listings map[listKey][]domain.CatalogItem
	listErr  map[listKey]error
	search   map[string][]domain.CatalogItem
	details  map[domain.ItemKey]*domain.DetailRecord
	calls    []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		listings: make(map[listKey][]domain.CatalogItem),
		listErr:  make(map[listKey]error),
		search:   make(map[string][]domain.CatalogItem),
		details:  make(map[domain.ItemKey]*domain.DetailRecord),
	}
}

func (f *fakeClient) List(ctx context.Context, kind domain.MediaKind, category domain.Category) ([]domain.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "list:"+string(kind)+":"+string(category))
	k := listKey{kind, category}
	if err := f.listErr[k]; err != nil {
		return nil, err
	}
	return f.listings[k], nil
}

func (f *fakeClient) Search(ctx context.Context, kind domain.MediaKind, query string) ([]domain.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "search:"+string(kind)+":"+query)
	items, ok := f.search[query]
	if !ok {
		return nil, &domain.FetchError{Op: "movie search", Status: 503}
	}
	return items, nil
}

func (f *fakeClient) Details(ctx context.Context, kind domain.MediaKind, id int64) (*domain.DetailRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "details:"+domain.ItemKey{Kind: kind, ID: id}.String())
	rec, ok := f.details[domain.ItemKey{Kind: kind, ID: id}]
	if !ok {
		return nil, &domain.FetchError{Op: "movie details", Status: 404}
	}
	return rec, nil
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func item(id int64, kind domain.MediaKind, title string, genres ...int) domain.CatalogItem {
	return domain.CatalogItem{
		ID:          id,
		Kind:        kind,
		Title:       title,
		VoteAverage: 7.25,
		GenreIDs:    genres,
		HasGenres:   genres != nil,
	}
}

func ids(items []domain.CatalogItem) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a []int64, b ...int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
