package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/scenra/scenra/internal/domain"
)

// SearchErrorText is shown when a search cannot be completed
const SearchErrorText = "Error en la búsqueda"

// SearchRequest tags a search with its trimmed query and media kind
type SearchRequest struct {
	Query string
	Kind  domain.MediaKind
}

// SearchResult is the outcome of a search
type SearchResult struct {
	Request SearchRequest
	Items   []domain.CatalogItem
	Err     error
}

// Search runs text queries and keeps only the answer to the latest one
type Search struct {
	client    domain.SearchRepository
	favorites domain.FavoritesStore
	logger    *slog.Logger

	current SearchRequest
	loading bool
	results []domain.CatalogItem
	err     string
}

// NewSearch creates a search view model
func NewSearch(client domain.SearchRepository, favorites domain.FavoritesStore, logger *slog.Logger) *Search {
	if logger == nil {
		logger = slog.Default()
	}
	return &Search{client: client, favorites: favorites, logger: logger}
}

// Submit starts a search. A blank query clears nothing and fetches nothing.
func (s *Search) Submit(query string, kind domain.MediaKind) (SearchRequest, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchRequest{}, false
	}
	if kind == "" {
		kind = domain.MediaKindMovie
	}

	req := SearchRequest{Query: query, Kind: kind}
	s.current = req
	s.loading = true
	s.err = ""
	return req, true
}

// Fetch runs the query for req. It touches no view-model state.
func (s *Search) Fetch(ctx context.Context, req SearchRequest) SearchResult {
	items, err := s.client.Search(ctx, req.Kind, req.Query)
	if err != nil {
		s.logger.Error("search failed", "query", req.Query, "kind", req.Kind, "error", err)
	}
	return SearchResult{Request: req, Items: items, Err: err}
}

// Apply installs res when it answers the latest submitted query
func (s *Search) Apply(res SearchResult) bool {
	if res.Request != s.current || !s.loading {
		s.logger.Debug("discarding stale search", "query", res.Request.Query)
		return false
	}
	s.loading = false

	if res.Err != nil {
		s.results = nil
		s.err = SearchErrorText
		return true
	}
	s.results = res.Items
	s.err = ""
	return true
}

// Run submits, fetches and applies query synchronously
func (s *Search) Run(ctx context.Context, query string, kind domain.MediaKind) error {
	req, ok := s.Submit(query, kind)
	if !ok {
		return domain.ErrEmptyQuery
	}
	res := s.Fetch(ctx, req)
	s.Apply(res)
	return res.Err
}

// Query returns the latest submitted request
func (s *Search) Query() SearchRequest { return s.current }

// Loading reports whether a search is outstanding
func (s *Search) Loading() bool { return s.loading }

// Err returns the error text of the latest search, if it failed
func (s *Search) Err() string { return s.err }

// Results returns the latest applied matches in provider order
func (s *Search) Results() []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(s.results))
	for i, it := range s.results {
		out[i] = it.Clone()
	}
	return out
}

// Pinned returns favorites whose titles match the current query
func (s *Search) Pinned() []domain.CatalogItem {
	if s.favorites == nil || s.current.Query == "" {
		return nil
	}
	return s.favorites.Find(s.current.Query)
}
