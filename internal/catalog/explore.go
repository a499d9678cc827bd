package catalog

import (
	"context"
	"log/slog"

	"github.com/scenra/scenra/internal/domain"
	"github.com/scenra/scenra/internal/route"
)

// ExploreErrorText is shown when a listing cannot be loaded
const ExploreErrorText = "Error cargando contenido"

// Selection is the user-controlled state of the explore screen.
// Genre 0 means no genre filter.
type Selection struct {
	Kind     domain.MediaKind
	Category domain.Category
	Genre    int
}

// Request tags an in-flight listing fetch with the selection that started it
type Request Selection

// Result is the outcome of a listing fetch
type Result struct {
	Request Request
	Items   []domain.CatalogItem
	Err     error
}

// Explore owns the selection, the last applied listing and the favorites
// lookups the explore screen renders from. It is not safe for concurrent
// use; Fetch is the only method meant to run off the UI goroutine.
type Explore struct {
	client    domain.ListingRepository
	favorites domain.FavoritesStore
	logger    *slog.Logger

	sel Selection

	pending    Request
	hasPending bool
	applied    Request
	hasApplied bool

	raw   []domain.CatalogItem // unfiltered listing for applied.Kind/Category
	items []domain.CatalogItem // raw with the genre filter applied
}

// NewExplore creates an explore view model starting on popular movies
func NewExplore(client domain.ListingRepository, favorites domain.FavoritesStore, logger *slog.Logger) *Explore {
	if logger == nil {
		logger = slog.Default()
	}
	return &Explore{
		client:    client,
		favorites: favorites,
		logger:    logger,
		sel: Selection{
			Kind:     domain.MediaKindMovie,
			Category: domain.CategoryPopular,
		},
	}
}

// Selection returns the current selection
func (e *Explore) Selection() Selection { return e.sel }

// Pending returns the request whose result will be accepted next
func (e *Explore) Pending() (Request, bool) { return e.pending, e.hasPending }

// Loading reports whether a listing fetch is outstanding
func (e *Explore) Loading() bool { return e.hasPending }

// SetKind switches between movies and series
func (e *Explore) SetKind(kind domain.MediaKind) (Request, bool) {
	sel := e.sel
	sel.Kind = kind
	return e.SetSelection(sel)
}

// SetCategory switches the active tab
func (e *Explore) SetCategory(category domain.Category) (Request, bool) {
	sel := e.sel
	sel.Category = category
	return e.SetSelection(sel)
}

// SetGenre sets the genre filter; 0 clears it
func (e *Explore) SetGenre(genre int) (Request, bool) {
	sel := e.sel
	sel.Genre = genre
	return e.SetSelection(sel)
}

// ToggleGenre selects genre, or clears the filter when genre is already active
func (e *Explore) ToggleGenre(genre int) (Request, bool) {
	if e.sel.Genre == genre {
		return e.SetGenre(0)
	}
	return e.SetGenre(genre)
}

// RestoreFromRoute applies the media kind carried by an explore route
func (e *Explore) RestoreFromRoute(r route.Route) (Request, bool) {
	if r.View == route.ViewExplore && r.Kind != "" {
		return e.SetKind(r.Kind)
	}
	return e.SetSelection(e.sel)
}

// SetSelection replaces the whole selection. It returns the request to fetch
// and true whenever the selection changed, or when nothing is loaded or
// pending for it yet. The "my list" tab never fetches.
func (e *Explore) SetSelection(sel Selection) (Request, bool) {
	if sel.Kind == "" {
		sel.Kind = e.sel.Kind
	}
	if sel.Category == "" {
		sel.Category = e.sel.Category
	}
	changed := sel != e.sel
	e.sel = sel

	if sel.Category == domain.CategoryMyList {
		e.hasPending = false
		return Request{}, false
	}

	req := Request(sel)
	if !changed {
		if e.hasPending && e.pending == req {
			return req, false
		}
		if !e.hasPending && e.hasApplied && e.applied == req {
			return req, false
		}
	}

	e.pending, e.hasPending = req, true
	if e.hasApplied && e.applied.Kind == req.Kind && e.applied.Category == req.Category {
		// Same listing, different genre: show the local filter while the refetch runs
		e.items = FilterByGenre(e.raw, req.Genre)
	} else {
		e.raw, e.items = nil, nil
	}
	return req, true
}

// Reload forces a fetch for the current selection
func (e *Explore) Reload() (Request, bool) {
	e.hasPending = false
	e.hasApplied = false
	return e.SetSelection(e.sel)
}

// Fetch runs the listing query for req. It touches no view-model state.
func (e *Explore) Fetch(ctx context.Context, req Request) Result {
	items, err := e.client.List(ctx, req.Kind, req.Category)
	if err != nil {
		e.logger.Error("listing fetch failed",
			"kind", req.Kind, "category", req.Category, "error", err)
	}
	return Result{Request: req, Items: items, Err: err}
}

// Apply installs res if it answers the pending request. Stale results are
// dropped and reported with applied=false. A failed fetch empties the list
// and yields an error notice.
func (e *Explore) Apply(res Result) (notice Notice, applied bool) {
	if !e.hasPending || res.Request != e.pending {
		e.logger.Debug("discarding stale listing",
			"kind", res.Request.Kind, "category", res.Request.Category, "genre", res.Request.Genre)
		return Notice{}, false
	}
	e.hasPending = false

	if res.Err != nil {
		e.raw, e.items = nil, nil
		e.hasApplied = false
		return Notice{Kind: NoticeError, Text: ExploreErrorText}, true
	}

	e.applied, e.hasApplied = res.Request, true
	e.raw = res.Items
	e.items = FilterByGenre(res.Items, res.Request.Genre)
	return Notice{}, true
}

// Refresh fetches and applies the current selection synchronously
func (e *Explore) Refresh(ctx context.Context) Notice {
	req, ok := e.Reload()
	if !ok {
		return Notice{}
	}
	notice, _ := e.Apply(e.Fetch(ctx, req))
	return notice
}

// Displayed returns the list to render. On the "my list" tab that is the full
// favorites set, regardless of media kind and genre.
func (e *Explore) Displayed() []domain.CatalogItem {
	if e.sel.Category == domain.CategoryMyList {
		if e.favorites == nil {
			return nil
		}
		return e.favorites.Items()
	}
	out := make([]domain.CatalogItem, len(e.items))
	for i, it := range e.items {
		out[i] = it.Clone()
	}
	return out
}

// Toggle pins or unpins item and reports which happened
func (e *Explore) Toggle(item domain.CatalogItem) Notice {
	return ToggleFavorite(e.favorites, item, e.logger)
}

// IsFavorite reports whether (kind, id) is pinned
func (e *Explore) IsFavorite(kind domain.MediaKind, id int64) bool {
	return e.favorites != nil && e.favorites.Contains(kind, id)
}

// FilterByGenre keeps items tagged with genre, preserving order.
// A zero genre returns items unchanged.
func FilterByGenre(items []domain.CatalogItem, genre int) []domain.CatalogItem {
	if genre == 0 {
		return items
	}
	out := make([]domain.CatalogItem, 0, len(items))
	for _, it := range items {
		if it.HasGenre(genre) {
			out = append(out, it)
		}
	}
	return out
}
