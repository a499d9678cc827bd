package catalog

import (
	"context"
	"log/slog"

	"github.com/scenra/scenra/internal/domain"
)

// MaxCast is how many cast members a detail view shows
const MaxCast = 10

const (
	trailerType = "Trailer"
	trailerSite = "YouTube"
)

// DetailErrorText returns the terminal error shown when a detail fetch fails
func DetailErrorText(kind domain.MediaKind) string {
	if kind == domain.MediaKindTV {
		return "Error cargando detalles de la serie"
	}
	return "Error cargando detalles de la película"
}

// TrailerURL returns the watch URL for a YouTube video key
func TrailerURL(key string) string {
	return "https://www.youtube.com/watch?v=" + key
}

// DetailRequest tags a detail fetch with the item it was issued for
type DetailRequest struct {
	Kind domain.MediaKind
	ID   int64
}

// DetailResult is the outcome of a detail fetch
type DetailResult struct {
	Request DetailRequest
	Record  *domain.DetailRecord
	Err     error
}

// DetailView is everything the detail screen renders.
// When Err is set nothing else is shown.
type DetailView struct {
	Request DetailRequest
	Loading bool
	Record  *domain.DetailRecord
	Trailer *domain.Video
	Cast    []domain.CastMember
	Err     string
}

// Detail loads one enriched record per visit and tracks the season accordion
type Detail struct {
	client domain.DetailRepository
	logger *slog.Logger

	current DetailRequest
	loading bool
	record  *domain.DetailRecord
	err     string

	Seasons SeasonAccordion
}

// NewDetail creates a detail view model
func NewDetail(client domain.DetailRepository, logger *slog.Logger) *Detail {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detail{client: client, logger: logger}
}

// Open starts a visit to (kind, id) and returns the request to fetch.
// Visiting a different item collapses every season.
func (d *Detail) Open(kind domain.MediaKind, id int64) DetailRequest {
	req := DetailRequest{Kind: kind, ID: id}
	if req != d.current {
		d.Seasons.Reset()
	}
	d.current = req
	d.loading = true
	d.record = nil
	d.err = ""
	return req
}

// Close forgets the current record
func (d *Detail) Close() {
	d.current = DetailRequest{}
	d.loading = false
	d.record = nil
	d.err = ""
	d.Seasons.Reset()
}

// Current returns the request of the active visit
func (d *Detail) Current() DetailRequest { return d.current }

// Fetch loads the record for req. It touches no view-model state.
func (d *Detail) Fetch(ctx context.Context, req DetailRequest) DetailResult {
	rec, err := d.client.Details(ctx, req.Kind, req.ID)
	if err != nil {
		d.logger.Error("detail fetch failed", "kind", req.Kind, "id", req.ID, "error", err)
	}
	return DetailResult{Request: req, Record: rec, Err: err}
}

// Apply installs res when it belongs to the active visit
func (d *Detail) Apply(res DetailResult) bool {
	if res.Request != d.current || !d.loading {
		d.logger.Debug("discarding stale details", "kind", res.Request.Kind, "id", res.Request.ID)
		return false
	}
	d.loading = false

	if res.Err != nil || res.Record == nil {
		d.record = nil
		d.err = DetailErrorText(res.Request.Kind)
		return true
	}
	d.record = res.Record
	d.err = ""
	return true
}

// Load opens (kind, id), then fetches and applies it synchronously
func (d *Detail) Load(ctx context.Context, kind domain.MediaKind, id int64) DetailView {
	req := d.Open(kind, id)
	d.Apply(d.Fetch(ctx, req))
	return d.View()
}

// View derives the renderable state
func (d *Detail) View() DetailView {
	v := DetailView{
		Request: d.current,
		Loading: d.loading,
		Err:     d.err,
	}
	if d.err != "" || d.record == nil {
		return v
	}
	v.Record = d.record
	v.Trailer = SelectTrailer(d.record.Videos)
	v.Cast = CapCast(d.record.Cast)
	return v
}

// SelectTrailer returns the first YouTube trailer in videos, or nil
func SelectTrailer(videos []domain.Video) *domain.Video {
	for i := range videos {
		if videos[i].Type == trailerType && videos[i].Site == trailerSite {
			v := videos[i]
			return &v
		}
	}
	return nil
}

// CapCast returns at most MaxCast members in credit order
func CapCast(cast []domain.CastMember) []domain.CastMember {
	if len(cast) > MaxCast {
		return cast[:MaxCast]
	}
	return cast
}

// SeasonAccordion allows at most one expanded season at a time.
// The zero value has every season collapsed.
type SeasonAccordion struct {
	open     int
	expanded bool
}

// Toggle expands season i, collapsing any other, or collapses i if it is open
func (a *SeasonAccordion) Toggle(i int) {
	if a.expanded && a.open == i {
		a.Reset()
		return
	}
	a.open, a.expanded = i, true
}

// Expanded returns the open season index, if any
func (a *SeasonAccordion) Expanded() (int, bool) {
	return a.open, a.expanded
}

// IsExpanded reports whether season i is open
func (a *SeasonAccordion) IsExpanded(i int) bool {
	return a.expanded && a.open == i
}

// Reset collapses every season
func (a *SeasonAccordion) Reset() {
	a.open, a.expanded = 0, false
}
