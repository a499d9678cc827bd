// Package route maps the application's logical views to and from paths such
// as "/explore?type=tv" or "/movie/42".
package route

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/scenra/scenra/internal/domain"
)

// View names one of the navigable screens
type View string

const (
	ViewHome    View = "home"
	ViewExplore View = "explore"
	ViewSearch  View = "search"
	ViewDetail  View = "detail"
)

// Route is a parsed location.
// Kind is set for detail routes and optionally for explore; ID only for detail.
type Route struct {
	View  View
	Kind  domain.MediaKind
	ID    int64
	Query string
}

var router = newRouter()

func newRouter() *mux.Router {
	r := mux.NewRouter()
	r.Path("/").Name(string(ViewHome))
	r.Path("/explore").Name(string(ViewExplore))
	r.Path("/search").Name(string(ViewSearch))
	r.Path("/{kind:movie|tv}/{id:[0-9]+}").Name(string(ViewDetail))
	return r
}

// Home returns the landing route
func Home() Route { return Route{View: ViewHome} }

// Explore returns the explore route, optionally pinned to a media kind
func Explore(kind domain.MediaKind) Route { return Route{View: ViewExplore, Kind: kind} }

// Search returns the search route for query
func Search(query string) Route { return Route{View: ViewSearch, Query: query} }

// Detail returns the movie or series detail route
func Detail(kind domain.MediaKind, id int64) Route {
	return Route{View: ViewDetail, Kind: kind, ID: id}
}

// Parse resolves a path (with optional query string) to a Route.
// Unknown "type" values on explore are ignored, matching how the view reads them.
func Parse(raw string) (Route, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Home(), nil
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}

	req, err := http.NewRequest(http.MethodGet, raw, nil)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %v", domain.ErrUnknownRoute, err)
	}

	var match mux.RouteMatch
	if !router.Match(req, &match) || match.Route == nil {
		return Route{}, fmt.Errorf("%w: %s", domain.ErrUnknownRoute, req.URL.Path)
	}

	q := req.URL.Query()
	switch View(match.Route.GetName()) {
	case ViewHome:
		return Home(), nil
	case ViewExplore:
		kind, _ := domain.ParseMediaKind(q.Get("type"))
		return Explore(kind), nil
	case ViewSearch:
		return Search(q.Get("query")), nil
	case ViewDetail:
		kind, _ := domain.ParseMediaKind(match.Vars["kind"])
		id, err := strconv.ParseInt(match.Vars["id"], 10, 64)
		if err != nil || id <= 0 {
			return Route{}, fmt.Errorf("%w: %q", domain.ErrInvalidID, match.Vars["id"])
		}
		return Detail(kind, id), nil
	}
	return Route{}, fmt.Errorf("%w: %s", domain.ErrUnknownRoute, req.URL.Path)
}

// String renders the route back to its path form
func (r Route) String() string {
	switch r.View {
	case ViewExplore:
		if r.Kind == "" {
			return "/explore"
		}
		return "/explore?" + url.Values{"type": {string(r.Kind)}}.Encode()
	case ViewSearch:
		return "/search?" + url.Values{"query": {r.Query}}.Encode()
	case ViewDetail:
		u, err := router.Get(string(ViewDetail)).URLPath(
			"kind", string(r.Kind),
			"id", strconv.FormatInt(r.ID, 10),
		)
		if err != nil {
			return "/"
		}
		return u.Path
	}
	return "/"
}

// Back returns where the back action leads: detail views return to the
// explore tab of their own kind, everything else returns home.
func (r Route) Back() Route {
	if r.View == ViewDetail {
		return Explore(r.Kind)
	}
	return Home()
}
