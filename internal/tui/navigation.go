package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/scenra/scenra/internal/catalog"
	"github.com/scenra/scenra/internal/domain"
	"github.com/scenra/scenra/internal/route"
)

// navigate switches to r and returns the fetch it needs, if any
func (m *Model) navigate(r route.Route) tea.Cmd {
	if m.Route.View == route.ViewDetail && r.View != route.ViewDetail {
		m.Detail.Close()
	}
	m.logger.Debug("navigate", "route", r.String())
	m.Route = r

	switch r.View {
	case route.ViewHome:
		if m.homeLoading || len(m.homeView.Carousels) > 0 {
			return nil
		}
		return m.loadHome()

	case route.ViewExplore:
		first := !m.exploreVisited
		if r.Kind == "" && first {
			r.Kind = m.defaultKind
		}
		m.exploreVisited = true
		req, ok := m.Explore.RestoreFromRoute(r)
		if first && !ok {
			// Initial filters may have left a request pending that nothing fetched
			req, ok = m.Explore.Reload()
		}
		m.Route = route.Explore(m.Explore.Selection().Kind)
		m.exploreList.SetItems(m.Explore.Displayed())
		if !ok {
			return nil
		}
		return FetchListingCmd(m.Explore, req, m.timeout)

	case route.ViewSearch:
		m.searchInput.SetValue(r.Query)
		if r.Query == "" {
			m.searchInput.Focus()
			return textinput.Blink
		}
		m.searchInput.Blur()
		return m.submitSearch()

	case route.ViewDetail:
		req := m.Detail.Open(r.Kind, r.ID)
		m.seasonCursor = 0
		return FetchDetailCmd(m.Detail, req, m.timeout)
	}
	return nil
}

// back leaves the current screen. Detail returns to the explore listing of
// its media kind; every other screen returns home.
func (m *Model) back() tea.Cmd {
	if m.Route.View == route.ViewHome {
		return nil
	}
	return m.navigate(m.Route.Back())
}

// openDetail navigates to the detail screen for item
func (m *Model) openDetail(item domain.CatalogItem) tea.Cmd {
	return m.navigate(route.Detail(item.Kind, item.ID))
}

// submitSearch runs the query in the search input
func (m *Model) submitSearch() tea.Cmd {
	req, ok := m.Search.Submit(m.searchInput.Value(), m.searchKind)
	if !ok {
		return nil
	}
	m.Route = route.Search(req.Query)
	return SearchCmd(m.Search, req, m.timeout)
}

// applyExplore issues the fetch for an explore selection change
func (m *Model) applyExplore(req catalog.Request, ok bool) tea.Cmd {
	m.Route = route.Explore(m.Explore.Selection().Kind)
	m.exploreList.SetItems(m.Explore.Displayed())
	if !ok {
		return nil
	}
	return FetchListingCmd(m.Explore, req, m.timeout)
}

// cycleCategory moves the explore tab by delta, wrapping around
func (m *Model) cycleCategory(delta int) tea.Cmd {
	cur := m.Explore.Selection().Category
	idx := 0
	for i, c := range domain.Categories {
		if c == cur {
			idx = i
		}
	}
	n := len(domain.Categories)
	idx = ((idx+delta)%n + n) % n
	return m.applyExplore(m.Explore.SetCategory(domain.Categories[idx]))
}

// cycleGenre moves the genre filter by delta. Positions run from "all
// genres" through every filter genre and wrap around.
func (m *Model) cycleGenre(delta int) tea.Cmd {
	cur := m.Explore.Selection().Genre
	pos := 0
	for i, g := range domain.Genres {
		if g.ID == cur {
			pos = i + 1
		}
	}
	n := len(domain.Genres) + 1
	pos = ((pos+delta)%n + n) % n

	genre := 0
	if pos > 0 {
		genre = domain.Genres[pos-1].ID
	}
	return m.applyExplore(m.Explore.SetGenre(genre))
}

// toggleKind flips between movies and series
func toggleKind(kind domain.MediaKind) domain.MediaKind {
	if kind == domain.MediaKindTV {
		return domain.MediaKindMovie
	}
	return domain.MediaKindTV
}

// selectedHomeItem returns the card under the home cursor
func (m Model) selectedHomeItem() (domain.CatalogItem, bool) {
	if m.homeRow >= len(m.homeView.Carousels) {
		return domain.CatalogItem{}, false
	}
	items := m.homeView.Carousels[m.homeRow].Items
	col := m.homeCols[m.homeRow]
	if col >= len(items) {
		return domain.CatalogItem{}, false
	}
	return items[col], true
}
