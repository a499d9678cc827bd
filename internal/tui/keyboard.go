package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/scenra/scenra/internal/catalog"
	"github.com/scenra/scenra/internal/route"
	"github.com/scenra/scenra/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.ShowHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	// Text inputs swallow every other key while focused
	if m.Route.View == route.ViewSearch && m.searchInput.Focused() {
		return m.handleSearchInput(msg)
	}
	if list := m.activeList(); list != nil && list.IsFilterTyping() {
		return m, list.Update(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Home):
		return m, m.navigate(route.Home())

	case key.Matches(msg, Keys.Explore):
		return m, m.navigate(route.Explore(""))

	case key.Matches(msg, Keys.Search):
		if m.Route.View == route.ViewSearch {
			m.searchInput.Focus()
			return m, textinput.Blink
		}
		return m, m.navigate(route.Search(""))

	case key.Matches(msg, Keys.Escape):
		if list := m.activeList(); list != nil && list.IsFiltering() {
			list.ClearFilter()
			return m, nil
		}
		return m, m.back()

	case key.Matches(msg, Keys.Back):
		return m, m.back()
	}

	switch m.Route.View {
	case route.ViewHome:
		return m.handleHomeKey(msg)
	case route.ViewExplore:
		return m.handleExploreKey(msg)
	case route.ViewSearch:
		return m.handleSearchKey(msg)
	case route.ViewDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Refresh):
		return m, m.loadHome()

	case key.Matches(msg, Keys.Up):
		if m.homeRow > 0 {
			m.homeRow--
		}

	case key.Matches(msg, Keys.Down):
		if m.homeRow < len(m.homeView.Carousels)-1 {
			m.homeRow++
		}

	case key.Matches(msg, Keys.Left):
		if m.homeRow < len(m.homeCols) && m.homeCols[m.homeRow] > 0 {
			m.homeCols[m.homeRow]--
		}

	case key.Matches(msg, Keys.Right):
		if m.homeRow < len(m.homeCols) {
			last := len(m.homeView.Carousels[m.homeRow].Items) - 1
			if m.homeCols[m.homeRow] < last {
				m.homeCols[m.homeRow]++
			}
		}

	case key.Matches(msg, Keys.Enter):
		if item, ok := m.selectedHomeItem(); ok {
			return m, m.openDetail(item)
		}

	case key.Matches(msg, Keys.Favorite):
		if item, ok := m.selectedHomeItem(); ok {
			return m, m.toggleFavorite(item)
		}
	}
	return m, nil
}

func (m Model) handleExploreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Refresh):
		return m, m.applyExplore(m.Explore.Reload())

	case key.Matches(msg, Keys.NextTab):
		return m, m.cycleCategory(1)

	case key.Matches(msg, Keys.PrevTab):
		return m, m.cycleCategory(-1)

	case key.Matches(msg, Keys.ToggleKind):
		kind := toggleKind(m.Explore.Selection().Kind)
		return m, m.applyExplore(m.Explore.SetKind(kind))

	case key.Matches(msg, Keys.NextGenre):
		return m, m.cycleGenre(1)

	case key.Matches(msg, Keys.PrevGenre):
		return m, m.cycleGenre(-1)

	case key.Matches(msg, Keys.ClearGenre):
		return m, m.applyExplore(m.Explore.SetGenre(0))

	case key.Matches(msg, Keys.Filter):
		m.exploreList.StartFilter()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		if item, ok := m.exploreList.Selected(); ok {
			return m, m.openDetail(item)
		}
		return m, nil

	case key.Matches(msg, Keys.Favorite):
		if item, ok := m.exploreList.Selected(); ok {
			return m, m.toggleFavorite(item)
		}
		return m, nil
	}
	return m, m.exploreList.Update(msg)
}

func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchInput.Blur()
		return m, m.submitSearch()
	case "esc":
		m.searchInput.Blur()
		return m, nil
	case "tab":
		m.searchKind = toggleKind(m.searchKind)
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.ToggleKind):
		m.searchKind = toggleKind(m.searchKind)
		if m.Search.Query().Query == "" {
			return m, nil
		}
		return m, m.submitSearch()

	case key.Matches(msg, Keys.Refresh):
		return m, m.submitSearch()

	case key.Matches(msg, Keys.Filter):
		m.searchList.StartFilter()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		if item, ok := m.searchList.Selected(); ok {
			return m, m.openDetail(item)
		}
		return m, nil

	case key.Matches(msg, Keys.Favorite):
		if item, ok := m.searchList.Selected(); ok {
			return m, m.toggleFavorite(item)
		}
		return m, nil
	}
	return m, m.searchList.Update(msg)
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.Detail.View()

	switch {
	case key.Matches(msg, Keys.Left):
		return m, m.back()

	case key.Matches(msg, Keys.Refresh):
		return m, m.navigate(m.Route)
	}

	if view.Record == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Favorite):
		return m, m.toggleFavorite(view.Record.CatalogItem)

	case key.Matches(msg, Keys.Trailer):
		if view.Trailer == nil {
			return m, m.setStatus("Sin tráiler disponible", false)
		}
		if m.Opener == nil {
			return m, m.setStatus(catalog.TrailerURL(view.Trailer.Key), false)
		}
		return m, OpenTrailerCmd(m.Opener, catalog.TrailerURL(view.Trailer.Key))

	case key.Matches(msg, Keys.Up):
		if m.seasonCursor > 0 {
			m.seasonCursor--
		}

	case key.Matches(msg, Keys.Down):
		if m.seasonCursor < len(view.Record.Seasons)-1 {
			m.seasonCursor++
		}

	case key.Matches(msg, Keys.Enter):
		if m.seasonCursor < len(view.Record.Seasons) {
			m.Detail.Seasons.Toggle(m.seasonCursor)
		}
	}
	return m, nil
}

// activeList returns the list shown on the current screen, if any
func (m *Model) activeList() *components.ItemList {
	switch m.Route.View {
	case route.ViewExplore:
		return &m.exploreList
	case route.ViewSearch:
		return &m.searchList
	}
	return nil
}
