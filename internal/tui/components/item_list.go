package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"github.com/scenra/scenra/internal/domain"
	"github.com/scenra/scenra/internal/tui/styles"
)

// ScrollIndicatorLines is the space reserved for "↑ more" and "↓ more"
const ScrollIndicatorLines = 2

// PosterPlaceholder replaces a missing poster
const PosterPlaceholder = "Sin imagen"

// titleSource implements sahilm/fuzzy.Source over item titles
type titleSource []domain.CatalogItem

func (s titleSource) String(i int) string { return s[i].Title }
func (s titleSource) Len() int            { return len(s) }

// ListKeyMap defines key bindings for list navigation
type ListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
}

// DefaultListKeyMap returns the default list bindings
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Top:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "go to top")),
		Bottom:   key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "go to bottom")),
		HalfUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("C-u", "half page up")),
		HalfDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("C-d", "half page down")),
	}
}

// ItemList is a scrollable list of catalog items with an optional quick filter
type ItemList struct {
	items []domain.CatalogItem
	keys  ListKeyMap

	// Selection
	cursor     int
	offset     int
	maxVisible int

	height int
	width  int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	matches      fuzzy.Matches // nil when no query
}

// NewItemList creates an empty list
func NewItemList() ItemList {
	ti := textinput.New()
	ti.Placeholder = "escribe para filtrar..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle

	return ItemList{
		keys:        DefaultListKeyMap(),
		filterInput: ti,
	}
}

// SetItems replaces the content and resets selection and filter
func (l *ItemList) SetItems(items []domain.CatalogItem) {
	l.items = items
	l.cursor = 0
	l.offset = 0
	l.clearFilter()
}

// Replace swaps the content in place, keeping the cursor and any active
// filter where possible
func (l *ItemList) Replace(items []domain.CatalogItem) {
	l.items = items
	if l.filterActive {
		l.applyFilterKeepCursor()
	}
	if n := l.Len(); l.cursor >= n {
		l.cursor = max(n-1, 0)
	}
	l.ensureVisible()
}

// Items returns the unfiltered content
func (l *ItemList) Items() []domain.CatalogItem { return l.items }

// SetSize sets the rendered dimensions
func (l *ItemList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// Len returns the number of visible (filtered) items
func (l *ItemList) Len() int {
	if l.matches != nil {
		return len(l.matches)
	}
	return len(l.items)
}

// Cursor returns the selected row among visible items
func (l *ItemList) Cursor() int { return l.cursor }

// Selected returns the item under the cursor
func (l *ItemList) Selected() (domain.CatalogItem, bool) {
	if l.cursor >= l.Len() {
		return domain.CatalogItem{}, false
	}
	return l.items[l.mapIndex(l.cursor)], true
}

// StartFilter opens the quick filter input
func (l *ItemList) StartFilter() {
	l.filterActive = true
	l.filterInput.Focus()
	l.recalcMaxVisible()
}

// IsFiltering reports whether a filter is shown
func (l *ItemList) IsFiltering() bool { return l.filterActive }

// IsFilterTyping reports whether keystrokes go to the filter input
func (l *ItemList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ClearFilter closes the filter and shows every item
func (l *ItemList) ClearFilter() { l.clearFilter() }

// Update handles navigation and filter typing
func (l *ItemList) Update(msg tea.Msg) tea.Cmd {
	if l.IsFilterTyping() {
		if km, ok := msg.(tea.KeyMsg); ok {
			switch km.String() {
			case "esc":
				l.clearFilter()
				return nil
			case "enter":
				l.filterInput.Blur()
				return nil
			case "backspace":
				if l.filterInput.Value() == "" {
					l.clearFilter()
					return nil
				}
			}
		}
		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	count := l.Len()
	if count == 0 {
		return nil
	}

	switch {
	case key.Matches(km, l.keys.Down):
		if l.cursor < count-1 {
			l.cursor++
		}
	case key.Matches(km, l.keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(km, l.keys.Top):
		l.cursor = 0
	case key.Matches(km, l.keys.Bottom):
		l.cursor = count - 1
	case key.Matches(km, l.keys.HalfDown):
		l.cursor = min(l.cursor+max(l.maxVisible/2, 1), count-1)
	case key.Matches(km, l.keys.HalfUp):
		l.cursor = max(l.cursor-max(l.maxVisible/2, 1), 0)
	}
	l.ensureVisible()
	return nil
}

// View renders the visible rows. isFavorite marks pinned items.
func (l *ItemList) View(isFavorite func(domain.CatalogItem) bool) string {
	count := l.Len()
	if count == 0 {
		msg := "No se encontraron resultados."
		if l.filterActive && l.filterQuery != "" {
			msg = "Sin coincidencias"
		}
		out := styles.DimStyle.Render(msg)
		if l.filterActive {
			out += "\n" + l.renderFilterBar()
		}
		return out
	}

	end := min(l.offset+l.maxVisible, count)
	if l.maxVisible <= 0 {
		end = count
	}

	lines := make([]string, 0, end-l.offset+3)

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	lines = append(lines, header)

	for i := l.offset; i < end; i++ {
		idx := l.mapIndex(i)
		var matched []int
		if l.matches != nil {
			matched = l.matches[i].MatchedIndexes
		}
		lines = append(lines, l.renderRow(l.items[idx], matched, i == l.cursor, isFavorite))
	}

	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}
	lines = append(lines, footer)

	if l.filterActive {
		lines = append(lines, l.renderFilterBar())
	}
	return strings.Join(lines, "\n")
}

func (l *ItemList) renderRow(it domain.CatalogItem, matched []int, selected bool, isFavorite func(domain.CatalogItem) bool) string {
	mark := "  "
	if isFavorite != nil && isFavorite(it) {
		mark = styles.FavoriteMarkStyle.Render("♥ ")
	}

	titleWidth := l.width - 24
	if titleWidth < 10 {
		titleWidth = 10
	}
	title := it.Title
	if len([]rune(title)) > titleWidth {
		title = styles.Truncate(title, titleWidth)
		matched = nil
	}

	poster := ""
	if it.PosterPath == "" {
		poster = " " + styles.PlaceholderStyle.Render(PosterPlaceholder)
	}

	padding := strings.Repeat(" ", max(titleWidth-len([]rune(title)), 0))
	rating := styles.RatingStyle.Render("★ " + it.FormattedRating())

	cursor := "  "
	if selected {
		cursor = styles.AccentStyle.Render("▸ ")
	}
	return cursor + mark + styles.Highlight(title, matched, selected) + padding + " " + rating + poster
}

func (l *ItemList) renderFilterBar() string {
	bar := l.filterInput.View()
	if l.filterQuery != "" {
		bar += styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", l.Len(), len(l.items)))
	}
	return bar
}

func (l *ItemList) clearFilter() {
	l.filterActive = false
	l.filterQuery = ""
	l.matches = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
}

// SetFilter applies query directly, as if typed into the filter input
func (l *ItemList) SetFilter(query string) {
	l.filterActive = true
	l.filterInput.SetValue(query)
	l.applyFilter()
}

func (l *ItemList) applyFilter() {
	l.filterQuery = l.filterInput.Value()
	if l.filterQuery == "" {
		l.matches = nil
		return
	}

	l.matches = fuzzy.FindFrom(l.filterQuery, titleSource(l.items))
	if l.matches == nil {
		l.matches = fuzzy.Matches{}
	}

	// Reset cursor to first match
	l.cursor = 0
	l.offset = 0
}

func (l *ItemList) applyFilterKeepCursor() {
	cursor, offset := l.cursor, l.offset
	l.applyFilter()
	l.cursor, l.offset = cursor, offset
}

func (l *ItemList) mapIndex(i int) int {
	if l.matches != nil && i < len(l.matches) {
		return l.matches[i].Index
	}
	return i
}

func (l *ItemList) recalcMaxVisible() {
	l.maxVisible = l.height - ScrollIndicatorLines
	if l.filterActive {
		l.maxVisible--
	}
	if l.height > 0 && l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *ItemList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}
