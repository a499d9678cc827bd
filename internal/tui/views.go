package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/scenra/scenra/internal/catalog"
	"github.com/scenra/scenra/internal/domain"
	"github.com/scenra/scenra/internal/mediaserver/tmdb"
	"github.com/scenra/scenra/internal/route"
	"github.com/scenra/scenra/internal/tui/components"
	"github.com/scenra/scenra/internal/tui/styles"
)

// View renders the whole screen
func (m Model) View() string {
	if !m.Ready {
		return "Cargando..."
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	var body string
	switch m.Route.View {
	case route.ViewHome:
		body = m.renderHome()
	case route.ViewExplore:
		body = m.renderExplore()
	case route.ViewSearch:
		body = m.renderSearch()
	case route.ViewDetail:
		body = m.renderDetail()
	}

	body = lipgloss.NewStyle().
		Width(m.Width).
		Height(m.bodyHeight()).
		MaxHeight(m.bodyHeight()).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

// renderHeader renders the app name, the screen tabs and the current route
func (m Model) renderHeader() string {
	tabs := []struct {
		view  route.View
		label string
	}{
		{route.ViewHome, "Inicio"},
		{route.ViewExplore, "Explorar"},
		{route.ViewSearch, "Buscar"},
	}

	parts := []string{styles.HeaderStyle.Render("scenra")}
	for _, t := range tabs {
		if m.Route.View == t.view {
			parts = append(parts, styles.ActiveTabStyle.Render(t.label))
		} else {
			parts = append(parts, styles.TabStyle.Render(t.label))
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	path := styles.DimStyle.Render(m.Route.String())
	return line + "\n" + path
}

// renderHome renders one carousel per row
func (m Model) renderHome() string {
	if m.homeErr != "" {
		return styles.ErrorStyle.Render(m.homeErr) + "\n" +
			styles.DimStyle.Render("Pulsa r para reintentar")
	}
	if m.homeLoading || len(m.homeView.Carousels) == 0 {
		return RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Cargando...")
	}

	visible := max(m.Width/(CardWidth+1), 1)
	rows := make([]string, 0, len(m.homeView.Carousels))
	for r, c := range m.homeView.Carousels {
		col := 0
		if r < len(m.homeCols) {
			col = m.homeCols[r]
		}
		rows = append(rows, m.renderCarousel(c, col, r == m.homeRow, visible))
	}
	return strings.Join(rows, "\n\n")
}

func (m Model) renderCarousel(c catalog.Carousel, col int, active bool, visible int) string {
	title := styles.SubtitleStyle.Render(c.Title)
	if active {
		title = styles.AccentStyle.Bold(true).Render(c.Title)
	}
	if len(c.Items) == 0 {
		return title + "\n" + styles.DimStyle.Render("No se encontraron resultados.")
	}

	// Keep the selected card in view
	start := 0
	if col >= visible {
		start = col - visible + 1
	}
	end := min(start+visible, len(c.Items))

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, m.renderCard(c.Items[i], active && i == col))
	}
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) renderCard(item domain.CatalogItem, selected bool) string {
	inner := CardWidth - 2
	mark := " "
	if m.isFavorite(item) {
		mark = styles.FavoriteMarkStyle.Render("♥")
	}

	poster := styles.DimStyle.Render("▣ póster")
	if item.PosterPath == "" {
		poster = styles.PlaceholderStyle.Render(components.PosterPlaceholder)
	}
	lines := []string{
		poster,
		styles.Truncate(item.Title, inner),
		styles.RatingStyle.Render("★ "+item.FormattedRating()) + " " + mark,
	}

	style := styles.PanelStyle
	if selected {
		style = styles.ActivePanelStyle
	}
	return style.Width(inner).Height(CardHeight).Render(strings.Join(lines, "\n"))
}

// renderExplore renders the kind tabs, category tabs, genre chips and listing
func (m Model) renderExplore() string {
	sel := m.Explore.Selection()

	var kinds []string
	for _, k := range []domain.MediaKind{domain.MediaKindMovie, domain.MediaKindTV} {
		if k == sel.Kind && sel.Category != domain.CategoryMyList {
			kinds = append(kinds, styles.ActiveTabStyle.Render(k.Label()))
		} else {
			kinds = append(kinds, styles.TabStyle.Render(k.Label()))
		}
	}

	var cats []string
	for _, c := range domain.Categories {
		if c == sel.Category {
			cats = append(cats, styles.ActiveTabStyle.Render(c.Label()))
		} else {
			cats = append(cats, styles.TabStyle.Render(c.Label()))
		}
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, kinds...),
		lipgloss.JoinHorizontal(lipgloss.Top, cats...),
		m.renderGenreChips(sel),
	}

	switch {
	case m.Explore.Loading() && m.exploreList.Len() == 0:
		lines = append(lines, RenderSpinner(m.SpinnerFrame)+" "+styles.DimStyle.Render("Cargando..."))
	case sel.Category == domain.CategoryMyList && m.exploreList.Len() == 0:
		lines = append(lines, styles.DimStyle.Render("Tu lista está vacía. Pulsa m sobre un título para añadirlo."))
	default:
		lines = append(lines, m.exploreList.View(m.isFavorite))
	}
	return strings.Join(lines, "\n")
}

// renderGenreChips renders the genre filter. The filter has no effect on
// "my list", so the chips are dimmed there.
func (m Model) renderGenreChips(sel catalog.Selection) string {
	if sel.Category == domain.CategoryMyList {
		return styles.DimStyle.Render("Todos los géneros")
	}

	chips := make([]string, 0, len(domain.Genres)+1)
	all := styles.ChipStyle.Render("Todos")
	if sel.Genre == 0 {
		all = styles.ActiveChipStyle.Render("Todos")
	}
	chips = append(chips, all)

	// Show the chips around the active genre when the row is too narrow
	used := lipgloss.Width(all)
	for _, g := range domain.Genres {
		chip := styles.ChipStyle.Render(g.Name)
		if g.ID == sel.Genre {
			chip = styles.ActiveChipStyle.Render(g.Name)
		}
		w := lipgloss.Width(chip) + 1
		if m.Width > 0 && used+w > m.Width && sel.Genre != g.ID {
			continue
		}
		used += w
		chips = append(chips, chip)
	}
	return strings.Join(chips, " ")
}

// renderSearch renders the query input, pinned matches and results
func (m Model) renderSearch() string {
	lines := []string{
		m.searchInput.View(),
		styles.DimStyle.Render("Buscando en: ") + styles.AccentStyle.Render(m.searchKind.Label()) +
			styles.DimStyle.Render("  (t para cambiar)"),
	}

	if pinned := m.Search.Pinned(); len(pinned) > 0 {
		names := make([]string, 0, len(pinned))
		for _, p := range pinned {
			names = append(names, p.Title)
		}
		lines = append(lines, styles.FavoriteMarkStyle.Render("♥ En tu lista: ")+
			styles.Truncate(strings.Join(names, ", "), max(m.Width-16, 10)))
	} else {
		lines = append(lines, "")
	}

	switch {
	case m.Search.Loading():
		lines = append(lines, RenderSpinner(m.SpinnerFrame)+" "+styles.DimStyle.Render("Buscando..."))
	case m.Search.Err() != "":
		lines = append(lines, styles.ErrorStyle.Render(m.Search.Err()))
	case m.Search.Query().Query == "":
		lines = append(lines, styles.DimStyle.Render("Escribe un título y pulsa enter"))
	default:
		lines = append(lines, m.searchList.View(m.isFavorite))
	}
	return strings.Join(lines, "\n")
}

// renderDetail renders the detail record: either the whole record or only
// the error text
func (m Model) renderDetail() string {
	view := m.Detail.View()
	if view.Err != "" {
		return styles.ErrorStyle.Render(view.Err) + "\n" +
			styles.DimStyle.Render("Pulsa b para volver")
	}
	if view.Loading || view.Record == nil {
		return RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Cargando...")
	}

	rec := view.Record
	width := max(m.Width-4, 20)
	var b strings.Builder

	title := rec.Title
	if year := releaseYear(rec.ReleaseDate); year != "" {
		title += " (" + year + ")"
	}
	b.WriteString(styles.TitleStyle.Render(title))
	if m.isFavorite(rec.CatalogItem) {
		b.WriteString("  " + styles.FavoriteMarkStyle.Render("♥ En tu lista"))
	}
	b.WriteString("\n")

	meta := []string{rec.Kind.Label(), styles.RatingStyle.Render("★ " + rec.FormattedRating())}
	if names := rec.GenreNames(); len(names) > 0 {
		meta = append(meta, strings.Join(names, ", "))
	}
	if rec.Kind == domain.MediaKindTV && rec.SeasonCount > 0 {
		meta = append(meta, fmt.Sprintf("%d temporadas · %d episodios", rec.SeasonCount, rec.EpisodeCount))
	}
	b.WriteString(styles.SubtitleStyle.Render(strings.Join(meta, " · ")) + "\n")

	if poster := tmdb.ImageURL(m.imageBaseURL, tmdb.PosterSize, rec.PosterPath); poster != "" {
		b.WriteString(styles.DimStyle.Render("Póster: "+poster) + "\n")
	} else {
		b.WriteString(styles.PlaceholderStyle.Render(components.PosterPlaceholder) + "\n")
	}
	b.WriteString("\n")

	if rec.Overview != "" {
		b.WriteString(wordWrap(rec.Overview, width) + "\n\n")
	}

	if view.Trailer != nil {
		b.WriteString(styles.AccentStyle.Render("Tráiler: ") + catalog.TrailerURL(view.Trailer.Key) +
			styles.DimStyle.Render("  (o para abrir)") + "\n\n")
	} else {
		b.WriteString(styles.DimStyle.Render("Sin tráiler disponible") + "\n\n")
	}

	if len(view.Cast) > 0 {
		b.WriteString(styles.HeaderStyle.UnsetPadding().Render("Reparto") + "\n")
		names := make([]string, 0, len(view.Cast))
		for _, c := range view.Cast {
			names = append(names, c.Name)
		}
		b.WriteString(wordWrap(strings.Join(names, " · "), width) + "\n\n")
	}

	if len(rec.Seasons) > 0 {
		b.WriteString(styles.HeaderStyle.UnsetPadding().Render("Temporadas") + "\n")
		b.WriteString(m.renderSeasons(rec.Seasons, width))
	}
	return b.String()
}

// renderSeasons renders the season accordion. At most one season is open.
func (m Model) renderSeasons(seasons []domain.Season, width int) string {
	var b strings.Builder
	for i, s := range seasons {
		cursor := "  "
		if i == m.seasonCursor {
			cursor = styles.AccentStyle.Render("▸ ")
		}
		arrow := "+"
		if m.Detail.Seasons.IsExpanded(i) {
			arrow = "-"
		}

		line := fmt.Sprintf("%s %s (%d episodios)", arrow, s.Name, s.EpisodeCount)
		if i == m.seasonCursor {
			line = styles.SelectedItemStyle.UnsetPadding().Render(line)
		} else {
			line = styles.NormalItemStyle.UnsetPadding().Render(line)
		}
		b.WriteString(cursor + line + "\n")

		if m.Detail.Seasons.IsExpanded(i) {
			overview := s.Overview
			if overview == "" {
				overview = "Sin descripción"
			}
			wrapped := wordWrap(overview, width-4)
			for _, l := range strings.Split(wrapped, "\n") {
				b.WriteString("    " + styles.DimStyle.Render(l) + "\n")
			}
		}
	}
	return b.String()
}

// renderFooter renders the spinner or status on the left and hints on the right
func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	} else if m.loading() {
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Cargando...")
	}

	right := styles.HelpKeyStyle.Render("?") + styles.HelpDescStyle.Render(" ayuda  ") +
		styles.HelpKeyStyle.Render("q") + styles.HelpDescStyle.Render(" salir")

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + strings.Repeat(" ", gap) + right
}

// loading reports whether the current screen waits on a fetch
func (m Model) loading() bool {
	switch m.Route.View {
	case route.ViewHome:
		return m.homeLoading
	case route.ViewExplore:
		return m.Explore.Loading()
	case route.ViewSearch:
		return m.Search.Loading()
	case route.ViewDetail:
		return m.Detail.View().Loading
	}
	return false
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	sections := []struct {
		title    string
		bindings []string
	}{
		{"NAVEGACIÓN", []string{"Up", "Down", "Left", "Right", "Enter", "Back"}},
		{"PANTALLAS", []string{"Home", "Explore", "Search"}},
		{"EXPLORAR", []string{"NextTab", "PrevTab", "ToggleKind", "NextGenre", "PrevGenre", "ClearGenre", "Filter"}},
		{"ACCIONES", []string{"Favorite", "Trailer", "Refresh", "Help", "Escape", "Quit"}},
	}

	bindings := map[string][2]string{}
	for name, b := range helpBindings() {
		bindings[name] = [2]string{b.Help().Key, b.Help().Desc}
	}

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.TitleStyle.Render(s.title) + "\n")
		for _, name := range s.bindings {
			h := bindings[name]
			b.WriteString("  " + styles.HelpKeyStyle.Render(styles.Pad(h[0], 10)) + " " +
				styles.HelpDescStyle.Render(h[1]) + "\n")
		}
	}
	b.WriteString("\n" + styles.DimStyle.Render("Pulsa esc para volver"))

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(b.String()))
}

// releaseYear extracts the year from a YYYY-MM-DD date
func releaseYear(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wordLen := len([]rune(word))

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}
