package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding
	Back  key.Binding

	// Screens
	Home    key.Binding
	Explore key.Binding
	Search  key.Binding

	// Explore filters
	NextTab    key.Binding
	PrevTab    key.Binding
	ToggleKind key.Binding
	NextGenre  key.Binding
	PrevGenre  key.Binding
	ClearGenre key.Binding

	// Actions
	Quit     key.Binding
	Help     key.Binding
	Escape   key.Binding
	Filter   key.Binding
	Favorite key.Binding
	Trailer  key.Binding
	Refresh  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "arriba"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "abajo"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "izquierda"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "derecha"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "abrir"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "b"),
			key.WithHelp("b", "volver"),
		),

		// Screens
		Home: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "inicio"),
		),
		Explore: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "explorar"),
		),
		Search: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "buscar"),
		),

		// Explore filters
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "siguiente categoría"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "categoría anterior"),
		),
		ToggleKind: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "películas/series"),
		),
		NextGenre: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "siguiente género"),
		),
		PrevGenre: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "género anterior"),
		),
		ClearGenre: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "todos los géneros"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "salir"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ayuda"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancelar"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filtrar"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m", "mi lista"),
		),
		Trailer: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "ver tráiler"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "recargar"),
		),
	}
}

// Keys is the global keymap instance
var Keys = DefaultKeyMap()

// helpBindings names the bindings listed on the help screen
func helpBindings() map[string]key.Binding {
	return map[string]key.Binding{
		"Up":         Keys.Up,
		"Down":       Keys.Down,
		"Left":       Keys.Left,
		"Right":      Keys.Right,
		"Enter":      Keys.Enter,
		"Back":       Keys.Back,
		"Home":       Keys.Home,
		"Explore":    Keys.Explore,
		"Search":     Keys.Search,
		"NextTab":    Keys.NextTab,
		"PrevTab":    Keys.PrevTab,
		"ToggleKind": Keys.ToggleKind,
		"NextGenre":  Keys.NextGenre,
		"PrevGenre":  Keys.PrevGenre,
		"ClearGenre": Keys.ClearGenre,
		"Filter":     Keys.Filter,
		"Favorite":   Keys.Favorite,
		"Trailer":    Keys.Trailer,
		"Refresh":    Keys.Refresh,
		"Help":       Keys.Help,
		"Escape":     Keys.Escape,
		"Quit":       Keys.Quit,
	}
}
