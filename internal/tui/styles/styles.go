package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ScenraYellow = lipgloss.Color("#FACC15")
	ScenraOrange = lipgloss.Color("#FB923C")
	Navy         = lipgloss.Color("#0F172A")
	SlateLight   = lipgloss.Color("#1A1F2E")
	DimGray      = lipgloss.Color("#6B7280")
	LightGray    = lipgloss.Color("#9CA3AF")
	White        = lipgloss.Color("#F9FAFB")
	Green        = lipgloss.Color("#10B981")
	Red          = lipgloss.Color("#EF4444")
)

// SpinnerFrames animates loading lines outside the TUI
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ScenraYellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	RatingStyle = lipgloss.NewStyle().
			Foreground(ScenraYellow)
)

// Tab and chip styles
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ScenraYellow).
			Underline(true).
			Bold(true).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	ActiveChipStyle = lipgloss.NewStyle().
			Foreground(Navy).
			Background(ScenraYellow).
			Padding(0, 1)

	ChipStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateLight).
			Padding(0, 1)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	FavoriteMarkStyle = lipgloss.NewStyle().
				Foreground(ScenraOrange)
)

// Panel styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ScenraYellow).
			Bold(true).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ScenraYellow).
				Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ScenraYellow).
			Padding(1, 2)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Background(SlateLight).
				Padding(0, 1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ScenraYellow)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ScenraYellow)
)

// Filter styles
var (
	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(ScenraYellow).
				Bold(true)
)

// Match highlight styles for quick filter results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(ScenraOrange).
				Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
					Foreground(ScenraOrange).
					Background(SlateLight).
					Bold(true)
)

// Truncate shortens s to width display cells, adding an ellipsis when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Pad right-pads s with spaces to width runes
func Pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// Highlight renders text with the runes starting at the matched byte
// offsets emphasized
func Highlight(text string, matched []int, selected bool) string {
	base, hi := NormalItemStyle.UnsetPadding(), MatchHighlightStyle
	if selected {
		base, hi = SelectedItemStyle.UnsetPadding(), MatchHighlightSelectedStyle
	}
	if len(matched) == 0 {
		return base.Render(text)
	}

	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	// Batch consecutive runes with the same style
	var b strings.Builder
	var chunk strings.Builder
	chunkMatch := false
	flush := func() {
		if chunk.Len() == 0 {
			return
		}
		if chunkMatch {
			b.WriteString(hi.Render(chunk.String()))
		} else {
			b.WriteString(base.Render(chunk.String()))
		}
		chunk.Reset()
	}
	for i, r := range text {
		if set[i] != chunkMatch {
			flush()
			chunkMatch = set[i]
		}
		chunk.WriteRune(r)
	}
	flush()
	return b.String()
}
