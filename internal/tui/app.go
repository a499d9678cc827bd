package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/scenra/scenra/internal/adapter"
	"github.com/scenra/scenra/internal/catalog"
	"github.com/scenra/scenra/internal/domain"
	"github.com/scenra/scenra/internal/route"
	"github.com/scenra/scenra/internal/tui/components"
	"github.com/scenra/scenra/internal/tui/styles"
)

// Layout constants
const (
	// Header line plus the tab bar
	HeaderHeight = 2
	// Single footer line
	FooterHeight = 1

	// Home carousel cards
	CardWidth  = 22
	CardHeight = 3

	tickInterval = 100 * time.Millisecond

	defaultTimeout       = 15 * time.Second
	defaultStatusTimeout = 3 * time.Second
)

// Deps wires the model to its collaborators
type Deps struct {
	Client    domain.CatalogClient
	Favorites domain.FavoritesStore
	Opener    *adapter.Opener
	Logger    *slog.Logger

	Timeout       time.Duration // per fetch
	StatusTimeout time.Duration // how long notices stay visible
	ImageBaseURL  string
	DefaultKind   domain.MediaKind
	SearchKind    domain.MediaKind  // media kind searched first, DefaultKind when empty
	Explore       catalog.Selection // initial explore filters, zero for defaults
	Start         route.Route
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready    bool
	ShowHelp bool

	Route route.Route

	// View models
	Home      *catalog.Home
	Explore   *catalog.Explore
	Search    *catalog.Search
	Detail    *catalog.Detail
	Favorites domain.FavoritesStore
	Opener    *adapter.Opener

	// Home state
	homeView    catalog.HomeView
	homeErr     string
	homeLoading bool
	homeRow     int
	homeCols    []int

	// Lists and inputs
	exploreList components.ItemList
	searchList  components.ItemList
	searchInput textinput.Model
	searchKind  domain.MediaKind

	seasonCursor int

	// Media kind of the first explore visit when the route names none
	defaultKind    domain.MediaKind
	exploreVisited bool

	// Dimensions
	Width  int
	Height int

	// Status line
	StatusMsg    string
	StatusIsErr  bool
	statusSeq    int
	SpinnerFrame int

	timeout       time.Duration
	statusTimeout time.Duration
	imageBaseURL  string
	logger        *slog.Logger

	startCmd tea.Cmd
}

// NewModel creates the application model and enters deps.Start
func NewModel(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Timeout <= 0 {
		deps.Timeout = defaultTimeout
	}
	if deps.StatusTimeout <= 0 {
		deps.StatusTimeout = defaultStatusTimeout
	}
	if deps.Explore.Kind != "" {
		deps.DefaultKind = deps.Explore.Kind
	}
	if deps.DefaultKind == "" {
		deps.DefaultKind = domain.MediaKindMovie
	}
	if deps.SearchKind == "" {
		deps.SearchKind = deps.DefaultKind
	}
	if deps.Start.View == "" {
		deps.Start = route.Home()
	}

	ti := textinput.New()
	ti.Placeholder = "Buscar títulos..."
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.CharLimit = 100

	m := Model{
		Home:          catalog.NewHome(deps.Client, logger),
		Explore:       catalog.NewExplore(deps.Client, deps.Favorites, logger),
		Search:        catalog.NewSearch(deps.Client, deps.Favorites, logger),
		Detail:        catalog.NewDetail(deps.Client, logger),
		Favorites:     deps.Favorites,
		Opener:        deps.Opener,
		exploreList:   components.NewItemList(),
		searchList:    components.NewItemList(),
		searchInput:   ti,
		searchKind:    deps.SearchKind,
		defaultKind:   deps.DefaultKind,
		timeout:       deps.Timeout,
		statusTimeout: deps.StatusTimeout,
		imageBaseURL:  deps.ImageBaseURL,
		logger:        logger,
	}
	if deps.Explore != (catalog.Selection{}) {
		m.Explore.SetSelection(deps.Explore)
	}
	m.startCmd = m.navigate(deps.Start)
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.startCmd,
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(tickInterval)

	case HomeLoadedMsg:
		m.homeLoading = false
		if msg.Err != nil {
			m.homeView = catalog.HomeView{}
			m.homeErr = msg.Err.Error()
			return m, nil
		}
		m.homeErr = ""
		m.homeView = msg.View
		m.homeRow = 0
		m.homeCols = make([]int, len(msg.View.Carousels))
		return m, nil

	case ListingLoadedMsg:
		notice, applied := m.Explore.Apply(msg.Result)
		if !applied {
			return m, nil
		}
		m.exploreList.SetItems(m.Explore.Displayed())
		return m, m.notify(notice)

	case SearchResultsMsg:
		if m.Search.Apply(msg.Result) {
			m.searchList.SetItems(m.Search.Results())
		}
		return m, nil

	case DetailLoadedMsg:
		if m.Detail.Apply(msg.Result) {
			m.seasonCursor = 0
		}
		return m, nil

	case TrailerOpenedMsg:
		return m, m.setStatus("Abriendo tráiler...", false)

	case ErrMsg:
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	// Cursor blink and other input internals
	if m.Route.View == route.ViewSearch && m.searchInput.Focused() {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// setStatus shows a message and schedules its removal. A newer message
// cancels the pending clear of an older one.
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = text
	m.StatusIsErr = isErr

	delay := m.statusTimeout
	if isErr {
		delay *= 2
	}
	return ClearStatusCmd(m.statusSeq, delay)
}

// notify surfaces a view-model notice on the status line
func (m *Model) notify(n catalog.Notice) tea.Cmd {
	if n.IsZero() {
		return nil
	}
	return m.setStatus(n.Text, n.IsError())
}

// isFavorite reports whether item is pinned
func (m Model) isFavorite(item domain.CatalogItem) bool {
	return m.Favorites != nil && m.Favorites.Contains(item.Kind, item.ID)
}

// toggleFavorite pins or unpins item and refreshes lists that show favorites
func (m *Model) toggleFavorite(item domain.CatalogItem) tea.Cmd {
	notice := catalog.ToggleFavorite(m.Favorites, item, m.logger)
	if m.Explore.Selection().Category == domain.CategoryMyList {
		m.exploreList.Replace(m.Explore.Displayed())
	}
	return m.notify(notice)
}

// loadHome starts a home fetch
func (m *Model) loadHome() tea.Cmd {
	m.homeLoading = true
	m.homeErr = ""
	return LoadHomeCmd(m.Home, m.timeout)
}

// updateLayout propagates the window size to sized components
func (m *Model) updateLayout() {
	body := m.bodyHeight()

	// Explore: kind tabs, category tabs and genre chips above the list
	m.exploreList.SetSize(m.Width, body-4)
	// Search: input, kind line and pinned matches above the list
	m.searchList.SetSize(m.Width, body-6)
	m.searchInput.Width = max(m.Width-6, 10)
}

func (m Model) bodyHeight() int {
	return max(m.Height-HeaderHeight-FooterHeight, 1)
}
