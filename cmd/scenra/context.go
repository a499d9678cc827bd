package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/scenra/scenra/internal/adapter"
	"github.com/scenra/scenra/internal/catalog"
	"github.com/scenra/scenra/internal/config"
	"github.com/scenra/scenra/internal/domain"
	"github.com/scenra/scenra/internal/log"
	"github.com/scenra/scenra/internal/mediaserver"
	"github.com/scenra/scenra/internal/route"
	"github.com/scenra/scenra/internal/store"
	"github.com/scenra/scenra/internal/tui"
)

// commandContext lazily builds what subcommands share
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
	logger     *slog.Logger

	favorites *store.Favorites
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, logger: slog.Default()}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if c.configFlag != nil {
			c.configPath = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(c.configPath)
		if err != nil {
			c.configErr = fmt.Errorf("failed to load config: %w", err)
			return
		}

		logger, err := log.SetupLogger(&cfg.Logging)
		if err != nil {
			// Fall back to null logger if file logging fails
			logger = log.NullLogger()
		}
		slog.SetDefault(logger)
		logger.Info("starting scenra", "version", Version)

		c.config = cfg
		c.logger = logger
	})
	return c.config, c.configErr
}

// client builds the catalog client, failing when no api key is configured
func (c *commandContext) client() (domain.CatalogClient, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client, err := mediaserver.NewClient(cfg, c.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client: %w", err)
	}
	return client, nil
}

// openFavorites opens the favorites database once per process. When the
// file cannot be opened (another instance holds the lock) the list lives in
// memory for this run.
func (c *commandContext) openFavorites() (*store.Favorites, error) {
	if c.favorites != nil {
		return c.favorites, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	favs, err := store.Open(cfg.Storage.Path, c.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open favorites: %w", err)
	}
	c.favorites = favs
	return favs, nil
}

func (c *commandContext) close() {
	if c.favorites != nil {
		if err := c.favorites.Close(); err != nil {
			c.logger.Warn("closing favorites failed", "error", err)
		}
		c.favorites = nil
	}
}

// runTUI starts the interactive browser at start
func (c *commandContext) runTUI(start route.Route, sel *catalog.Selection) error {
	return c.runTUIWith(start, func(deps *tui.Deps) {
		if sel != nil {
			deps.Explore = *sel
		}
	})
}

// runTUIWith starts the browser after letting configure adjust its deps
func (c *commandContext) runTUIWith(start route.Route, configure func(*tui.Deps)) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	client, err := c.client()
	if err != nil {
		return err
	}

	favs, err := c.openFavorites()
	if err != nil {
		c.logger.Warn("favorites unavailable, keeping them in memory", "error", err)
		favs = store.OpenMemory(c.logger)
		c.favorites = favs
	}

	kind, ok := domain.ParseMediaKind(cfg.UI.DefaultType)
	if !ok {
		kind = domain.MediaKindMovie
	}
	deps := tui.Deps{
		Client:        client,
		Favorites:     favs,
		Opener:        adapter.NewOpener(cfg.UI.TrailerCommand, cfg.UI.TrailerArgs, c.logger),
		Logger:        c.logger,
		Timeout:       cfg.TMDB.Timeout,
		StatusTimeout: cfg.UI.StatusTimeout,
		ImageBaseURL:  cfg.TMDB.ImageBaseURL,
		DefaultKind:   kind,
		Start:         start,
	}
	if configure != nil {
		configure(&deps)
	}

	p := tea.NewProgram(tui.NewModel(deps), tea.WithAltScreen())

	c.logger.Info("starting TUI", "route", start.String())
	if _, err := p.Run(); err != nil {
		c.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	c.logger.Info("shutting down")
	return nil
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
