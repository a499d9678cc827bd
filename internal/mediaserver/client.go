package mediaserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/scenra/scenra/internal/config"
	"github.com/scenra/scenra/internal/domain"
	"github.com/scenra/scenra/internal/mediaserver/tmdb"
)

// NewClient creates the catalog client described by cfg.
// Every request is bounded by cfg.TMDB.Timeout.
func NewClient(cfg *config.Config, logger *slog.Logger) (domain.CatalogClient, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.TMDB.Timeout}
	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithHTTPClient(httpClient),
		tmdb.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}
