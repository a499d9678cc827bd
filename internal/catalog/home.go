package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/scenra/scenra/internal/domain"
	"github.com/sourcegraph/conc/pool"
)

// HomeErrorText is shown when the landing carousels cannot be loaded
const HomeErrorText = "Error al cargar películas"

// Carousel is one titled row on the landing screen
type Carousel struct {
	Title    string
	Category domain.Category
	Items    []domain.CatalogItem
}

// HomeView holds the landing carousels in display order
type HomeView struct {
	Carousels []Carousel
}

// Home loads the three movie carousels of the landing screen
type Home struct {
	client domain.ListingRepository
	logger *slog.Logger
}

// NewHome creates a home view model
func NewHome(client domain.ListingRepository, logger *slog.Logger) *Home {
	if logger == nil {
		logger = slog.Default()
	}
	return &Home{client: client, logger: logger}
}

var homeRows = []struct {
	title    string
	category domain.Category
}{
	{"En tendencia esta semana", domain.CategoryTrending},
	{"Más valoradas", domain.CategoryTopRated},
	{"Populares", domain.CategoryPopular},
}

// Load fetches every carousel concurrently. The first failure cancels the
// rest and no partial view is returned.
func (h *Home) Load(ctx context.Context) (HomeView, error) {
	results := make([][]domain.CatalogItem, len(homeRows))

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for i, row := range homeRows {
		i, row := i, row
		p.Go(func(ctx context.Context) error {
			items, err := h.client.List(ctx, domain.MediaKindMovie, row.category)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		h.logger.Error("home carousels failed", "error", err)
		return HomeView{}, &HomeError{Err: err}
	}

	view := HomeView{Carousels: make([]Carousel, len(homeRows))}
	for i, row := range homeRows {
		view.Carousels[i] = Carousel{Title: row.title, Category: row.category, Items: results[i]}
	}
	return view, nil
}

// HomeError wraps the first carousel failure
type HomeError struct {
	Err error
}

func (e *HomeError) Error() string { return HomeErrorText }

func (e *HomeError) Unwrap() error { return e.Err }

// IsHomeError reports whether err came from Home.Load
func IsHomeError(err error) bool {
	var he *HomeError
	return errors.As(err, &he)
}
