package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scenra/scenra/internal/catalog"
	"github.com/scenra/scenra/internal/domain"
	"github.com/scenra/scenra/internal/route"
	"github.com/scenra/scenra/internal/tui"
)

func newHomeCommand(ctx *commandContext) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "home",
		Short: "Show trending, top rated and popular movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !plain && isTerminal(cmd.OutOrStdout()) {
				return ctx.runTUI(route.Home(), nil)
			}
			return ctx.printHome(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print tables instead of starting the browser")
	return cmd
}

func newExploreCommand(ctx *commandContext) *cobra.Command {
	var (
		plain    bool
		kind     string
		category string
		genre    string
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse a category, optionally filtered by genre",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelection(kind, category, genre)
			if err != nil {
				return err
			}
			if !plain && isTerminal(cmd.OutOrStdout()) {
				return ctx.runTUI(route.Explore(sel.Kind), &sel)
			}
			return ctx.printExplore(cmd.Context(), cmd.OutOrStdout(), sel)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print a table instead of starting the browser")
	cmd.Flags().StringVarP(&kind, "type", "t", "movie", "Media type: movie or tv")
	cmd.Flags().StringVar(&category, "category", "popular", "Category: popular, trending, top or mylist")
	cmd.Flags().StringVarP(&genre, "genre", "g", "", "Genre id or name")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		plain bool
		kind  string
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search movies or series by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			mediaKind, ok := domain.ParseMediaKind(kind)
			if !ok {
				return fmt.Errorf("unknown type %q (want movie or tv)", kind)
			}
			if !plain && isTerminal(cmd.OutOrStdout()) {
				return ctx.runTUIWith(route.Search(query), func(deps *tui.Deps) {
					deps.SearchKind = mediaKind
				})
			}
			return ctx.printSearch(cmd.Context(), cmd.OutOrStdout(), query, mediaKind)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print a table instead of starting the browser")
	cmd.Flags().StringVarP(&kind, "type", "t", "movie", "Media type: movie or tv")
	return cmd
}

// newDetailCommand builds the "movie" and "tv" commands
func newDetailCommand(ctx *commandContext, kind domain.MediaKind) *cobra.Command {
	var plain bool

	short := "Show movie details"
	if kind == domain.MediaKindTV {
		short = "Show series details"
	}
	cmd := &cobra.Command{
		Use:   string(kind) + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !plain && isTerminal(cmd.OutOrStdout()) {
				return ctx.runTUI(route.Detail(kind, id), nil)
			}
			return ctx.printDetail(cmd.Context(), cmd.OutOrStdout(), kind, id)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print details instead of starting the browser")
	return cmd
}

func newOpenCommand(ctx *commandContext) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "open PATH",
		Short: "Open a route such as /movie/550 or /explore?type=tv",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := route.Parse(args[0])
			if err != nil {
				return err
			}
			if !plain && isTerminal(cmd.OutOrStdout()) {
				return ctx.runTUI(r, nil)
			}

			out := cmd.OutOrStdout()
			switch r.View {
			case route.ViewExplore:
				kind := r.Kind
				if kind == "" {
					kind = domain.MediaKindMovie
				}
				return ctx.printExplore(cmd.Context(), out, catalog.Selection{Kind: kind, Category: domain.CategoryPopular})
			case route.ViewSearch:
				return ctx.printSearch(cmd.Context(), out, r.Query, domain.MediaKindMovie)
			case route.ViewDetail:
				return ctx.printDetail(cmd.Context(), out, r.Kind, r.ID)
			default:
				return ctx.printHome(cmd.Context(), out)
			}
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print instead of starting the browser")
	return cmd
}

func (c *commandContext) printHome(ctx context.Context, out io.Writer) error {
	client, err := c.client()
	if err != nil {
		return err
	}
	view, err := catalog.NewHome(client, c.logger).Load(ctx)
	if err != nil {
		return err
	}

	isFav := c.favoriteLookup()
	for i, carousel := range view.Carousels {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, carousel.Title)
		fmt.Fprintln(out, renderItems(carousel.Items, isFav))
	}
	return nil
}

func (c *commandContext) printExplore(ctx context.Context, out io.Writer, sel catalog.Selection) error {
	favs, err := c.openFavorites()
	if err != nil {
		return err
	}

	// My list is local and needs no api key
	var client domain.CatalogClient
	if sel.Category != domain.CategoryMyList {
		if client, err = c.client(); err != nil {
			return err
		}
	}

	explore := catalog.NewExplore(client, favs, c.logger)
	explore.SetSelection(sel)
	if sel.Category != domain.CategoryMyList {
		if notice := explore.Refresh(ctx); notice.IsError() {
			return errors.New(notice.Text)
		}
	}

	sel = explore.Selection()
	header := fmt.Sprintf("%s · %s", sel.Kind.Label(), sel.Category.Label())
	if sel.Category == domain.CategoryMyList {
		header = sel.Category.Label()
	} else if g, ok := domain.LookupGenre(sel.Genre); ok {
		header += " · " + g.Name
	}
	fmt.Fprintln(out, header)
	fmt.Fprintln(out, renderItems(explore.Displayed(), c.favoriteLookup()))
	return nil
}

func (c *commandContext) printSearch(ctx context.Context, out io.Writer, query string, kind domain.MediaKind) error {
	client, err := c.client()
	if err != nil {
		return err
	}
	favs, err := c.openFavorites()
	if err != nil {
		return err
	}

	search := catalog.NewSearch(client, favs, c.logger)
	if err := search.Run(ctx, query, kind); err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			return err
		}
		return fmt.Errorf("%s: %w", search.Err(), err)
	}

	if pinned := search.Pinned(); len(pinned) > 0 {
		fmt.Fprintln(out, "En tu lista")
		fmt.Fprintln(out, renderItems(pinned, nil))
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Resultados para %q\n", search.Query().Query)
	fmt.Fprintln(out, renderItems(search.Results(), c.favoriteLookup()))
	return nil
}

func (c *commandContext) printDetail(ctx context.Context, out io.Writer, kind domain.MediaKind, id int64) error {
	client, err := c.client()
	if err != nil {
		return err
	}
	view := catalog.NewDetail(client, c.logger).Load(ctx, kind, id)
	if view.Err != "" {
		return errors.New(view.Err)
	}
	writeDetail(out, view)
	return nil
}

// writeDetail prints a loaded detail view as plain text
func writeDetail(out io.Writer, view catalog.DetailView) {
	rec := view.Record
	title := rec.Title
	if len(rec.ReleaseDate) >= 4 {
		title += " (" + rec.ReleaseDate[:4] + ")"
	}
	fmt.Fprintln(out, title)

	meta := []string{rec.Kind.Label(), "★ " + rec.FormattedRating()}
	if names := rec.GenreNames(); len(names) > 0 {
		meta = append(meta, strings.Join(names, ", "))
	}
	fmt.Fprintln(out, strings.Join(meta, " · "))

	if rec.Overview != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, rec.Overview)
	}

	fmt.Fprintln(out)
	if view.Trailer != nil {
		fmt.Fprintf(out, "Tráiler: %s\n", catalog.TrailerURL(view.Trailer.Key))
	} else {
		fmt.Fprintln(out, "Sin tráiler disponible")
	}

	if len(view.Cast) > 0 {
		names := make([]string, 0, len(view.Cast))
		for _, m := range view.Cast {
			names = append(names, m.Name)
		}
		fmt.Fprintf(out, "Reparto: %s\n", strings.Join(names, ", "))
	}

	if len(rec.Seasons) > 0 {
		rows := make([][]string, 0, len(rec.Seasons))
		for _, s := range rec.Seasons {
			rows = append(rows, []string{s.Name, strconv.Itoa(s.EpisodeCount)})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable([]string{"Temporada", "Episodios"}, rows,
			[]columnAlignment{alignLeft, alignRight}))
	}
}

// favoriteLookup returns a marker function, or nil when favorites are unavailable
func (c *commandContext) favoriteLookup() func(domain.CatalogItem) bool {
	favs, err := c.openFavorites()
	if err != nil {
		c.logger.Warn("favorites unavailable", "error", err)
		return nil
	}
	return func(it domain.CatalogItem) bool {
		return favs.Contains(it.Kind, it.ID)
	}
}

func parseSelection(kind, category, genre string) (catalog.Selection, error) {
	k, ok := domain.ParseMediaKind(kind)
	if !ok {
		return catalog.Selection{}, fmt.Errorf("unknown type %q (want movie or tv)", kind)
	}
	c, ok := domain.ParseCategory(category)
	if !ok {
		return catalog.Selection{}, fmt.Errorf("unknown category %q", category)
	}
	g, err := parseGenre(genre)
	if err != nil {
		return catalog.Selection{}, err
	}
	return catalog.Selection{Kind: k, Category: c, Genre: g}, nil
}

// parseGenre accepts a genre id or a case-insensitive genre name
func parseGenre(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if id, err := strconv.Atoi(s); err == nil {
		if _, ok := domain.LookupGenre(id); !ok {
			return 0, fmt.Errorf("unknown genre id %d", id)
		}
		return id, nil
	}
	for _, g := range domain.Genres {
		if strings.EqualFold(g.Name, s) {
			return g.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown genre %q", s)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, s)
	}
	return id, nil
}
