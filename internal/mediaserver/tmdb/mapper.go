package tmdb

import (
	"github.com/scenra/scenra/internal/domain"
)

// MapItems converts listing entries to catalog items, preserving order
func MapItems(items []Item, kind domain.MediaKind) []domain.CatalogItem {
	out := make([]domain.CatalogItem, 0, len(items))
	for _, it := range items {
		out = append(out, NormalizeItem(it, kind))
	}
	return out
}

// NormalizeItem maps one listing entry onto the unified item shape.
// The title comes from "title" and falls back to "name" for series.
func NormalizeItem(it Item, kind domain.MediaKind) domain.CatalogItem {
	item := domain.CatalogItem{
		ID:          it.ID,
		Kind:        kind,
		Title:       pickTitle(it.Title, it.Name),
		PosterPath:  deref(it.PosterPath),
		VoteAverage: it.VoteAverage,
	}

	// Trending payloads tag each entry; trust the tag over the endpoint
	if k, ok := domain.ParseMediaKind(it.MediaType); ok {
		item.Kind = k
	}

	if it.GenreIDs != nil {
		item.HasGenres = true
		item.GenreIDs = make([]int, len(*it.GenreIDs))
		copy(item.GenreIDs, *it.GenreIDs)
	}
	return item
}

// NormalizeDetail maps a details payload onto a DetailRecord
func NormalizeDetail(d Details, kind domain.MediaKind) domain.DetailRecord {
	rec := domain.DetailRecord{
		CatalogItem: domain.CatalogItem{
			ID:          d.ID,
			Kind:        kind,
			Title:       pickTitle(d.Title, d.Name),
			PosterPath:  deref(d.PosterPath),
			VoteAverage: d.VoteAverage,
		},
		Overview:     d.Overview,
		ReleaseDate:  d.ReleaseDate,
		SeasonCount:  d.NumberOfSeasons,
		EpisodeCount: d.NumberOfEpisodes,
	}
	if rec.ReleaseDate == "" {
		rec.ReleaseDate = d.FirstAirDate
	}

	if d.Genres != nil {
		rec.HasGenres = true
		rec.GenreIDs = make([]int, 0, len(d.Genres))
		rec.Genres = make([]domain.Genre, 0, len(d.Genres))
		for _, g := range d.Genres {
			rec.GenreIDs = append(rec.GenreIDs, g.ID)
			rec.Genres = append(rec.Genres, domain.Genre{ID: g.ID, Name: g.Name})
		}
	}

	if d.Credits != nil {
		rec.Cast = make([]domain.CastMember, 0, len(d.Credits.Cast))
		for _, c := range d.Credits.Cast {
			rec.Cast = append(rec.Cast, domain.CastMember{
				ID:          c.ID,
				Name:        c.Name,
				ProfilePath: deref(c.ProfilePath),
			})
		}
	}

	if d.Videos != nil {
		rec.Videos = make([]domain.Video, 0, len(d.Videos.Results))
		for _, v := range d.Videos.Results {
			rec.Videos = append(rec.Videos, domain.Video{Key: v.Key, Type: v.Type, Site: v.Site})
		}
	}

	if len(d.Seasons) > 0 {
		rec.Seasons = make([]domain.Season, 0, len(d.Seasons))
		for _, s := range d.Seasons {
			rec.Seasons = append(rec.Seasons, domain.Season{
				ID:           s.ID,
				Name:         s.Name,
				EpisodeCount: s.EpisodeCount,
				PosterPath:   deref(s.PosterPath),
				Overview:     s.Overview,
			})
		}
	}

	return rec
}

func pickTitle(title, name string) string {
	if title != "" {
		return title
	}
	return name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
