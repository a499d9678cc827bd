package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/scenra/scenra/internal/domain"
)

func detailRecord(kind domain.MediaKind, id int64, videos []domain.Video, castSize int) *domain.DetailRecord {
	rec := &domain.DetailRecord{
		CatalogItem: item(id, kind, "Registro"),
		Overview:    "Sinopsis",
		Videos:      videos,
	}
	for i := 0; i < castSize; i++ {
		rec.Cast = append(rec.Cast, domain.CastMember{ID: int64(i + 1), Name: fmt.Sprintf("Actor %d", i+1)})
	}
	return rec
}

func TestDetailTrailerAndCastCap(t *testing.T) {
	client := newFakeClient()
	client.details[domain.ItemKey{Kind: domain.MediaKindMovie, ID: 550}] = detailRecord(domain.MediaKindMovie, 550, []domain.Video{
		{Key: "teaser", Type: "Teaser", Site: "YouTube"},
		{Key: "vimeo", Type: "Trailer", Site: "Vimeo"},
		{Key: "abc123", Type: "Trailer", Site: "YouTube"},
		{Key: "second", Type: "Trailer", Site: "YouTube"},
	}, 14)

	d := NewDetail(client, nil)
	view := d.Load(context.Background(), domain.MediaKindMovie, 550)

	if view.Err != "" || view.Record == nil {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.Trailer == nil || view.Trailer.Key != "abc123" {
		t.Fatalf("trailer = %+v, want first YouTube trailer", view.Trailer)
	}
	if TrailerURL(view.Trailer.Key) != "https://www.youtube.com/watch?v=abc123" {
		t.Fatalf("trailer url = %s", TrailerURL(view.Trailer.Key))
	}
	if len(view.Cast) != MaxCast || view.Cast[9].Name != "Actor 10" {
		t.Fatalf("cast = %d entries", len(view.Cast))
	}
	if len(view.Record.Cast) != 14 {
		t.Fatal("capping must not truncate the fetched record")
	}
}

func TestDetailWithoutTrailerIsNotAnError(t *testing.T) {
	client := newFakeClient()
	client.details[domain.ItemKey{Kind: domain.MediaKindTV, ID: 7}] = detailRecord(domain.MediaKindTV, 7, []domain.Video{
		{Key: "clip", Type: "Clip", Site: "YouTube"},
	}, 2)

	view := NewDetail(client, nil).Load(context.Background(), domain.MediaKindTV, 7)
	if view.Err != "" {
		t.Fatalf("unexpected error %q", view.Err)
	}
	if view.Trailer != nil {
		t.Fatalf("expected no trailer, got %+v", view.Trailer)
	}
	if len(view.Cast) != 2 {
		t.Fatalf("cast = %d", len(view.Cast))
	}
}

func TestDetailFailureIsTerminal(t *testing.T) {
	tests := []struct {
		kind domain.MediaKind
		want string
	}{
		{domain.MediaKindMovie, "Error cargando detalles de la película"},
		{domain.MediaKindTV, "Error cargando detalles de la serie"},
	}
	for _, tt := range tests {
		view := NewDetail(newFakeClient(), nil).Load(context.Background(), tt.kind, 404)
		if view.Err != tt.want {
			t.Errorf("%s error = %q, want %q", tt.kind, view.Err, tt.want)
		}
		if view.Record != nil || view.Trailer != nil || view.Cast != nil {
			t.Errorf("%s failure rendered partial data: %+v", tt.kind, view)
		}
	}
}

func TestDetailDiscardsStaleResult(t *testing.T) {
	client := newFakeClient()
	client.details[domain.ItemKey{Kind: domain.MediaKindMovie, ID: 1}] = detailRecord(domain.MediaKindMovie, 1, nil, 0)
	client.details[domain.ItemKey{Kind: domain.MediaKindMovie, ID: 2}] = detailRecord(domain.MediaKindMovie, 2, nil, 0)

	d := NewDetail(client, nil)
	ctx := context.Background()
	first := d.Open(domain.MediaKindMovie, 1)
	second := d.Open(domain.MediaKindMovie, 2)

	if !d.Apply(d.Fetch(ctx, second)) {
		t.Fatal("current result rejected")
	}
	if d.Apply(d.Fetch(ctx, first)) {
		t.Fatal("stale result accepted")
	}
	if d.View().Record.ID != 2 {
		t.Fatalf("record = %d", d.View().Record.ID)
	}
}

func TestSeasonAccordion(t *testing.T) {
	var a SeasonAccordion
	if _, open := a.Expanded(); open {
		t.Fatal("accordion should start collapsed")
	}

	a.Toggle(0)
	a.Toggle(2)
	if i, open := a.Expanded(); !open || i != 2 {
		t.Fatalf("expanded = %d %v, want only season 2", i, open)
	}
	if a.IsExpanded(0) {
		t.Fatal("opening season 2 must close season 0")
	}

	a.Toggle(2)
	if _, open := a.Expanded(); open {
		t.Fatal("toggling the open season should collapse it")
	}
}

func TestSeasonAccordionResetsForNewItem(t *testing.T) {
	d := NewDetail(newFakeClient(), nil)
	d.Open(domain.MediaKindTV, 1)
	d.Seasons.Toggle(3)

	d.Open(domain.MediaKindTV, 1)
	if !d.Seasons.IsExpanded(3) {
		t.Fatal("revisiting the same series should keep the open season")
	}

	d.Open(domain.MediaKindTV, 2)
	if _, open := d.Seasons.Expanded(); open {
		t.Fatal("visiting another series should collapse every season")
	}
}
