package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/scenra/scenra/internal/domain"
	"github.com/scenra/scenra/internal/store"
)

func TestSearchBlankQuery(t *testing.T) {
	client := newFakeClient()
	s := NewSearch(client, nil, nil)

	if _, ok := s.Submit("   ", domain.MediaKindMovie); ok {
		t.Fatal("blank query should not submit")
	}
	if err := s.Run(context.Background(), "", ""); !errors.Is(err, domain.ErrEmptyQuery) {
		t.Fatalf("Run blank = %v", err)
	}
	if client.callCount() != 0 {
		t.Fatal("blank query reached the client")
	}
}

func TestSearchTrimsAndKeepsOrder(t *testing.T) {
	client := newFakeClient()
	client.search["matrix"] = []domain.CatalogItem{
		item(3, domain.MediaKindMovie, "Matrix Reloaded"),
		item(1, domain.MediaKindMovie, "Matrix"),
	}

	s := NewSearch(client, nil, nil)
	if err := s.Run(context.Background(), "  matrix ", ""); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := ids(s.Results()); !equalIDs(got, 3, 1) {
		t.Fatalf("results = %v", got)
	}
	if s.Query() != (SearchRequest{Query: "matrix", Kind: domain.MediaKindMovie}) {
		t.Fatalf("query = %+v", s.Query())
	}
}

func TestSearchFailure(t *testing.T) {
	s := NewSearch(newFakeClient(), nil, nil)
	err := s.Run(context.Background(), "nada", domain.MediaKindMovie)
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("err = %v", err)
	}
	if s.Err() != SearchErrorText || len(s.Results()) != 0 {
		t.Fatalf("err text %q, results %v", s.Err(), s.Results())
	}
}

func TestSearchDiscardsStaleQuery(t *testing.T) {
	client := newFakeClient()
	client.search["a"] = []domain.CatalogItem{item(1, domain.MediaKindMovie, "A")}
	client.search["ab"] = []domain.CatalogItem{item(2, domain.MediaKindMovie, "AB")}

	s := NewSearch(client, nil, nil)
	ctx := context.Background()
	first, _ := s.Submit("a", domain.MediaKindMovie)
	second, _ := s.Submit("ab", domain.MediaKindMovie)

	s.Apply(s.Fetch(ctx, second))
	if s.Apply(s.Fetch(ctx, first)) {
		t.Fatal("older query overwrote newer results")
	}
	if got := ids(s.Results()); !equalIDs(got, 2) {
		t.Fatalf("results = %v", got)
	}
}

func TestSearchPinned(t *testing.T) {
	favs := store.OpenMemory(nil)
	_ = favs.Add(item(9, domain.MediaKindTV, "La casa de papel"))
	_ = favs.Add(item(8, domain.MediaKindMovie, "Interstellar"))

	client := newFakeClient()
	client.search["casa"] = nil

	s := NewSearch(client, favs, nil)
	if s.Pinned() != nil {
		t.Fatal("no query, no pinned matches")
	}
	_ = s.Run(context.Background(), "casa", domain.MediaKindMovie)

	pinned := s.Pinned()
	if len(pinned) != 1 || pinned[0].ID != 9 {
		t.Fatalf("pinned = %+v", pinned)
	}
}
