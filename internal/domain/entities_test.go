package domain

import "testing"

func TestHasGenreTreatsMissingGenresAsNoMatch(t *testing.T) {
	item := CatalogItem{ID: 1, Kind: MediaKindMovie, GenreIDs: []int{28}}
	if item.HasGenre(28) {
		t.Fatal("expected item without genre data to match no genre")
	}

	item.HasGenres = true
	if !item.HasGenre(28) {
		t.Fatal("expected genre 28 to match")
	}
	if item.HasGenre(35) {
		t.Fatal("did not expect genre 35 to match")
	}
}

func TestCloneDoesNotShareGenreSlice(t *testing.T) {
	orig := CatalogItem{ID: 7, GenreIDs: []int{1, 2}, HasGenres: true}
	cp := orig.Clone()
	cp.GenreIDs[0] = 99
	if orig.GenreIDs[0] != 1 {
		t.Fatalf("clone mutated original genres: %v", orig.GenreIDs)
	}
}

func TestItemKeyDisambiguatesKinds(t *testing.T) {
	movie := CatalogItem{ID: 100, Kind: MediaKindMovie}.Key()
	series := CatalogItem{ID: 100, Kind: MediaKindTV}.Key()
	if movie == series {
		t.Fatal("movie and series with the same id must have different keys")
	}
	if got := series.String(); got != "tv:100" {
		t.Fatalf("unexpected key string %q", got)
	}
}

func TestFormatRatingOneDecimal(t *testing.T) {
	cases := map[float64]string{
		7.456: "7.5",
		8:     "8.0",
		0:     "0.0",
	}
	for in, want := range cases {
		if got := FormatRating(in); got != want {
			t.Errorf("FormatRating(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseCategoryAliases(t *testing.T) {
	for _, s := range []string{"top", "top_rated"} {
		if c, ok := ParseCategory(s); !ok || c != CategoryTopRated {
			t.Errorf("ParseCategory(%q) = %q, %v", s, c, ok)
		}
	}
	if _, ok := ParseCategory("upcoming"); ok {
		t.Error("expected unknown category to be rejected")
	}
}
