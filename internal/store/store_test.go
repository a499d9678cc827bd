package store

import (
	"path/filepath"
	"testing"

	"github.com/scenra/scenra/internal/domain"
	"github.com/spf13/afero"
	bolt "go.etcd.io/bbolt"
)

func movie(id int64, title string, genres ...int) domain.CatalogItem {
	return domain.CatalogItem{
		ID:          id,
		Kind:        domain.MediaKindMovie,
		Title:       title,
		VoteAverage: 7.5,
		GenreIDs:    genres,
		HasGenres:   genres != nil,
	}
}

func openTemp(t *testing.T) (*Favorites, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenra.db")
	f, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f, path
}

func writeRaw(t *testing.T, path string, payload []byte) {
	t.Helper()
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		t.Fatalf("bolt open: %v", err)
	}
	defer db.Close()
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketFavorites)
		if err != nil {
			return err
		}
		return b.Put(keyMyList, payload)
	})
	if err != nil {
		t.Fatalf("bolt put: %v", err)
	}
}

func TestAddRemoveRestoresState(t *testing.T) {
	f, _ := openTemp(t)
	if err := f.Add(movie(1, "Dune", 878)); err != nil {
		t.Fatal(err)
	}

	before := f.Items()
	if err := f.Add(movie(2, "Alien", 27)); err != nil {
		t.Fatal(err)
	}
	if err := f.Remove(domain.MediaKindMovie, 2); err != nil {
		t.Fatal(err)
	}

	after := f.Items()
	if len(after) != len(before) || after[0].ID != before[0].ID {
		t.Fatalf("add+remove changed state: before=%v after=%v", before, after)
	}
}

func TestAddIsIdempotentAndKeepsPosition(t *testing.T) {
	f := OpenMemory(nil)
	_ = f.Add(movie(1, "Dune"))
	_ = f.Add(movie(2, "Alien"))
	_ = f.Add(movie(1, "Dune: Part One"))

	items := f.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != 1 || items[0].Title != "Dune: Part One" {
		t.Fatalf("expected overwrite in place, got %+v", items[0])
	}
}

func TestKindDisambiguatesIDs(t *testing.T) {
	f := OpenMemory(nil)
	_ = f.Add(movie(100, "Movie 100"))
	_ = f.Add(domain.CatalogItem{ID: 100, Kind: domain.MediaKindTV, Title: "Show 100"})

	if f.Len() != 2 {
		t.Fatalf("expected movie and series with same id to coexist, got %d", f.Len())
	}
	_ = f.Remove(domain.MediaKindTV, 100)
	if !f.Contains(domain.MediaKindMovie, 100) || f.Contains(domain.MediaKindTV, 100) {
		t.Fatal("remove affected the wrong kind")
	}
}

func TestToggle(t *testing.T) {
	f := OpenMemory(nil)
	it := movie(5, "Heat")

	added, err := f.Toggle(it)
	if err != nil || !added || !f.Contains(domain.MediaKindMovie, 5) {
		t.Fatalf("first toggle: added=%v err=%v", added, err)
	}
	added, err = f.Toggle(it)
	if err != nil || added || f.Contains(domain.MediaKindMovie, 5) {
		t.Fatalf("second toggle: added=%v err=%v", added, err)
	}
}

func TestItemsAreCopies(t *testing.T) {
	f := OpenMemory(nil)
	it := movie(1, "Dune", 878, 12)
	_ = f.Add(it)

	it.GenreIDs[0] = 0
	got := f.Items()
	if got[0].GenreIDs[0] != 878 {
		t.Fatal("store shares genre slice with caller input")
	}

	got[0].GenreIDs[1] = 0
	if f.Items()[0].GenreIDs[1] != 12 {
		t.Fatal("store shares genre slice with returned items")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenra.db")
	f, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = f.Add(movie(1, "Dune", 878))
	_ = f.Add(domain.CatalogItem{ID: 7, Kind: domain.MediaKindTV, Title: "Dark"})
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	items := reopened.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 persisted items, got %d", len(items))
	}
	if items[0].Title != "Dune" || !items[0].HasGenre(878) {
		t.Fatalf("unexpected first item %+v", items[0])
	}
	if items[1].Kind != domain.MediaKindTV || items[1].HasGenres {
		t.Fatalf("unexpected second item %+v", items[1])
	}
}

func TestCorruptPayloadLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenra.db")
	writeRaw(t, path, []byte("{not json"))

	f, err := Open(path, nil)
	if err != nil {
		t.Fatalf("corrupt payload must not fail Open: %v", err)
	}
	defer f.Close()

	if f.Len() != 0 {
		t.Fatalf("expected empty set, got %d", f.Len())
	}
	if err := f.Add(movie(1, "Dune")); err != nil {
		t.Fatalf("store should remain writable: %v", err)
	}
}

func TestLegacyArrayPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenra.db")
	writeRaw(t, path, []byte(`[{"id":3,"title":"Up","vote_average":8.2,"genre_ids":[16]}]`))

	f, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	items := f.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 legacy item, got %d", len(items))
	}
	if items[0].Kind != domain.MediaKindMovie || !items[0].HasGenre(16) {
		t.Fatalf("legacy item not normalized: %+v", items[0])
	}
}

func TestLegacyArrayInfersSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenra.db")
	writeRaw(t, path, []byte(`[
		{"id":1399,"name":"Juego de tronos","title":"Juego de tronos","first_air_date":"2011-04-17","genre_ids":[18]},
		{"id":66732,"name":"Stranger Things","vote_average":8.6},
		{"id":550,"title":"El club de la lucha","release_date":"1999-10-15"}
	]`))

	f, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	items := f.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 legacy items, got %d", len(items))
	}
	if items[0].Kind != domain.MediaKindTV || !f.Contains(domain.MediaKindTV, 1399) {
		t.Fatalf("series with first_air_date loaded as %q", items[0].Kind)
	}
	if items[1].Kind != domain.MediaKindTV || items[1].Title != "Stranger Things" {
		t.Fatalf("series with only a name loaded as %+v", items[1])
	}
	if items[2].Kind != domain.MediaKindMovie {
		t.Fatalf("movie loaded as %q", items[2].Kind)
	}

	added, err := f.Toggle(domain.CatalogItem{ID: 1399, Kind: domain.MediaKindTV, Title: "Juego de tronos"})
	if err != nil || added {
		t.Fatalf("toggling a migrated series should remove it: added=%v err=%v", added, err)
	}
}

func TestFutureSchemaVersionIsDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenra.db")
	writeRaw(t, path, []byte(`{"version":99,"items":[{"id":1,"media_type":"movie","title":"X"}]}`))

	f, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	if f.Len() != 0 {
		t.Fatalf("expected unknown version to load empty, got %d", f.Len())
	}
}

func TestFind(t *testing.T) {
	f := OpenMemory(nil)
	_ = f.Add(movie(1, "El Padrino"))
	_ = f.Add(movie(2, "Amélie"))
	_ = f.Add(movie(3, "Parásitos"))

	got := f.Find("amelie")
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected accent-insensitive match on Amélie, got %+v", got)
	}
	if f.Find("  ") != nil {
		t.Fatal("blank query should match nothing")
	}
}

func TestExportImport(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := OpenMemory(nil)
	_ = src.Add(movie(1, "Dune", 878))
	_ = src.Add(domain.CatalogItem{ID: 9, Kind: domain.MediaKindTV, Title: "Dark"})

	n, err := src.Export(fs, "/backup/mylist.json")
	if err != nil || n != 2 {
		t.Fatalf("Export: n=%d err=%v", n, err)
	}

	dst := OpenMemory(nil)
	_ = dst.Add(movie(4, "Heat"))
	n, err = dst.Import(fs, "/backup/mylist.json")
	if err != nil || n != 2 {
		t.Fatalf("Import: n=%d err=%v", n, err)
	}

	items := dst.Items()
	if len(items) != 3 || items[0].ID != 4 || items[2].Kind != domain.MediaKindTV {
		t.Fatalf("unexpected merged items %+v", items)
	}
}

func TestImportCountsOnlyMergedItems(t *testing.T) {
	fs := afero.NewMemMapFs()
	payload := `[{"id":7,"media_type":"movie","title":"Se7en"},{"id":0,"media_type":"movie","title":"Nada"},{"id":-3,"media_type":"tv","title":"Menos"}]`
	_ = afero.WriteFile(fs, "in.json", []byte(payload), 0644)

	f := OpenMemory(nil)
	n, err := f.Import(fs, "in.json")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 1 || f.Len() != 1 {
		t.Fatalf("expected 1 merged item, got n=%d len=%d", n, f.Len())
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "bad.json", []byte("nope"), 0644)

	f := OpenMemory(nil)
	if _, err := f.Import(fs, "bad.json"); err == nil {
		t.Fatal("expected parse error")
	}
	if f.Len() != 0 {
		t.Fatal("failed import must not change the set")
	}
}
