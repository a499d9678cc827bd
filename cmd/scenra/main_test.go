package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/scenra/scenra/internal/domain"
)

type cliTestEnv struct {
	configPath string
	dbPath     string
	server     *httptest.Server
}

// fakeTMDB answers the handful of endpoints the commands hit
func fakeTMDB(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/popular", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"page":1,"results":[
			{"id":550,"title":"Fight Club","poster_path":"/fc.jpg","vote_average":8.4,"genre_ids":[18]},
			{"id":13,"title":"Forrest Gump","poster_path":null,"vote_average":8.5,"genre_ids":[35,18]}
		]}`)
	})
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") != "dune" {
			fmt.Fprint(w, `{"page":1,"results":[]}`)
			return
		}
		fmt.Fprint(w, `{"page":1,"results":[
			{"id":438631,"title":"Dune","poster_path":"/d.jpg","vote_average":7.8,"genre_ids":[878]}
		]}`)
	})
	mux.HandleFunc("/movie/550", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":550,"title":"Fight Club","overview":"Una cinta sobre jabón.",
			"poster_path":"/fc.jpg","release_date":"1999-10-15","vote_average":8.4,
			"genres":[{"id":18,"name":"Drama"}],
			"credits":{"cast":[{"id":287,"name":"Brad Pitt","order":0},{"id":819,"name":"Edward Norton","order":1}]},
			"videos":{"results":[{"key":"qtRKdVHc-cE","type":"Trailer","site":"YouTube"}]}}`)
	})
	mux.HandleFunc("/movie/404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status_code":34,"status_message":"The resource you requested could not be found."}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	base := t.TempDir()
	srv := fakeTMDB(t)

	env := &cliTestEnv{
		configPath: filepath.Join(base, "config.yaml"),
		dbPath:     filepath.Join(base, "data", "scenra.db"),
		server:     srv,
	}
	content := fmt.Sprintf(
		"tmdb:\n  api_key: test\n  base_url: %q\nstorage:\n  path: %q\nlogging:\n  file: %q\n",
		srv.URL,
		env.dbPath,
		filepath.Join(base, "scenra.log"),
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, out)
	}
}

func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	prev := fs
	mem := afero.NewMemMapFs()
	fs = mem
	t.Cleanup(func() { fs = prev })
	return mem
}

func TestVersionSkipsConfig(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, filepath.Join(t.TempDir(), "missing", "nope.yaml"))
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "scenra "+Version)
}

func TestExplorePlain(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"explore", "--plain", "--type", "movie", "--category", "popular"}, env.configPath)
	if err != nil {
		t.Fatalf("explore: %v", err)
	}
	requireContains(t, out, "Fight Club")
	requireContains(t, out, "Forrest Gump")
	requireContains(t, out, "8.5")
	requireContains(t, out, "Sin imagen")
}

func TestExploreRejectsUnknownGenre(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"explore", "--plain", "--genre", "polka"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "unknown genre") {
		t.Fatalf("expected unknown genre error, got %v", err)
	}
}

func TestSearchPlain(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"search", "--plain", "dune"}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, `Resultados para "dune"`)
	requireContains(t, out, "438631")
}

func TestSearchEmptyResults(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"search", "--plain", "zzz"}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, "No se encontraron resultados.")
}

func TestMovieDetailPlain(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"movie", "--plain", "550"}, env.configPath)
	if err != nil {
		t.Fatalf("movie: %v", err)
	}
	requireContains(t, out, "Fight Club (1999)")
	requireContains(t, out, "https://www.youtube.com/watch?v=qtRKdVHc-cE")
	requireContains(t, out, "Brad Pitt, Edward Norton")
}

func TestMovieDetailNotFound(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"movie", "--plain", "404"}, env.configPath); err == nil {
		t.Fatal("expected an error for a missing movie")
	}
}

func TestMovieDetailRejectsBadID(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"movie", "--plain", "abc"}, env.configPath); err == nil {
		t.Fatal("expected invalid id error")
	}
}

func TestMyListAddExportImport(t *testing.T) {
	env := setupCLITestEnv(t)
	mem := useMemFs(t)

	out, _, err := runCLI(t, []string{"mylist", "ls"}, env.configPath)
	if err != nil {
		t.Fatalf("mylist ls: %v", err)
	}
	requireContains(t, out, "No se encontraron resultados.")

	if _, _, err := runCLI(t, []string{"mylist", "add", "movie", "550"}, env.configPath); err != nil {
		t.Fatalf("mylist add: %v", err)
	}

	out, _, err = runCLI(t, []string{"mylist", "add", "movie", "550"}, env.configPath)
	if err != nil {
		t.Fatalf("mylist add again: %v", err)
	}
	requireContains(t, out, "ya está en tu lista")

	out, _, err = runCLI(t, []string{"mylist", "export", "/backup/mylist.json"}, env.configPath)
	if err != nil {
		t.Fatalf("mylist export: %v", err)
	}
	requireContains(t, out, "Exported 1 items")
	if ok, _ := afero.Exists(mem, "/backup/mylist.json"); !ok {
		t.Fatal("export file not written")
	}

	out, _, err = runCLI(t, []string{"mylist", "rm", "movie", "550"}, env.configPath)
	if err != nil {
		t.Fatalf("mylist rm: %v", err)
	}
	requireContains(t, out, "eliminada de tu lista")

	out, _, err = runCLI(t, []string{"mylist", "import", "/backup/mylist.json"}, env.configPath)
	if err != nil {
		t.Fatalf("mylist import: %v", err)
	}
	requireContains(t, out, "Imported 1 items")

	out, _, err = runCLI(t, []string{"mylist"}, env.configPath)
	if err != nil {
		t.Fatalf("mylist: %v", err)
	}
	requireContains(t, out, "Fight Club")
	requireContains(t, out, "Películas")
}

func TestMyListRemoveMissing(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"mylist", "remove", "tv", "1399"}, env.configPath)
	if err != nil {
		t.Fatalf("mylist remove: %v", err)
	}
	requireContains(t, out, "no está en tu lista")
}

func TestParseGenre(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"28", 28, false},
		{"terror", 27, false},
		{"ACCIÓN", 28, false},
		{"4242", 0, true},
		{"polka", 0, true},
	}
	for _, tt := range tests {
		got, err := parseGenre(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseGenre(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseGenre(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseSelection(t *testing.T) {
	sel, err := parseSelection("tv", "top", "18")
	if err != nil {
		t.Fatalf("parseSelection: %v", err)
	}
	if sel.Kind != domain.MediaKindTV || sel.Category != domain.CategoryTopRated || sel.Genre != 18 {
		t.Fatalf("unexpected selection %+v", sel)
	}

	if _, err := parseSelection("anime", "popular", ""); err == nil {
		t.Fatal("expected unknown type error")
	}
	if _, err := parseSelection("movie", "latest", ""); err == nil {
		t.Fatal("expected unknown category error")
	}
}

func TestRenderItems(t *testing.T) {
	items := []domain.CatalogItem{
		{ID: 1, Kind: domain.MediaKindMovie, Title: "Alien", PosterPath: "/a.jpg", VoteAverage: 8.1},
		{ID: 2, Kind: domain.MediaKindTV, Title: "Dark", VoteAverage: 8.4},
	}
	out := renderItems(items, func(it domain.CatalogItem) bool { return it.ID == 2 })

	requireContains(t, out, "Alien")
	requireContains(t, out, "Series")
	requireContains(t, out, "Sin imagen")
	if strings.Count(out, "♥") != 1 {
		t.Fatalf("expected exactly one favorite mark:\n%s", out)
	}
	if got := renderItems(nil, nil); got != "No se encontraron resultados." {
		t.Fatalf("unexpected empty rendering %q", got)
	}
}

func TestOpenRoutePlain(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"open", "--plain", "/movie/550"}, env.configPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	requireContains(t, out, "Fight Club (1999)")

	if _, _, err := runCLI(t, []string{"open", "--plain", "/nowhere"}, env.configPath); err == nil {
		t.Fatal("expected unknown route error")
	}
}

func TestExploreMyListWithoutAPIKey(t *testing.T) {
	t.Setenv("SCENRA_TMDB_API_KEY", "")
	t.Setenv("TMDB_API_KEY", "")
	base := t.TempDir()
	configPath := filepath.Join(base, "config.yaml")
	content := fmt.Sprintf(
		"tmdb:\n  base_url: %q\nstorage:\n  path: %q\nlogging:\n  file: %q\n",
		"http://127.0.0.1:1",
		filepath.Join(base, "scenra.db"),
		filepath.Join(base, "scenra.log"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, _, err := runCLI(t, []string{"explore", "--plain", "--category", "mylist"}, configPath)
	if err != nil {
		t.Fatalf("explore mylist: %v", err)
	}
	requireContains(t, out, "Mi lista")
	requireContains(t, out, "No se encontraron resultados.")
}
