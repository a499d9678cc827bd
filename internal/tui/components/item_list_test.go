package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/scenra/scenra/internal/domain"
)

func sampleItems() []domain.CatalogItem {
	return []domain.CatalogItem{
		{ID: 1, Kind: domain.MediaKindMovie, Title: "Alien", PosterPath: "/a.jpg", VoteAverage: 8.46},
		{ID: 2, Kind: domain.MediaKindMovie, Title: "Amélie"},
		{ID: 3, Kind: domain.MediaKindMovie, Title: "Blade Runner", PosterPath: "/b.jpg"},
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestItemListNavigation(t *testing.T) {
	l := NewItemList()
	l.SetSize(80, 10)
	l.SetItems(sampleItems())

	l.Update(keyMsg("down"))
	l.Update(keyMsg("down"))
	l.Update(keyMsg("down"))
	if got, _ := l.Selected(); got.ID != 3 {
		t.Fatalf("selected %d, want cursor clamped at the last item", got.ID)
	}
	l.Update(keyMsg("up"))
	if got, _ := l.Selected(); got.ID != 2 {
		t.Fatalf("selected %d", got.ID)
	}
}

func TestItemListFilter(t *testing.T) {
	l := NewItemList()
	l.SetSize(80, 10)
	l.SetItems(sampleItems())

	l.SetFilter("blade")
	if l.Len() != 1 {
		t.Fatalf("filtered to %d items", l.Len())
	}
	if got, _ := l.Selected(); got.ID != 3 {
		t.Fatalf("selected %d", got.ID)
	}
	if !strings.Contains(l.View(nil), "[1/3]") {
		t.Fatal("filter bar should show the match count")
	}

	l.SetFilter("zzz")
	if _, ok := l.Selected(); ok {
		t.Fatal("no match should select nothing")
	}

	l.ClearFilter()
	if l.Len() != 3 || l.IsFiltering() {
		t.Fatal("clearing the filter should restore every item")
	}
}

func TestItemListFilterTyping(t *testing.T) {
	l := NewItemList()
	l.SetSize(80, 10)
	l.SetItems(sampleItems())

	l.StartFilter()
	for _, r := range "bla" {
		l.Update(keyMsg(string(r)))
	}
	if !l.IsFilterTyping() || l.Len() != 1 {
		t.Fatalf("typing filter: typing=%v len=%d", l.IsFilterTyping(), l.Len())
	}
	l.Update(keyMsg("esc"))
	if l.IsFiltering() || l.Len() != 3 {
		t.Fatal("esc should close the filter")
	}
}

func TestItemListReplaceKeepsCursor(t *testing.T) {
	l := NewItemList()
	l.SetSize(80, 10)
	l.SetItems(sampleItems())
	l.Update(keyMsg("down"))
	l.Update(keyMsg("down"))

	l.Replace(sampleItems()[:2])
	if l.Cursor() != 1 {
		t.Fatalf("cursor = %d, want clamped to the new last row", l.Cursor())
	}
}

func TestItemListRendersRatingAndPlaceholder(t *testing.T) {
	l := NewItemList()
	l.SetSize(80, 10)
	l.SetItems(sampleItems())

	out := l.View(func(it domain.CatalogItem) bool { return it.ID == 1 })
	if !strings.Contains(out, "8.5") {
		t.Fatal("rating should render with one decimal")
	}
	if strings.Count(out, PosterPlaceholder) != 1 {
		t.Fatal("only the item without poster should show the placeholder")
	}
	if !strings.Contains(out, "♥") {
		t.Fatal("favorites should be marked")
	}
}

func TestItemListEmpty(t *testing.T) {
	l := NewItemList()
	if _, ok := l.Selected(); ok {
		t.Fatal("empty list has no selection")
	}
	if !strings.Contains(l.View(nil), "No se encontraron resultados") {
		t.Fatal("empty list should say so")
	}
}
