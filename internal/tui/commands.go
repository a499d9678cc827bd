package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/scenra/scenra/internal/adapter"
	"github.com/scenra/scenra/internal/catalog"
)

// Command factories for async operations. Each fetch runs under its own
// timeout and returns a message tagged with the request it answers.

// LoadHomeCmd loads every home carousel
func LoadHomeCmd(home *catalog.Home, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		view, err := home.Load(ctx)
		return HomeLoadedMsg{View: view, Err: err}
	}
}

// FetchListingCmd loads the explore listing for req
func FetchListingCmd(explore *catalog.Explore, req catalog.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return ListingLoadedMsg{Result: explore.Fetch(ctx, req)}
	}
}

// SearchCmd runs a search query
func SearchCmd(search *catalog.Search, req catalog.SearchRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return SearchResultsMsg{Result: search.Fetch(ctx, req)}
	}
}

// FetchDetailCmd loads the detail record for req
func FetchDetailCmd(detail *catalog.Detail, req catalog.DetailRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return DetailLoadedMsg{Result: detail.Fetch(ctx, req)}
	}
}

// OpenTrailerCmd hands a trailer URL to an external program
func OpenTrailerCmd(opener *adapter.Opener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "No se pudo abrir el tráiler"}
		}
		return TrailerOpenedMsg{URL: url}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status seq after a delay
func ClearStatusCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
