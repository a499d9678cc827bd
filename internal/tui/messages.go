package tui

import (
	"github.com/scenra/scenra/internal/catalog"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// HomeLoadedMsg carries the home carousels or the failure that replaced them
type HomeLoadedMsg struct {
	View catalog.HomeView
	Err  error
}

// ListingLoadedMsg carries an explore listing tagged with its request
type ListingLoadedMsg struct {
	Result catalog.Result
}

// SearchResultsMsg carries search results tagged with their query
type SearchResultsMsg struct {
	Result catalog.SearchResult
}

// DetailLoadedMsg carries a detail record tagged with its item
type DetailLoadedMsg struct {
	Result catalog.DetailResult
}

// TrailerOpenedMsg signals that the trailer was handed to an external program
type TrailerOpenedMsg struct {
	URL string
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status line if no newer message replaced it
type ClearStatusMsg struct {
	Seq int
}
