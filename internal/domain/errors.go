package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrFetch matches every *FetchError via errors.Is
	ErrFetch = errors.New("catalog fetch failed")

	// ErrEmptyQuery indicates a search was submitted with blank text
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrInvalidID indicates a non-positive or unparseable item id
	ErrInvalidID = errors.New("invalid item id")

	// ErrUnknownRoute indicates a path that maps to no view
	ErrUnknownRoute = errors.New("unknown route")
)

// FetchError is returned for any failed provider call.
// Op is the human-readable operation label, e.g. "popular movies".
type FetchError struct {
	Op     string
	Status int // HTTP status, 0 when no response was received
	Err    error
}

func (e *FetchError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("fetch %s: status %d: %v", e.Op, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("fetch %s: status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
	}
	return "fetch " + e.Op
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFetch) true for every FetchError
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// PersistenceParseError reports an unreadable favorites payload.
// The store swallows it and starts empty.
type PersistenceParseError struct {
	Err error
}

func (e *PersistenceParseError) Error() string {
	return "parse persisted favorites: " + e.Err.Error()
}

func (e *PersistenceParseError) Unwrap() error { return e.Err }
