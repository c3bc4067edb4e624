package engine

import "errors"

// Sentinel errors surfaced by Engine's search-control methods, named after
// spec.md §7's error kinds so the protocol layer can map them directly onto
// its own typed errors.
var (
	// ErrEngineBusy is returned by StartSearch when a search is already in
	// progress on this Engine.
	ErrEngineBusy = errors.New("engine: search already in progress")

	// ErrNoActiveSearch is returned by Stop when no search is running.
	ErrNoActiveSearch = errors.New("engine: no search in progress")
)
