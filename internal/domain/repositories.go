package domain

import (
	"context"
)

// MovieDirectory is the remote movie database.
// The context is the per-request cancellation token: cancelling it aborts the
// transport and the call returns ErrCancelled.
type MovieDirectory interface {
	// SearchByTitle returns movies matching the title.
	// An empty query returns (nil, nil) without contacting the directory.
	SearchByTitle(ctx context.Context, query string) ([]SearchResult, error)

	// FetchByID returns the full record for one movie
	FetchByID(ctx context.Context, id string) (*MovieDetail, error)
}

// WatchedRepository persists the watched list as a single snapshot.
// Save always receives the complete sequence.
type WatchedRepository interface {
	LoadWatched() ([]WatchedEntry, error)
	SaveWatched(entries []WatchedEntry) error
	Close() error
}
