package service

import (
	"context"
	"sync"

	"github.com/cinelog-app/cinelog/internal/domain"
)

// fakeDirectory is a scriptable domain.MovieDirectory
type fakeDirectory struct {
	mu          sync.Mutex
	searchCalls []string
	fetchCalls  []string

	searchFn func(ctx context.Context, query string) ([]domain.SearchResult, error)
	fetchFn  func(ctx context.Context, id string) (*domain.MovieDetail, error)
}

func (f *fakeDirectory) SearchByTitle(ctx context.Context, query string) ([]domain.SearchResult, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, query)
	f.mu.Unlock()
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(ctx, query)
}

func (f *fakeDirectory) FetchByID(ctx context.Context, id string) (*domain.MovieDetail, error) {
	f.mu.Lock()
	f.fetchCalls = append(f.fetchCalls, id)
	f.mu.Unlock()
	if f.fetchFn == nil {
		return nil, &domain.NotFoundError{}
	}
	return f.fetchFn(ctx, id)
}

func (f *fakeDirectory) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searchCalls)
}

// memoryRepo is a domain.WatchedRepository that can be told to fail
type memoryRepo struct {
	saved   []domain.WatchedEntry
	saves   int
	failErr error
	loadErr error
}

func (r *memoryRepo) LoadWatched() ([]domain.WatchedEntry, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	out := make([]domain.WatchedEntry, len(r.saved))
	copy(out, r.saved)
	return out, nil
}

func (r *memoryRepo) SaveWatched(entries []domain.WatchedEntry) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.saves++
	r.saved = make([]domain.WatchedEntry, len(entries))
	copy(r.saved, entries)
	return nil
}

func (r *memoryRepo) Close() error { return nil }

func results(titles ...string) []domain.SearchResult {
	out := make([]domain.SearchResult, len(titles))
	for i, t := range titles {
		out[i] = domain.SearchResult{ID: "id-" + t, Title: t, Year: "2000"}
	}
	return out
}
