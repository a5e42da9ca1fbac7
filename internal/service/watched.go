package service

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cinelog-app/cinelog/internal/domain"
)

// DefaultMaxStars is the size of the rating scale
const DefaultMaxStars = 10

// WatchedService owns the watched list and is its only writer.
// Every mutation persists the whole list before returning.
type WatchedService struct {
	repo     domain.WatchedRepository
	logger   *slog.Logger
	maxStars int

	mu      sync.RWMutex
	entries []domain.WatchedEntry
}

// NewWatchedService loads the persisted list from repo
func NewWatchedService(repo domain.WatchedRepository, maxStars int, logger *slog.Logger) (*WatchedService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if maxStars <= 0 {
		maxStars = DefaultMaxStars
	}

	entries, err := repo.LoadWatched()
	if err != nil {
		return nil, fmt.Errorf("failed to load watched list: %w", err)
	}
	logger.Debug("loaded watched list", "count", len(entries))

	return &WatchedService{
		repo:     repo,
		logger:   logger,
		maxStars: maxStars,
		entries:  dedupe(entries),
	}, nil
}

// MaxStars returns the upper bound of the rating scale
func (s *WatchedService) MaxStars() int {
	return s.maxStars
}

// Add appends entry and persists the list.
// Returns domain.ErrDuplicate if the id is already present.
func (s *WatchedService) Add(entry domain.WatchedEntry) error {
	if entry.UserRating < 1 || entry.UserRating > s.maxStars {
		return fmt.Errorf("%w: %d (must be 1-%d)", domain.ErrInvalidRating, entry.UserRating, s.maxStars)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(entry.ID) >= 0 {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, entry.ID)
	}

	next := make([]domain.WatchedEntry, len(s.entries), len(s.entries)+1)
	copy(next, s.entries)
	next = append(next, entry)

	if err := s.repo.SaveWatched(next); err != nil {
		return fmt.Errorf("failed to save watched list: %w", err)
	}
	s.entries = next
	s.logger.Info("added to watched list", "id", entry.ID, "title", entry.Title, "rating", entry.UserRating)
	return nil
}

// Remove deletes the entry with id and persists the list.
// Removing an absent id is a no-op and reports false.
func (s *WatchedService) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := make([]domain.WatchedEntry, 0, len(s.entries)-1)
	next = append(next, s.entries[:i]...)
	next = append(next, s.entries[i+1:]...)

	if err := s.repo.SaveWatched(next); err != nil {
		return false, fmt.Errorf("failed to save watched list: %w", err)
	}
	s.entries = next
	s.logger.Info("removed from watched list", "id", id)
	return true, nil
}

// Entries returns a copy of the list in insertion order
func (s *WatchedService) Entries() []domain.WatchedEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.WatchedEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry with id
func (s *WatchedService) Get(id string) (domain.WatchedEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.entries[i], true
	}
	return domain.WatchedEntry{}, false
}

// Contains reports whether id is on the list
func (s *WatchedService) Contains(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Len returns the number of entries
func (s *WatchedService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Summary computes aggregate statistics over the current list
func (s *WatchedService) Summary() domain.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(s.entries)
}

// Summarize computes aggregate statistics; an empty list yields zero averages
func Summarize(entries []domain.WatchedEntry) domain.Summary {
	n := len(entries)
	if n == 0 {
		return domain.Summary{}
	}

	ratings := make([]float64, n)
	runtimes := make([]float64, n)
	critics := make([]float64, n)
	for i, e := range entries {
		ratings[i] = float64(e.UserRating)
		runtimes[i] = float64(e.RuntimeMinutes)
		critics[i] = e.CriticRating
	}

	return domain.Summary{
		Count:               n,
		AverageUserRating:   mean(ratings),
		AverageRuntime:      mean(runtimes),
		AverageCriticRating: mean(critics),
	}
}

// mean sums first and divides once
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func (s *WatchedService) indexOf(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// dedupe keeps the first entry per id; older snapshots may carry duplicates
func dedupe(entries []domain.WatchedEntry) []domain.WatchedEntry {
	seen := make(map[string]bool, len(entries))
	out := make([]domain.WatchedEntry, 0, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}
