package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/cinelog-app/cinelog/internal/domain"
)

// SearchState is the lifecycle state of the search session
type SearchState int

const (
	SearchIdle SearchState = iota
	SearchLoading
	SearchSuccess
	SearchError
)

func (s SearchState) String() string {
	switch s {
	case SearchIdle:
		return "idle"
	case SearchLoading:
		return "loading"
	case SearchSuccess:
		return "success"
	case SearchError:
		return "error"
	default:
		return "unknown"
	}
}

// SearchRequest is one issued search. Pass it to Execute.
type SearchRequest struct {
	Seq   uint64
	Query string
	ctx   context.Context
}

// SearchOutcome is the raw result of executing a SearchRequest
type SearchOutcome struct {
	Seq     uint64
	Query   string
	Results []domain.SearchResult
	Err     error
}

// SearchSnapshot is a read-only view of the session state
type SearchSnapshot struct {
	Query   string
	State   SearchState
	Results []domain.SearchResult
	Err     error
	Message string // user-visible error message, empty unless State == SearchError
}

// Loading reports whether a search is in flight
func (s SearchSnapshot) Loading() bool {
	return s.State == SearchLoading
}

// SearchSession owns the current query, its results, and the loading/error flags.
// Every query change cancels the previous request; outcomes from superseded
// requests are dropped even if they arrive after cancellation.
type SearchSession struct {
	dir    domain.MovieDirectory
	logger *slog.Logger

	mu      sync.Mutex
	tokens  tokenSource
	query   string
	state   SearchState
	results []domain.SearchResult
	err     error
}

// NewSearchSession creates a search session over dir
func NewSearchSession(dir domain.MovieDirectory, logger *slog.Logger) *SearchSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchSession{
		dir:    dir,
		logger: logger,
		state:  SearchIdle,
	}
}

// SetQuery records a new query and cancels any in-flight search.
// Returns the request to execute, or nil when the query is empty (the session
// is then Idle with no results and no error).
func (s *SearchSession) SetQuery(query string) *SearchRequest {
	return s.begin(context.Background(), query)
}

func (s *SearchSession) begin(parent context.Context, query string) *SearchRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tokens.cancelCurrent() {
		s.logger.Debug("search superseded", "query", query)
	}

	s.query = query
	normalized := domain.NormalizeQuery(query)
	if normalized == "" {
		s.state = SearchIdle
		s.results = nil
		s.err = nil
		return nil
	}

	tok := s.tokens.next(parent)
	s.state = SearchLoading
	return &SearchRequest{Seq: tok.seq, Query: normalized, ctx: tok.ctx}
}

// Execute performs the directory call for req. It blocks and is safe to call
// from any goroutine; the outcome takes effect only through Apply.
func (s *SearchSession) Execute(req *SearchRequest) SearchOutcome {
	if req == nil {
		return SearchOutcome{}
	}
	s.logger.Debug("searching", "query", req.Query, "seq", req.Seq)
	results, err := s.dir.SearchByTitle(req.ctx, req.Query)
	return SearchOutcome{Seq: req.Seq, Query: req.Query, Results: results, Err: err}
}

// Apply folds an outcome into the session state.
// Returns false when the outcome was stale and ignored.
func (s *SearchSession) Apply(out SearchOutcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tokens.isCurrent(out.Seq) {
		s.logger.Debug("dropping stale search result", "query", out.Query, "seq", out.Seq)
		return false
	}
	s.tokens.finish(out.Seq)

	switch {
	case out.Err == nil:
		s.state = SearchSuccess
		s.results = out.Results
		s.err = nil
		s.logger.Debug("search complete", "query", out.Query, "results", len(out.Results))
	case errors.Is(out.Err, domain.ErrCancelled):
		// Cancelled from outside the session (parent context); nothing superseded it
		s.state = SearchIdle
	default:
		s.state = SearchError
		s.results = nil
		s.err = out.Err
		s.logger.Warn("search failed", "query", out.Query, "error", out.Err)
	}
	return true
}

// Cancel aborts the in-flight search. A loading session returns to Idle and
// keeps its previous results.
func (s *SearchSession) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tokens.cancelCurrent() && s.state == SearchLoading {
		s.state = SearchIdle
	}
}

// Search runs a complete query synchronously and returns the resulting state
func (s *SearchSession) Search(ctx context.Context, query string) SearchSnapshot {
	if req := s.begin(ctx, query); req != nil {
		s.Apply(s.Execute(req))
	}
	return s.Snapshot()
}

// Snapshot returns a copy of the current state
func (s *SearchSession) Snapshot() SearchSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := SearchSnapshot{
		Query: s.query,
		State: s.state,
		Err:   s.err,
	}
	if s.results != nil {
		snap.Results = make([]domain.SearchResult, len(s.results))
		copy(snap.Results, s.results)
	}
	if s.state == SearchError {
		snap.Message = domain.UserMessage(s.err)
	}
	return snap
}
