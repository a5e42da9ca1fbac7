package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/cinelog-app/cinelog/internal/domain"
)

// DetailState is the lifecycle state of the detail session
type DetailState int

const (
	DetailNone DetailState = iota // nothing selected
	DetailLoading
	DetailReady
	DetailError
)

func (s DetailState) String() string {
	switch s {
	case DetailNone:
		return "none"
	case DetailLoading:
		return "loading"
	case DetailReady:
		return "ready"
	case DetailError:
		return "error"
	default:
		return "unknown"
	}
}

// DetailRequest is one issued fetch. Pass it to Execute.
type DetailRequest struct {
	Seq uint64
	ID  string
	ctx context.Context
}

// DetailOutcome is the raw result of executing a DetailRequest
type DetailOutcome struct {
	Seq    uint64
	ID     string
	Detail *domain.MovieDetail
	Err    error
}

// DetailSnapshot is a read-only view of the session state
type DetailSnapshot struct {
	ID      string
	State   DetailState
	Detail  *domain.MovieDetail
	Err     error
	Message string
}

// DetailSession fetches the full record for the selected movie.
// Its lifecycle is independent of the search session.
type DetailSession struct {
	dir    domain.MovieDirectory
	logger *slog.Logger

	mu     sync.Mutex
	tokens tokenSource
	id     string
	state  DetailState
	detail *domain.MovieDetail
	err    error
}

// NewDetailSession creates a detail session over dir
func NewDetailSession(dir domain.MovieDirectory, logger *slog.Logger) *DetailSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailSession{dir: dir, logger: logger}
}

// Select starts fetching id, cancelling any previous fetch.
// Returns nil when id is empty (equivalent to Close) or when id is already
// loading or loaded.
func (s *DetailSession) Select(id string) *DetailRequest {
	return s.begin(context.Background(), id)
}

func (s *DetailSession) begin(parent context.Context, id string) *DetailRequest {
	id = domain.NormalizeQuery(id)
	if id == "" {
		s.Close()
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id == s.id && (s.state == DetailLoading || s.state == DetailReady) {
		return nil
	}

	s.tokens.cancelCurrent()
	tok := s.tokens.next(parent)
	s.id = id
	s.state = DetailLoading
	s.detail = nil
	s.err = nil
	return &DetailRequest{Seq: tok.seq, ID: id, ctx: tok.ctx}
}

// Execute performs the directory call for req. Safe to call from any goroutine.
func (s *DetailSession) Execute(req *DetailRequest) DetailOutcome {
	if req == nil {
		return DetailOutcome{}
	}
	s.logger.Debug("fetching detail", "id", req.ID, "seq", req.Seq)
	detail, err := s.dir.FetchByID(req.ctx, req.ID)
	return DetailOutcome{Seq: req.Seq, ID: req.ID, Detail: detail, Err: err}
}

// Apply folds an outcome into the session state.
// Returns false when the outcome was stale and ignored.
func (s *DetailSession) Apply(out DetailOutcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tokens.isCurrent(out.Seq) {
		s.logger.Debug("dropping stale detail", "id", out.ID, "seq", out.Seq)
		return false
	}
	s.tokens.finish(out.Seq)

	switch {
	case out.Err == nil && out.Detail != nil:
		s.state = DetailReady
		s.detail = out.Detail
	case errors.Is(out.Err, domain.ErrCancelled):
		s.clear()
	default:
		err := out.Err
		if err == nil {
			err = &domain.NotFoundError{}
		}
		s.state = DetailError
		s.err = err
		s.logger.Warn("detail fetch failed", "id", out.ID, "error", err)
	}
	return true
}

// Close cancels any in-flight fetch and deselects
func (s *DetailSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens.cancelCurrent()
	s.clear()
}

func (s *DetailSession) clear() {
	s.id = ""
	s.state = DetailNone
	s.detail = nil
	s.err = nil
}

// Fetch selects id and waits for the result
func (s *DetailSession) Fetch(ctx context.Context, id string) DetailSnapshot {
	if req := s.begin(ctx, id); req != nil {
		s.Apply(s.Execute(req))
	}
	return s.Snapshot()
}

// Snapshot returns a copy of the current state
func (s *DetailSession) Snapshot() DetailSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := DetailSnapshot{
		ID:    s.id,
		State: s.state,
		Err:   s.err,
	}
	if s.detail != nil {
		d := *s.detail
		snap.Detail = &d
	}
	if s.state == DetailError {
		snap.Message = domain.UserMessage(s.err)
	}
	return snap
}
