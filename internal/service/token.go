package service

import "context"

// requestToken is the cancellation handle for one issued request.
// seq orders requests within a session; only the newest is authoritative.
type requestToken struct {
	seq    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

// tokenSource issues tokens and remembers the current one.
// Not safe for concurrent use; sessions guard it with their own mutex.
type tokenSource struct {
	seq     uint64
	current *requestToken
}

// next cancels the current token and replaces it with a fresh one
func (ts *tokenSource) next(parent context.Context) *requestToken {
	ts.cancelCurrent()
	if parent == nil {
		parent = context.Background()
	}
	ts.seq++
	ctx, cancel := context.WithCancel(parent)
	ts.current = &requestToken{seq: ts.seq, ctx: ctx, cancel: cancel}
	return ts.current
}

// cancelCurrent aborts the in-flight request (if any) and forgets it
func (ts *tokenSource) cancelCurrent() bool {
	if ts.current == nil {
		return false
	}
	ts.current.cancel()
	ts.current = nil
	return true
}

// isCurrent reports whether seq belongs to the request still in flight
func (ts *tokenSource) isCurrent(seq uint64) bool {
	return ts.current != nil && ts.current.seq == seq
}

// finish releases the current token once its outcome has been applied
func (ts *tokenSource) finish(seq uint64) {
	if ts.isCurrent(seq) {
		ts.current.cancel()
		ts.current = nil
	}
}
