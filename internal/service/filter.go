package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/cinelog-app/cinelog/internal/domain"
)

// filterEnv exposes watched entry fields to filter expressions
type filterEnv struct {
	ID           string  `expr:"id"`
	Title        string  `expr:"title"`
	Year         string  `expr:"year"`
	UserRating   int     `expr:"userRating"`
	CriticRating float64 `expr:"criticRating"`
	Runtime      int     `expr:"runtime"`
}

func newFilterEnv(e domain.WatchedEntry) filterEnv {
	return filterEnv{
		ID:           e.ID,
		Title:        e.Title,
		Year:         e.Year,
		UserRating:   e.UserRating,
		CriticRating: e.CriticRating,
		Runtime:      e.RuntimeMinutes,
	}
}

// WatchedFilter is a compiled boolean expression over watched entries,
// e.g. `userRating >= 8 && runtime < 120`.
type WatchedFilter struct {
	expression string
	program    *vm.Program
}

// CompileWatchedFilter compiles expression; it must evaluate to a bool
func CompileWatchedFilter(expression string) (*WatchedFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expression, err)
	}
	return &WatchedFilter{expression: expression, program: program}, nil
}

// String returns the source expression
func (f *WatchedFilter) String() string {
	return f.expression
}

// Match evaluates the filter against one entry
func (f *WatchedFilter) Match(e domain.WatchedEntry) (bool, error) {
	out, err := expr.Run(f.program, newFilterEnv(e))
	if err != nil {
		return false, fmt.Errorf("evaluating filter on %s: %w", e.ID, err)
	}
	matched, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q did not return a bool", f.expression)
	}
	return matched, nil
}

// Apply returns the entries the filter matches, preserving order
func (f *WatchedFilter) Apply(entries []domain.WatchedEntry) ([]domain.WatchedEntry, error) {
	out := make([]domain.WatchedEntry, 0, len(entries))
	for _, e := range entries {
		ok, err := f.Match(e)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// FuzzyMatchTitles returns entries whose title fuzzily contains query, best
// match first. Ties keep list order. An empty query returns entries unchanged.
func FuzzyMatchTitles(entries []domain.WatchedEntry, query string) []domain.WatchedEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}

	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}

	ranks := fuzzy.RankFindFold(query, titles)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]domain.WatchedEntry, len(ranks))
	for i, r := range ranks {
		out[i] = entries[r.OriginalIndex]
	}
	return out
}
