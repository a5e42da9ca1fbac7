package service

import (
	"errors"
	"math"
	"testing"

	"github.com/cinelog-app/cinelog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id string, rating, runtime int, critic float64) domain.WatchedEntry {
	return domain.WatchedEntry{
		ID:             id,
		Title:          "Title " + id,
		Year:           "2000",
		UserRating:     rating,
		RuntimeMinutes: runtime,
		CriticRating:   critic,
	}
}

func newWatched(t *testing.T, repo *memoryRepo) *WatchedService {
	t.Helper()
	svc, err := NewWatchedService(repo, DefaultMaxStars, nil)
	require.NoError(t, err)
	return svc
}

func TestWatchedService_EmptySummary(t *testing.T) {
	svc := newWatched(t, &memoryRepo{})

	assert.Equal(t, domain.Summary{}, svc.Summary())
	assert.Equal(t, 0, svc.Len())
	assert.Empty(t, svc.Entries())
}

func TestWatchedService_AddPersistsAndSummarizes(t *testing.T) {
	repo := &memoryRepo{}
	svc := newWatched(t, repo)

	require.NoError(t, svc.Add(entry("tt1", 6, 120, 7.0)))
	require.NoError(t, svc.Add(entry("tt2", 9, 150, 8.0)))

	sum := svc.Summary()
	assert.Equal(t, 2, sum.Count)
	assert.InDelta(t, 7.5, sum.AverageUserRating, 1e-9)
	assert.InDelta(t, 135, sum.AverageRuntime, 1e-9)
	assert.InDelta(t, 7.5, sum.AverageCriticRating, 1e-9)

	assert.Equal(t, 2, repo.saves)
	assert.Equal(t, svc.Entries(), repo.saved)
	assert.True(t, svc.Contains("tt2"))
}

func TestWatchedService_DuplicateAddIsRejected(t *testing.T) {
	repo := &memoryRepo{}
	svc := newWatched(t, repo)
	require.NoError(t, svc.Add(entry("tt1", 6, 120, 7.0)))

	err := svc.Add(entry("tt1", 3, 120, 7.0))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 1, svc.Len())
	assert.Equal(t, 1, repo.saves)

	got, ok := svc.Get("tt1")
	require.True(t, ok)
	assert.Equal(t, 6, got.UserRating, "original rating must survive")
}

func TestWatchedService_InvalidRating(t *testing.T) {
	svc := newWatched(t, &memoryRepo{})

	for _, rating := range []int{0, -1, 11} {
		err := svc.Add(entry("tt1", rating, 100, 5))
		assert.ErrorIs(t, err, domain.ErrInvalidRating, "rating %d", rating)
	}
	assert.Equal(t, 0, svc.Len())
}

func TestWatchedService_CustomMaxStars(t *testing.T) {
	svc, err := NewWatchedService(&memoryRepo{}, 5, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, svc.MaxStars())
	assert.ErrorIs(t, svc.Add(entry("tt1", 6, 100, 5)), domain.ErrInvalidRating)
	assert.NoError(t, svc.Add(entry("tt1", 5, 100, 5)))
}

func TestWatchedService_RemoveAbsentIsNoop(t *testing.T) {
	repo := &memoryRepo{}
	svc := newWatched(t, repo)
	require.NoError(t, svc.Add(entry("tt1", 6, 120, 7.0)))

	removed, err := svc.Remove("tt404")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, svc.Len())
	assert.Equal(t, 1, repo.saves, "no write for an absent id")
}

func TestWatchedService_RemoveKeepsOrder(t *testing.T) {
	repo := &memoryRepo{}
	svc := newWatched(t, repo)
	for _, id := range []string{"tt1", "tt2", "tt3"} {
		require.NoError(t, svc.Add(entry(id, 5, 100, 5)))
	}

	removed, err := svc.Remove("tt2")
	require.NoError(t, err)
	assert.True(t, removed)

	ids := make([]string, 0)
	for _, e := range svc.Entries() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"tt1", "tt3"}, ids)
	assert.Equal(t, svc.Entries(), repo.saved)
}

func TestWatchedService_FailedSaveLeavesListUnchanged(t *testing.T) {
	repo := &memoryRepo{}
	svc := newWatched(t, repo)
	require.NoError(t, svc.Add(entry("tt1", 6, 120, 7.0)))

	repo.failErr = errors.New("disk full")

	err := svc.Add(entry("tt2", 9, 150, 8.0))
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 1, svc.Len())

	removed, err := svc.Remove("tt1")
	assert.Error(t, err)
	assert.False(t, removed)
	assert.True(t, svc.Contains("tt1"))
}

func TestWatchedService_LoadsAndDedupes(t *testing.T) {
	repo := &memoryRepo{saved: []domain.WatchedEntry{
		entry("tt1", 6, 120, 7.0),
		entry("tt2", 8, 90, 6.0),
		entry("tt1", 2, 120, 7.0),
	}}
	svc := newWatched(t, repo)

	assert.Equal(t, 2, svc.Len())
	got, _ := svc.Get("tt1")
	assert.Equal(t, 6, got.UserRating)
}

func TestWatchedService_LoadFailure(t *testing.T) {
	_, err := NewWatchedService(&memoryRepo{loadErr: errors.New("corrupt")}, 10, nil)
	assert.ErrorContains(t, err, "corrupt")
}

func TestWatchedService_EntriesIsACopy(t *testing.T) {
	svc := newWatched(t, &memoryRepo{})
	require.NoError(t, svc.Add(entry("tt1", 6, 120, 7.0)))

	list := svc.Entries()
	list[0].UserRating = 1

	got, _ := svc.Get("tt1")
	assert.Equal(t, 6, got.UserRating)
}

func TestSummarize_UnknownFieldsCountAsZero(t *testing.T) {
	sum := Summarize([]domain.WatchedEntry{
		entry("tt1", 8, 0, 0),
		entry("tt2", 6, 100, 8.0),
	})
	assert.InDelta(t, 50, sum.AverageRuntime, 1e-9)
	assert.InDelta(t, 4, sum.AverageCriticRating, 1e-9)
}

// runningMean is the incremental form m_k = m_{k-1} + (x_k - m_{k-1}) / k
func runningMean(values []float64) float64 {
	var m float64
	for i, v := range values {
		m += (v - m) / float64(i+1)
	}
	return m
}

func TestMean_MatchesRunningMean(t *testing.T) {
	inputs := [][]float64{
		{6, 9},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		{7.3, 8.1, 6.9, 5.5, 9.2, 8.8, 7.7},
		{142, 95, 181, 88, 120, 133, 101, 152},
	}
	for _, in := range inputs {
		assert.InDelta(t, runningMean(in), mean(in), 1e-9)
	}
	assert.InDelta(t, 7.5, mean([]float64{6, 9}), 1e-12)
	assert.False(t, math.IsNaN(mean(nil)))
}
