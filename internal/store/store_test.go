package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cinelog-app/cinelog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []domain.WatchedEntry {
	return []domain.WatchedEntry{
		{ID: "tt0372784", Title: "Batman Begins", Year: "2005", PosterURL: "https://img/bb.jpg", CriticRating: 8.2, RuntimeMinutes: 140, UserRating: 9},
		{ID: "tt1877830", Title: "The Batman", Year: "2022", CriticRating: 7.8, RuntimeMinutes: 176, UserRating: 6},
		{ID: "tt0096895", Title: "Batman", Year: "1989", CriticRating: 7.5, RuntimeMinutes: 126, UserRating: 7},
	}
}

func TestLoadWatched_EmptyStore(t *testing.T) {
	s, err := NewWatchedStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	entries, err := s.LoadWatched()
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestSaveWatched_RoundtripAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewWatchedStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveWatched(sampleEntries()))
	require.NoError(t, s.Close())

	reopened, err := NewWatchedStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	got, err := reopened.LoadWatched()
	require.NoError(t, err)
	assert.Equal(t, sampleEntries(), got, "ids, order and fields must survive a reopen")
}

func TestSaveWatched_RewritesWholeSnapshot(t *testing.T) {
	s, err := NewWatchedStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.SaveWatched(sampleEntries()))
	require.NoError(t, s.SaveWatched(sampleEntries()[:1]))

	got, err := s.LoadWatched()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tt0372784", got[0].ID)
}

func TestSaveWatched_NilBecomesEmptyArray(t *testing.T) {
	s, err := NewWatchedStore("")
	require.NoError(t, err)

	require.NoError(t, s.SaveWatched(nil))
	got, err := s.LoadWatched()
	require.NoError(t, err)
	assert.Equal(t, []domain.WatchedEntry{}, got)
}

func TestMemoryOnlyStore(t *testing.T) {
	s, err := NewWatchedStore("")
	require.NoError(t, err)
	assert.Equal(t, "", s.Path())

	require.NoError(t, s.SaveWatched(sampleEntries()))
	got, err := s.LoadWatched()
	require.NoError(t, err)
	assert.Equal(t, sampleEntries(), got)
	assert.NoError(t, s.Close())
}

func TestNewWatchedStore_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	s, err := NewWatchedStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	assert.Equal(t, filepath.Join(dir, dbFileName), s.Path())
	_, err = os.Stat(s.Path())
	assert.NoError(t, err)
}
