package cli

import (
	"testing"

	"github.com/cinelog-app/cinelog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatched_AddListSummaryRemove(t *testing.T) {
	env := newTestEnv(t, "test-key")

	out, err := env.run("", "watched", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Movies watched:        0")

	out, err = env.run("", "watched", "add", "tt0372784", "--rating", "8")
	require.NoError(t, err)
	assert.Equal(t, "Added Batman Begins (2005) with 8 ★\n", out)

	out, err = env.run("", "watched", "add", "tt1877830", "-r", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "The Batman")

	out, err = env.run("", "watched", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "★8")
	assert.Contains(t, out, "Batman Begins (2005)  2h 20m")
	assert.Contains(t, out, "The Batman (2022)  2h 56m")

	out, err = env.run("", "watched", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Movies watched:        2")
	assert.Contains(t, out, "Average your rating:   7.00")
	assert.Contains(t, out, "Average IMDb rating:   8.00")
	assert.Contains(t, out, "Average runtime:       158 min")

	out, err = env.run("", "watched", "remove", "tt0372784")
	require.NoError(t, err)
	assert.Equal(t, "Removed Batman Begins\n", out)

	out, err = env.run("", "watched", "ls")
	require.NoError(t, err)
	assert.NotContains(t, out, "Batman Begins")
	assert.Contains(t, out, "The Batman")
}

func TestWatched_ListFilters(t *testing.T) {
	env := newTestEnv(t, "test-key")
	_, err := env.run("", "watched", "add", "tt0372784", "--rating", "8")
	require.NoError(t, err)
	_, err = env.run("", "watched", "add", "tt1877830", "--rating", "6")
	require.NoError(t, err)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{"fuzzy", []string{"--filter", "begins"}, []string{"Batman Begins"}, []string{"The Batman"}},
		{"where rating", []string{"--where", "userRating >= 7"}, []string{"Batman Begins"}, []string{"The Batman"}},
		{"where runtime", []string{"-w", "runtime > 150"}, []string{"The Batman"}, []string{"Batman Begins"}},
		{"both", []string{"-w", "criticRating > 8", "-f", "zzz"}, []string{"No watched movies"}, []string{"Batman"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := env.run("", append([]string{"watched", "list"}, tt.args...)...)
			require.NoError(t, err)
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestWatched_InvalidWhere(t *testing.T) {
	env := newTestEnv(t, "test-key")

	_, err := env.run("", "watched", "list", "--where", "userRating +")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter")
}

func TestWatched_AddErrors(t *testing.T) {
	env := newTestEnv(t, "test-key")

	_, err := env.run("", "watched", "add", "tt0372784", "--rating", "11")
	assert.ErrorIs(t, err, domain.ErrInvalidRating)
	_, err = env.run("", "watched", "add", "tt0372784", "--rating", "0")
	assert.ErrorIs(t, err, domain.ErrInvalidRating)
	assert.Zero(t, env.hits.Load(), "rating is checked before fetching")

	_, err = env.run("", "watched", "add", "tt0372784")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "rating" not set`)

	_, err = env.run("", "watched", "add", "tt9999999", "--rating", "5")
	require.Error(t, err)
	assert.Equal(t, "tt9999999: Incorrect IMDb ID.", err.Error())

	_, err = env.run("", "watched", "add", "tt0372784", "--rating", "5")
	require.NoError(t, err)
	_, err = env.run("", "watched", "add", "tt0372784", "--rating", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already on the watched list with 5 stars")
}

func TestWatched_RemoveAbsent(t *testing.T) {
	env := newTestEnv(t, "test-key")

	_, err := env.run("", "watched", "remove", "tt0372784")
	require.Error(t, err)
	assert.Equal(t, "tt0372784 is not on the watched list", err.Error())
}
