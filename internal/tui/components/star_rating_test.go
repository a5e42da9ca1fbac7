package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func ratingOf(t *testing.T, cmd tea.Cmd) int {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(RatingChangedMsg)
	require.True(t, ok)
	return msg.Rating
}

func TestStarRating_ClickCommits(t *testing.T) {
	r := NewStarRating(10)
	assert.Equal(t, 0, r.Rating())

	cmd := r.Click(6)
	assert.Equal(t, 7, ratingOf(t, cmd))
	assert.Equal(t, 7, r.Rating())
	assert.Equal(t, 7, r.Preview())
}

func TestStarRating_MessageCarriesSubject(t *testing.T) {
	r := NewStarRating(10)
	r.SetSubject("tt0372784")

	cmd := r.Click(4)
	require.NotNil(t, cmd)
	assert.Equal(t, RatingChangedMsg{ID: "tt0372784", Rating: 5}, cmd())
}

func TestStarRating_ClickSameRatingDoesNotEmit(t *testing.T) {
	r := NewStarRating(10)
	r.Click(3)

	r.HoverIn(8)
	assert.Nil(t, r.Click(3))
	assert.False(t, r.Hovering(), "click clears the preview")
	assert.Equal(t, 4, r.Rating())
}

func TestStarRating_OutOfRangeIgnored(t *testing.T) {
	r := NewStarRating(5)

	assert.Nil(t, r.Click(5))
	assert.Nil(t, r.Click(-1))
	r.HoverIn(7)
	assert.False(t, r.Hovering())
	assert.Equal(t, 0, r.Rating())
}

func TestStarRating_HoverPreviewsWithoutCommitting(t *testing.T) {
	r := NewStarRating(10)
	r.Click(1)

	r.HoverIn(5)
	assert.Equal(t, 6, r.Preview())
	assert.Equal(t, 2, r.Rating())

	r.HoverOut()
	assert.Equal(t, 2, r.Preview())
}

func TestStarRating_ArrowKeys(t *testing.T) {
	r := NewStarRating(3)

	r, cmd := r.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, r.Preview(), "clamped at one star")

	for range 5 {
		r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, 3, r.Preview(), "clamped at max")
	assert.Equal(t, 0, r.Rating())

	r, cmd = r.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 3, ratingOf(t, cmd))
	assert.False(t, r.Hovering())
}

func TestStarRating_CommitWithoutPreview(t *testing.T) {
	r := NewStarRating(10)
	r, cmd := r.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, r.Rating())
}

func TestStarRating_Digits(t *testing.T) {
	tests := []struct {
		key  string
		max  int
		want int
	}{
		{"1", 10, 1},
		{"9", 10, 9},
		{"0", 10, 10},
		{"0", 5, 0},
		{"7", 5, 0},
		{"x", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			r := NewStarRating(tt.max)
			r, _ = r.Update(keyRunes(tt.key))
			assert.Equal(t, tt.want, r.Rating())
		})
	}
}

func TestStarRating_Reset(t *testing.T) {
	r := NewStarRating(10)
	r.Click(4)
	r.HoverIn(8)

	r.Reset()
	assert.Equal(t, 0, r.Rating())
	assert.Equal(t, 0, r.Preview())
}

func TestStarRating_View(t *testing.T) {
	r := NewStarRating(4)
	assert.Equal(t, "☆☆☆☆", r.View())

	r.Click(2)
	assert.Equal(t, "★★★☆ 3", r.View())
}

func TestNewStarRating_MinimumOneStar(t *testing.T) {
	assert.Equal(t, 1, NewStarRating(0).Max())
}
