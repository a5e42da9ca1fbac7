package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cinelog-app/cinelog/internal/domain"
	"github.com/cinelog-app/cinelog/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var batmanBegins = domain.MovieDetail{
	ID:             "tt0372784",
	Title:          "Batman Begins",
	Genre:          "Action, Crime, Drama",
	Year:           "2005",
	Released:       "15 Jun 2005",
	CriticRating:   8.2,
	RuntimeMinutes: 140,
	Plot:           "After witnessing his parents' death, Bruce learns the art of fighting.",
	Director:       "Christopher Nolan",
	Actors:         "Christian Bale, Michael Caine",
}

func readySnapshot(d domain.MovieDetail) service.DetailSnapshot {
	return service.DetailSnapshot{ID: d.ID, State: service.DetailReady, Detail: &d}
}

func newFocusedDetail() DetailView {
	d := NewDetailView(10)
	d.SetSize(60, 30)
	d.SetFocused(true)
	return d
}

func TestDetailView_CanRate(t *testing.T) {
	d := newFocusedDetail()
	assert.False(t, d.Open())
	assert.False(t, d.CanRate())

	d.SetSnapshot(service.DetailSnapshot{ID: batmanBegins.ID, State: service.DetailLoading}, nil)
	assert.True(t, d.Open())
	assert.False(t, d.CanRate())

	d.SetSnapshot(readySnapshot(batmanBegins), nil)
	assert.True(t, d.CanRate())

	entry := domain.NewWatchedEntry(batmanBegins, 8)
	d.SetSnapshot(readySnapshot(batmanBegins), &entry)
	assert.False(t, d.CanRate())
}

func TestDetailView_RatingKeysOnlyWhenRateable(t *testing.T) {
	d := newFocusedDetail()
	d.SetSnapshot(service.DetailSnapshot{ID: batmanBegins.ID, State: service.DetailLoading}, nil)

	d, cmd := d.Update(keyRunes("8"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, d.Rating())

	d.SetSnapshot(readySnapshot(batmanBegins), nil)
	d, cmd = d.Update(keyRunes("8"))
	assert.NotNil(t, cmd)
	assert.Equal(t, 8, d.Rating())
}

func TestDetailView_SwitchingMovieResetsRating(t *testing.T) {
	d := newFocusedDetail()
	d.SetSnapshot(readySnapshot(batmanBegins), nil)
	d, _ = d.Update(keyRunes("6"))

	// Same movie keeps the rating
	d.SetSnapshot(readySnapshot(batmanBegins), nil)
	assert.Equal(t, 6, d.Rating())

	other := batmanBegins
	other.ID = "tt1877830"
	other.Title = "The Batman"
	d.SetSnapshot(readySnapshot(other), nil)
	assert.Equal(t, 0, d.Rating())
	assert.Equal(t, "tt1877830", d.Stars().Subject())

	_, cmd := d.Update(keyRunes("4"))
	require.NotNil(t, cmd)
	assert.Equal(t, RatingChangedMsg{ID: "tt1877830", Rating: 4}, cmd())
}

func TestDetailView_BlurClearsPreview(t *testing.T) {
	d := newFocusedDetail()
	d.SetSnapshot(readySnapshot(batmanBegins), nil)
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.True(t, d.Stars().Hovering())

	d.SetFocused(false)
	assert.False(t, d.Stars().Hovering())
}

func TestDetailView_Footer(t *testing.T) {
	d := newFocusedDetail()
	d.SetSnapshot(readySnapshot(batmanBegins), nil)
	view := d.View()
	assert.Contains(t, view, "Batman Begins")
	assert.Contains(t, view, "2h 20m")
	assert.Contains(t, view, "or 1-9/0 to rate")

	d, _ = d.Update(keyRunes("7"))
	assert.Contains(t, d.View(), "add to watched list")

	entry := domain.NewWatchedEntry(batmanBegins, 9)
	d.SetSnapshot(readySnapshot(batmanBegins), &entry)
	assert.Contains(t, d.View(), "You rated this movie 9 ★")
}

func TestDetailView_ErrorAndEmpty(t *testing.T) {
	d := newFocusedDetail()
	assert.Contains(t, d.View(), "No movie selected")

	d.SetSnapshot(service.DetailSnapshot{ID: "tt0", State: service.DetailError, Message: "Incorrect IMDb ID."}, nil)
	assert.Contains(t, d.View(), "Incorrect IMDb ID.")
}
