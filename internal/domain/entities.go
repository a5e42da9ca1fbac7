package domain

import (
	"fmt"
	"strings"
)

// SearchResult is a single row returned by a title search
type SearchResult struct {
	ID        string // External identifier (IMDb id, e.g. "tt0372784")
	Title     string // Display title
	Year      string // Release year as reported by the directory ("2005", "2008–2012")
	PosterURL string // Poster image URL (empty if none)
}

// MovieDetail is the full metadata record for one movie
type MovieDetail struct {
	ID             string
	Title          string
	Genre          string
	Year           string
	Released       string  // Release date as reported ("15 Jun 2005")
	CriticRating   float64 // IMDb rating on a 0-10 scale, 0 if unknown
	RuntimeMinutes int     // 0 if unknown
	Plot           string
	Director       string
	Actors         string
	PosterURL      string
}

// FormattedRuntime returns the runtime in a human-readable format
func (d MovieDetail) FormattedRuntime() string {
	return formatMinutes(d.RuntimeMinutes)
}

// WatchedEntry is a movie the user has rated and added to the watched list
type WatchedEntry struct {
	ID             string  `json:"imdbID"`
	PosterURL      string  `json:"poster"`
	Title          string  `json:"title"`
	Year           string  `json:"year"`
	CriticRating   float64 `json:"imdbRating"`
	RuntimeMinutes int     `json:"runtime"`
	UserRating     int     `json:"userRating"`
}

// NewWatchedEntry builds a watched entry from a fetched detail record and the user's rating
func NewWatchedEntry(d MovieDetail, userRating int) WatchedEntry {
	return WatchedEntry{
		ID:             d.ID,
		PosterURL:      d.PosterURL,
		Title:          d.Title,
		Year:           d.Year,
		CriticRating:   d.CriticRating,
		RuntimeMinutes: d.RuntimeMinutes,
		UserRating:     userRating,
	}
}

// FormattedRuntime returns the runtime in a human-readable format
func (w WatchedEntry) FormattedRuntime() string {
	return formatMinutes(w.RuntimeMinutes)
}

// Summary holds aggregate statistics over the watched list.
// Averages are 0 when the list is empty.
type Summary struct {
	Count               int
	AverageUserRating   float64
	AverageRuntime      float64
	AverageCriticRating float64
}

// String renders the summary as a single line
func (s Summary) String() string {
	return fmt.Sprintf("%d movies, ⭐ %.2f, ⏳ %.0f min", s.Count, s.AverageUserRating, s.AverageRuntime)
}

func formatMinutes(minutes int) string {
	if minutes <= 0 {
		return "N/A"
	}
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// NormalizeQuery trims the query; an empty result means "no search"
func NormalizeQuery(query string) string {
	return strings.TrimSpace(query)
}
