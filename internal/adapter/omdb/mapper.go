package omdb

import (
	"strconv"
	"strings"

	"github.com/cinelog-app/cinelog/internal/domain"
)

// notAvailable is OMDb's placeholder for missing fields
const notAvailable = "N/A"

// MapSearchResults converts OMDb search rows to domain search results
func MapSearchResults(items []SearchItem) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(items))
	for _, it := range items {
		if it.IMDbID == "" {
			continue
		}
		results = append(results, domain.SearchResult{
			ID:        it.IMDbID,
			Title:     it.Title,
			Year:      it.Year,
			PosterURL: cleanField(it.Poster),
		})
	}
	return results
}

// MapMovieDetail converts an OMDb title response to a domain detail record
func MapMovieDetail(t TitleResponse) *domain.MovieDetail {
	return &domain.MovieDetail{
		ID:             t.IMDbID,
		Title:          t.Title,
		Genre:          cleanField(t.Genre),
		Year:           t.Year,
		Released:       cleanField(t.Released),
		CriticRating:   parseRating(t.IMDbRating),
		RuntimeMinutes: parseRuntime(t.Runtime),
		Plot:           cleanField(t.Plot),
		Director:       cleanField(t.Director),
		Actors:         cleanField(t.Actors),
		PosterURL:      cleanField(t.Poster),
	}
}

// parseRuntime extracts minutes from "140 min"; unknown values map to 0
func parseRuntime(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseRating parses "8.2"; unknown values map to 0
func parseRating(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if s == notAvailable {
		return ""
	}
	return s
}
