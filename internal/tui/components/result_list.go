package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cinelog-app/cinelog/internal/domain"
	"github.com/cinelog-app/cinelog/internal/tui/styles"
)

// ResultList is the scrollable list of search results
type ResultList struct {
	results []domain.SearchResult
	scroll  scroller

	// ID of the result whose detail is open, marked in the list
	openID string

	width   int
	height  int
	focused bool
}

// NewResultList creates an empty result list
func NewResultList() ResultList {
	return ResultList{}
}

// SetResults replaces the rows and resets the cursor
func (l *ResultList) SetResults(results []domain.SearchResult) {
	l.results = results
	l.scroll.reset()
}

// Results returns the current rows
func (l ResultList) Results() []domain.SearchResult {
	return l.results
}

// Len returns the number of rows
func (l ResultList) Len() int {
	return len(l.results)
}

// Selected returns the row under the cursor
func (l ResultList) Selected() (domain.SearchResult, bool) {
	if len(l.results) == 0 {
		return domain.SearchResult{}, false
	}
	return l.results[l.scroll.cursor], true
}

// Cursor returns the cursor index
func (l ResultList) Cursor() int {
	return l.scroll.cursor
}

// SetOpenID marks which result's detail is open ("" for none)
func (l *ResultList) SetOpenID(id string) {
	l.openID = id
}

// SetSize sets the rows area dimensions (no border)
func (l *ResultList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.scroll.maxVisible = max(height-ScrollIndicatorLines, 1)
	l.scroll.ensureVisible()
}

// SetFocused toggles cursor highlighting
func (l *ResultList) SetFocused(focused bool) {
	l.focused = focused
}

// Update handles navigation keys
func (l ResultList) Update(msg tea.Msg) (ResultList, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && l.focused {
		l.scroll.move(keyMsg, len(l.results))
	}
	return l, nil
}

// View renders the visible rows with scroll indicators
func (l ResultList) View() string {
	if len(l.results) == 0 {
		return ""
	}

	width := max(l.width, 10)
	start, end := l.scroll.window(len(l.results))

	header := " "
	if start > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < len(l.results) {
		footer = styles.DimStyle.Render("↓ more")
	}

	lines := []string{header}
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(l.results[i], l.focused && i == l.scroll.cursor, width))
	}
	lines = append(lines, footer)
	return strings.Join(lines, "\n")
}

func (l ResultList) renderRow(r domain.SearchResult, selected bool, width int) string {
	marker := " "
	markerFg := styles.Gold
	if r.ID == l.openID {
		marker = "▸"
	}

	year := r.Year
	yearFg := styles.DimGray

	// Available space: width - marker(1) - spaces(2) - year - margins(2)
	available := max(width-5-lipgloss.Width(year), 5)
	title := styles.Truncate(r.Title, available)

	parts := []styles.RowPart{
		{Text: marker, Foreground: &markerFg},
		{Text: " " + title, Foreground: nil},
		{Text: fmt.Sprintf(" %s", year), Foreground: &yearFg},
	}
	return styles.RenderListRow(parts, selected, width)
}
