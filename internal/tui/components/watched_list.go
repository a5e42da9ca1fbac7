package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cinelog-app/cinelog/internal/domain"
	"github.com/cinelog-app/cinelog/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// WatchedList shows the watched movies with an optional fuzzy title filter
type WatchedList struct {
	entries []domain.WatchedEntry
	scroll  scroller

	width   int
	height  int
	focused bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into entries
}

// NewWatchedList creates an empty watched list
func NewWatchedList() WatchedList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return WatchedList{filterInput: ti}
}

// SetEntries replaces the list, keeping the cursor and any active filter
func (w *WatchedList) SetEntries(entries []domain.WatchedEntry) {
	w.entries = entries
	if w.filterActive {
		w.applyFilter()
	}
	w.scroll.clamp(w.Len())
}

// Len returns the number of visible (filtered) rows
func (w WatchedList) Len() int {
	if w.filteredIdx != nil {
		return len(w.filteredIdx)
	}
	return len(w.entries)
}

// Total returns the number of entries ignoring the filter
func (w WatchedList) Total() int {
	return len(w.entries)
}

// Selected returns the entry under the cursor
func (w WatchedList) Selected() (domain.WatchedEntry, bool) {
	if w.Len() == 0 {
		return domain.WatchedEntry{}, false
	}
	return w.entries[w.mapIndex(w.scroll.cursor)], true
}

// SetSize sets the rows area dimensions (no border)
func (w *WatchedList) SetSize(width, height int) {
	w.width = width
	w.height = height
	w.filterInput.Width = max(width-6, 10)
	w.recalcMaxVisible()
}

// SetFocused toggles cursor highlighting; losing focus blurs the filter input
func (w *WatchedList) SetFocused(focused bool) {
	w.focused = focused
	if !focused {
		w.filterInput.Blur()
	}
}

// StartFilter activates the filter input
func (w *WatchedList) StartFilter() tea.Cmd {
	w.filterActive = true
	w.recalcMaxVisible()
	return w.filterInput.Focus()
}

// IsFiltering returns true if filter mode is active
func (w WatchedList) IsFiltering() bool {
	return w.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (w WatchedList) IsFilterTyping() bool {
	return w.filterActive && w.filterInput.Focused()
}

// FilterQuery returns the active filter text
func (w WatchedList) FilterQuery() string {
	return w.filterQuery
}

// ClearFilter deactivates the filter and shows all entries
func (w *WatchedList) ClearFilter() {
	w.filterActive = false
	w.filterQuery = ""
	w.filteredIdx = nil
	w.filterInput.SetValue("")
	w.filterInput.Blur()
	w.recalcMaxVisible()
}

// Update handles filter typing and navigation
func (w WatchedList) Update(msg tea.Msg) (WatchedList, tea.Cmd) {
	if !w.focused {
		return w, nil
	}

	// Handle filter input when active AND focused (typing mode)
	if w.IsFilterTyping() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, FilterKeys.Clear):
				w.ClearFilter()
				return w, nil
			case key.Matches(keyMsg, FilterKeys.Accept):
				// Accept filter, blur input to allow navigation
				w.filterInput.Blur()
				return w, nil
			case keyMsg.Type == tea.KeyBackspace && w.filterInput.Value() == "":
				w.ClearFilter()
				return w, nil
			}
		}

		var cmd tea.Cmd
		w.filterInput, cmd = w.filterInput.Update(msg)
		w.applyFilter()
		return w, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w, nil
	}

	// Filter active but blurred: navigation over the filtered rows
	if w.filterActive {
		switch {
		case key.Matches(keyMsg, FilterKeys.Clear):
			w.ClearFilter()
			return w, nil
		case key.Matches(keyMsg, FilterKeys.Filter):
			return w, w.filterInput.Focus()
		}
	} else if key.Matches(keyMsg, FilterKeys.Filter) {
		return w, w.StartFilter()
	}

	w.scroll.move(keyMsg, w.Len())
	return w, nil
}

func (w *WatchedList) recalcMaxVisible() {
	w.scroll.maxVisible = w.height - ScrollIndicatorLines
	// Reserve space for filter bar when active
	if w.filterActive {
		w.scroll.maxVisible--
	}
	if w.scroll.maxVisible < 1 {
		w.scroll.maxVisible = 1
	}
	w.scroll.ensureVisible()
}

func (w *WatchedList) applyFilter() {
	query := w.filterInput.Value()
	w.filterQuery = query

	if query == "" {
		w.filteredIdx = nil
		w.scroll.reset()
		return
	}

	// Case-insensitive matching
	titles := make([]string, len(w.entries))
	for i, e := range w.entries {
		titles[i] = strings.ToLower(e.Title)
	}

	matches := fuzzy.Find(strings.ToLower(query), titles)

	w.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		w.filteredIdx[i] = match.Index
	}

	// Reset cursor to first match
	w.scroll.reset()
}

func (w WatchedList) mapIndex(i int) int {
	if w.filteredIdx != nil && i < len(w.filteredIdx) {
		return w.filteredIdx[i]
	}
	return i
}

// View renders the rows, scroll indicators, and filter bar
func (w WatchedList) View() string {
	width := max(w.width, 10)
	count := w.Len()

	var content string
	if count == 0 {
		msg := "Rate a movie to add it here"
		if w.filterActive && w.filterQuery != "" {
			msg = "No matches"
		}
		content = " \n" + styles.DimStyle.Render(msg) + "\n "
	} else {
		start, end := w.scroll.window(count)

		header := " "
		if start > 0 {
			header = styles.DimStyle.Render("↑ more")
		}
		footer := " "
		if end < count {
			footer = styles.DimStyle.Render("↓ more")
		}

		lines := []string{header}
		for i := start; i < end; i++ {
			selected := w.focused && i == w.scroll.cursor
			lines = append(lines, renderWatchedRow(w.entries[w.mapIndex(i)], selected, width))
		}
		lines = append(lines, footer)
		content = strings.Join(lines, "\n")
	}

	if w.filterActive {
		content += "\n" + w.renderFilterBar()
	}
	return content
}

func renderWatchedRow(e domain.WatchedEntry, selected bool, width int) string {
	gold := styles.Gold
	dim := styles.DimGray

	rating := fmt.Sprintf(" ★%d", e.UserRating)
	stats := fmt.Sprintf("  %.1f  %s", e.CriticRating, e.FormattedRuntime())

	// Available space: width - rating - stats - margins(2)
	available := max(width-lipgloss.Width(rating)-lipgloss.Width(stats)-2, 5)
	title := styles.Truncate(e.Title, available)
	title += strings.Repeat(" ", max(available-lipgloss.Width(title), 0))

	parts := []styles.RowPart{
		{Text: title, Foreground: nil},
		{Text: rating, Foreground: &gold},
		{Text: stats, Foreground: &dim},
	}
	return styles.RenderListRow(parts, selected, width)
}

func (w WatchedList) renderFilterBar() string {
	input := w.filterInput.View()

	// Show match count
	countStr := ""
	if w.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", w.Len(), w.Total()))
	}
	return input + countStr
}
