package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cinelog-app/cinelog/internal/domain"
)

// handleKeyMsg dispatches keys by focused pane. All key handling lives here,
// so switching views never leaves stale handlers behind.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.focus {
	case FocusSearch:
		return m.handleSearchKeys(msg)
	case FocusResults:
		return m.handleResultKeys(msg)
	default:
		if m.detail.Open() {
			return m.handleDetailKeys(msg)
		}
		return m.handleWatchedKeys(msg)
	}
}

// handleSearchKeys handles keys while typing a query; q is text here
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		if m.detail.Open() {
			return m, m.closeDetail()
		}
		if m.searchBar.Query() != "" {
			m.searchBar.SetQuery("")
			m.searchBar.QueryChanged()
			return m, m.startSearch()
		}
		return m, nil

	case key.Matches(msg, Keys.NextPane):
		m.cycleFocus(1)
		return m, nil

	case key.Matches(msg, Keys.PrevPane):
		m.cycleFocus(-1)
		return m, nil

	case msg.Type == tea.KeyEnter || msg.Type == tea.KeyDown:
		if m.results.Len() > 0 {
			m.focus = FocusResults
			m.applyFocus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchBar, cmd = m.searchBar.Update(msg)
	if m.searchBar.QueryChanged() {
		return m, tea.Batch(cmd, m.startSearch())
	}
	return m, cmd
}

func (m Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Escape):
		if m.detail.Open() {
			return m, m.closeDetail()
		}
		m.focus = FocusSearch
		m.applyFocus()
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.focus = FocusSearch
		m.applyFocus()
		return m, nil

	case key.Matches(msg, Keys.NextPane):
		m.cycleFocus(1)
		return m, nil

	case key.Matches(msg, Keys.PrevPane):
		m.cycleFocus(-1)
		return m, nil

	case key.Matches(msg, Keys.Open):
		if r, ok := m.results.Selected(); ok {
			return m, m.openDetail(r.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Escape):
		cmd := m.closeDetail()
		if m.results.Len() > 0 {
			m.focus = FocusResults
		} else {
			m.focus = FocusSearch
		}
		m.applyFocus()
		return m, cmd

	case key.Matches(msg, Keys.Add):
		return m, m.addWatched()

	case key.Matches(msg, Keys.Search):
		m.focus = FocusSearch
		m.applyFocus()
		return m, nil

	case key.Matches(msg, Keys.NextPane):
		m.cycleFocus(1)
		return m, nil

	case key.Matches(msg, Keys.PrevPane):
		m.cycleFocus(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) handleWatchedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Filter input owns the keyboard while typing
	if m.watched.IsFilterTyping() {
		var cmd tea.Cmd
		m.watched, cmd = m.watched.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Delete):
		return m, m.removeWatched()

	case key.Matches(msg, Keys.Search):
		m.focus = FocusSearch
		m.applyFocus()
		return m, nil

	case key.Matches(msg, Keys.NextPane):
		m.cycleFocus(1)
		return m, nil

	case key.Matches(msg, Keys.PrevPane):
		m.cycleFocus(-1)
		return m, nil

	case key.Matches(msg, Keys.Open):
		if e, ok := m.watched.Selected(); ok {
			return m, m.openDetail(e.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.watched, cmd = m.watched.Update(msg)
	return m, cmd
}

// cycleFocus moves focus through search, results, and the right pane,
// skipping an empty result list
func (m *Model) cycleFocus(dir int) {
	const panes = 3
	next := m.focus
	for i := 0; i < panes; i++ {
		next = Focus((int(next) + dir + panes) % panes)
		if next != FocusResults || m.results.Len() > 0 {
			break
		}
	}
	m.focus = next
	m.applyFocus()
}

// watchedErrorMessage maps watched list errors to status text
func watchedErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return "Already on your watched list"
	case errors.Is(err, domain.ErrInvalidRating):
		return "Pick a rating first"
	default:
		return "Could not save watched list: " + err.Error()
	}
}
