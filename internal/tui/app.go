package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cinelog-app/cinelog/internal/domain"
	"github.com/cinelog-app/cinelog/internal/service"
	"github.com/cinelog-app/cinelog/internal/tui/components"
	"github.com/cinelog-app/cinelog/internal/tui/styles"
)

// AppTitle is the terminal window title when no movie is open
const AppTitle = "cinelog"

// statusTimeout is how long a status message stays in the footer
const statusTimeout = 4 * time.Second

// Focus identifies the pane receiving keys
type Focus int

const (
	FocusSearch  Focus = iota // search input
	FocusResults              // search result list
	FocusRight                // detail view when open, otherwise watched list
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	SearchSvc  *service.SearchSession
	DetailSvc  *service.DetailSession
	WatchedSvc *service.WatchedService
	logger     *slog.Logger

	// UI Components
	searchBar components.SearchBar
	results   components.ResultList
	detail    components.DetailView
	watched   components.WatchedList
	spinner   spinner.Model

	// Search state mirrored from the session
	search service.SearchSnapshot

	// Committed rating reported by the star widget
	pendingRating int

	// Dimensions
	Width  int
	Height int
	Ready  bool

	// UI state
	focus       Focus
	windowTitle string
	StatusMsg   string
	StatusIsErr bool
	statusID    int
}

// NewModel creates a new application model
func NewModel(
	searchSvc *service.SearchSession,
	detailSvc *service.DetailSession,
	watchedSvc *service.WatchedService,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	m := Model{
		SearchSvc:  searchSvc,
		DetailSvc:  detailSvc,
		WatchedSvc: watchedSvc,
		logger:     logger,
		searchBar:  components.NewSearchBar(),
		results:    components.NewResultList(),
		detail:     components.NewDetailView(watchedSvc.MaxStars()),
		watched:    components.NewWatchedList(),
		spinner:    sp,
		focus:      FocusSearch,
	}
	m.search = searchSvc.Snapshot()
	m.watched.SetEntries(watchedSvc.Entries())
	m.applyFocus()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(AppTitle),
		m.spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SearchOutcomeMsg:
		if !m.SearchSvc.Apply(msg.Outcome) {
			return m, nil
		}
		m.syncSearch()
		return m, nil

	case DetailOutcomeMsg:
		if !m.DetailSvc.Apply(msg.Outcome) {
			return m, nil
		}
		return m, m.syncDetail()

	case components.RatingChangedMsg:
		// A rating made before the user switched movies belongs to the old one
		if msg.ID == "" || msg.ID != m.detail.Snapshot().ID {
			return m, nil
		}
		m.pendingRating = msg.Rating
		m.logger.Debug("rating changed", "id", m.detail.Snapshot().ID, "rating", msg.Rating)
		return m, nil

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.ID == m.statusID {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	// Forward everything else (cursor blink) to the focused input
	var cmd tea.Cmd
	switch m.focus {
	case FocusSearch:
		m.searchBar, cmd = m.searchBar.Update(msg)
	case FocusRight:
		if !m.detail.Open() {
			m.watched, cmd = m.watched.Update(msg)
		}
	}
	return m, cmd
}

// startSearch hands the current query to the session and issues the request
func (m *Model) startSearch() tea.Cmd {
	req := m.SearchSvc.SetQuery(m.searchBar.Query())
	m.syncSearch()
	return SearchCmd(m.SearchSvc, req)
}

// syncSearch mirrors the session into the result list
func (m *Model) syncSearch() {
	prev := m.search
	m.search = m.SearchSvc.Snapshot()
	if !sameResults(prev.Results, m.search.Results) {
		m.results.SetResults(m.search.Results)
	}
	if m.focus == FocusResults && m.results.Len() == 0 {
		m.focus = FocusSearch
		m.applyFocus()
	}
}

func sameResults(a, b []domain.SearchResult) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

// openDetail selects id in the detail session
func (m *Model) openDetail(id string) tea.Cmd {
	req := m.DetailSvc.Select(id)
	m.focus = FocusRight
	titleCmd := m.syncDetail()
	return tea.Batch(DetailCmd(m.DetailSvc, req), titleCmd)
}

// closeDetail cancels any fetch and returns to the watched list
func (m *Model) closeDetail() tea.Cmd {
	m.DetailSvc.Close()
	m.pendingRating = 0
	return m.syncDetail()
}

// syncDetail mirrors the detail session into the view and returns the window
// title command if the title changed
func (m *Model) syncDetail() tea.Cmd {
	snap := m.DetailSvc.Snapshot()
	if snap.ID != m.detail.Snapshot().ID {
		m.pendingRating = 0
	}

	var watched *domain.WatchedEntry
	if e, ok := m.WatchedSvc.Get(snap.ID); ok {
		watched = &e
	}
	m.detail.SetSnapshot(snap, watched)
	m.results.SetOpenID(snap.ID)
	m.applyFocus()
	m.updateLayout()

	title := AppTitle
	if snap.State == service.DetailReady && snap.Detail != nil {
		title = "Movie: " + snap.Detail.Title
	}
	if title == m.windowTitle {
		return nil
	}
	m.windowTitle = title
	return tea.SetWindowTitle(title)
}

// addWatched adds the open movie with the committed rating
func (m *Model) addWatched() tea.Cmd {
	snap := m.detail.Snapshot()
	rating := m.detail.Rating()
	if !m.detail.CanRate() || snap.Detail == nil || rating <= 0 {
		return nil
	}

	entry := domain.NewWatchedEntry(*snap.Detail, rating)
	if err := m.WatchedSvc.Add(entry); err != nil {
		m.logger.Error("failed to add watched entry", "id", entry.ID, "error", err)
		return m.setStatus(watchedErrorMessage(err), true)
	}

	m.watched.SetEntries(m.WatchedSvc.Entries())
	closeCmd := m.closeDetail()
	return tea.Batch(closeCmd, m.setStatus("Added "+entry.Title, false))
}

// removeWatched removes the highlighted watched entry
func (m *Model) removeWatched() tea.Cmd {
	entry, ok := m.watched.Selected()
	if !ok {
		return nil
	}

	removed, err := m.WatchedSvc.Remove(entry.ID)
	if err != nil {
		m.logger.Error("failed to remove watched entry", "id", entry.ID, "error", err)
		return m.setStatus(watchedErrorMessage(err), true)
	}
	if !removed {
		return nil
	}
	m.watched.SetEntries(m.WatchedSvc.Entries())
	return m.setStatus("Removed "+entry.Title, false)
}

// setStatus shows a footer message and schedules its removal
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusID++
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusID, statusTimeout)
}

// applyFocus pushes the focus state into the components
func (m *Model) applyFocus() {
	if m.focus == FocusSearch {
		m.searchBar.Focus()
	} else {
		m.searchBar.Blur()
	}
	m.results.SetFocused(m.focus == FocusResults)
	m.detail.SetFocused(m.focus == FocusRight && m.detail.Open())
	m.watched.SetFocused(m.focus == FocusRight && !m.detail.Open())
}

// Focus returns the focused pane
func (m Model) Focus() Focus {
	return m.focus
}

// WindowTitle returns the last title sent to the terminal
func (m Model) WindowTitle() string {
	return m.windowTitle
}

// PendingRating returns the rating committed in the detail view
func (m Model) PendingRating() int {
	return m.pendingRating
}

// SearchSnapshot returns the mirrored search state
func (m Model) SearchSnapshot() service.SearchSnapshot {
	return m.search
}

// DetailView exposes the detail component
func (m Model) DetailView() components.DetailView {
	return m.detail
}

// Results exposes the result list component
func (m Model) Results() components.ResultList {
	return m.results
}

// WatchedList exposes the watched list component
func (m Model) WatchedList() components.WatchedList {
	return m.watched
}
