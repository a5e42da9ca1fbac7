package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cinelog-app/cinelog/internal/tui/styles"
)

// SearchBar is the query input at the top of the search pane
type SearchBar struct {
	input     textinput.Model
	prevQuery string
}

// NewSearchBar creates a focused search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.Focus()

	return SearchBar{input: ti}
}

// Focus focuses the input
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes focus from the input
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused returns true if the input has focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Query returns the current search query
func (s SearchBar) Query() string {
	return s.input.Value()
}

// SetQuery replaces the query text
func (s *SearchBar) SetQuery(q string) {
	s.input.SetValue(q)
}

// SetWidth sizes the input
func (s *SearchBar) SetWidth(width int) {
	s.input.Width = max(width-lipgloss.Width(s.input.Prompt)-1, 10)
}

// QueryChanged returns true if the query changed since last check and updates prevQuery
func (s *SearchBar) QueryChanged() bool {
	current := s.input.Value()
	if current != s.prevQuery {
		s.prevQuery = current
		return true
	}
	return false
}

// Update forwards messages to the text input
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the input
func (s SearchBar) View() string {
	return s.input.View()
}
