package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Layout constants for list panes
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// scroller tracks the cursor and viewport of a vertical list
type scroller struct {
	cursor     int
	offset     int
	maxVisible int
}

// move handles navigation keys; count is the number of rows.
// Returns true if the key was a navigation key.
func (s *scroller) move(msg tea.KeyMsg, count int) bool {
	if count == 0 {
		return false
	}

	switch {
	case key.Matches(msg, ListKeys.Down):
		if s.cursor < count-1 {
			s.cursor++
		}
	case key.Matches(msg, ListKeys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, ListKeys.Home):
		s.cursor = 0
	case key.Matches(msg, ListKeys.End):
		s.cursor = count - 1
	case key.Matches(msg, ListKeys.HalfDown):
		s.cursor = min(s.cursor+max(s.maxVisible/2, 1), count-1)
	case key.Matches(msg, ListKeys.HalfUp):
		s.cursor = max(s.cursor-max(s.maxVisible/2, 1), 0)
	case key.Matches(msg, ListKeys.PageDown):
		s.cursor = min(s.cursor+max(s.maxVisible, 1), count-1)
	case key.Matches(msg, ListKeys.PageUp):
		s.cursor = max(s.cursor-max(s.maxVisible, 1), 0)
	default:
		return false
	}
	s.ensureVisible()
	return true
}

// clamp keeps the cursor inside [0, count)
func (s *scroller) clamp(count int) {
	if s.cursor >= count {
		s.cursor = count - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.offset > s.cursor {
		s.offset = s.cursor
	}
	s.ensureVisible()
}

func (s *scroller) reset() {
	s.cursor = 0
	s.offset = 0
}

func (s *scroller) ensureVisible() {
	// Don't adjust offset if size hasn't been set yet
	if s.maxVisible <= 0 {
		return
	}
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+s.maxVisible {
		s.offset = s.cursor - s.maxVisible + 1
	}
}

// window returns the [start, end) range of visible rows
func (s *scroller) window(count int) (int, int) {
	visible := s.maxVisible
	if visible <= 0 {
		visible = count
	}
	end := s.offset + visible
	if end > count {
		end = count
	}
	return s.offset, end
}
