package tui

// Layout proportions for the two panes
const (
	LeftPanePercent = 45
	MinPaneWidth    = 30

	// Vertical layout: single footer line
	ChromeHeight = 1

	// Lines above the result rows inside the left pane: search bar, count line
	searchHeaderLines = 2

	// Lines above the watched rows inside the right pane: title, summary, blank
	watchedHeaderLines = 3

	// Border adds 1 char on each side
	borderSize = 2
)

// paneLayout holds calculated pane widths
type paneLayout struct {
	leftWidth  int
	rightWidth int
	height     int
}

// calculateLayout splits the window into the search pane and the right pane
func (m Model) calculateLayout() paneLayout {
	left := max(m.Width*LeftPanePercent/100, MinPaneWidth)
	if left > m.Width {
		left = m.Width
	}
	return paneLayout{
		leftWidth:  left,
		rightWidth: max(m.Width-left, 0),
		height:     max(m.Height-ChromeHeight, 0),
	}
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	layout := m.calculateLayout()
	innerLeft := layout.leftWidth - borderSize
	innerRight := layout.rightWidth - borderSize
	innerHeight := layout.height - borderSize

	m.searchBar.SetWidth(innerLeft)
	m.results.SetSize(innerLeft, innerHeight-searchHeaderLines)
	m.detail.SetSize(layout.rightWidth, layout.height)
	m.watched.SetSize(innerRight, innerHeight-watchedHeaderLines)
}
