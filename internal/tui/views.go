package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cinelog-app/cinelog/internal/service"
	"github.com/cinelog-app/cinelog/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	layout := m.calculateLayout()
	left := m.renderSearchPane(layout.leftWidth, layout.height)

	var right string
	if m.detail.Open() {
		right = m.detail.View()
	} else {
		right = m.renderWatchedPane(layout.rightWidth, layout.height)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

// renderSearchPane renders the search bar, result count, and result state
func (m Model) renderSearchPane(width, height int) string {
	style := styles.InactiveBorder
	if m.focus == FocusSearch || m.focus == FocusResults {
		style = styles.ActiveBorder
	}
	inner := max(width-borderSize, 10)

	var b strings.Builder
	b.WriteString(m.searchBar.View())
	b.WriteString("\n")

	switch m.search.State {
	case service.SearchLoading:
		b.WriteString(m.spinner.View() + styles.DimStyle.Render(" Searching..."))
	case service.SearchError:
		b.WriteString(styles.ErrorStyle.Render(styles.WordWrap("⛔ "+m.search.Message, inner)))
	case service.SearchSuccess:
		b.WriteString(styles.AccentStyle.Render(resultCountLabel(len(m.search.Results))))
		b.WriteString("\n")
		b.WriteString(m.results.View())
	default:
		b.WriteString(styles.DimStyle.Render("Type a title to search"))
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(width-frameW, 1)).
		Height(max(height-frameH, 1)).
		MaxHeight(height).
		Render(b.String())
}

// resultCountLabel renders the header above the result list
func resultCountLabel(n int) string {
	if n == 1 {
		return "Found 1 result"
	}
	return fmt.Sprintf("Found %d results", n)
}

// renderWatchedPane renders the watched summary and list
func (m Model) renderWatchedPane(width, height int) string {
	style := styles.InactiveBorder
	if m.focus == FocusRight {
		style = styles.ActiveBorder
	}

	summary := m.WatchedSvc.Summary()

	var b strings.Builder
	b.WriteString(styles.AccentStyle.Render("Movies you watched"))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(renderSummary(summary.Count, summary.AverageUserRating, summary.AverageCriticRating, summary.AverageRuntime)))
	b.WriteString("\n")
	b.WriteString(m.watched.View())

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(width-frameW, 1)).
		Height(max(height-frameH, 1)).
		MaxHeight(height).
		Render(b.String())
}

func renderSummary(count int, avgUser, avgCritic, avgRuntime float64) string {
	noun := "movies"
	if count == 1 {
		noun = "movie"
	}
	return fmt.Sprintf("#️⃣ %d %s   ★ %.2f   ⭐ %.2f   ⏳ %.0f min", count, noun, avgUser, avgCritic, avgRuntime)
}

func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	}

	right := strings.Join(m.footerHints(), "  ")

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// footerHints lists the keys that do something in the focused pane
func (m Model) footerHints() []string {
	switch {
	case m.focus == FocusSearch:
		return []string{styles.RenderHint("tab", "switch"), styles.RenderHint("C-c", "quit")}
	case m.focus == FocusResults:
		return []string{styles.RenderHint("enter", "details"), styles.RenderHint("s", "search"), styles.RenderHint("q", "quit")}
	case m.detail.Open():
		hints := []string{styles.RenderHint("esc", "close")}
		if m.detail.CanRate() && m.detail.Rating() > 0 {
			hints = append(hints, styles.RenderHint("a", "add"))
		}
		return append(hints, styles.RenderHint("q", "quit"))
	case m.watched.IsFilterTyping():
		return []string{styles.RenderHint("enter", "accept"), styles.RenderHint("esc", "clear")}
	default:
		return []string{styles.RenderHint("/", "filter"), styles.RenderHint("x", "remove"), styles.RenderHint("q", "quit")}
	}
}
