package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cinelog-app/cinelog/internal/domain"
	"github.com/cinelog-app/cinelog/internal/service"
	"github.com/cinelog-app/cinelog/internal/tui/styles"
)

// detailContent holds the three-zone layout content
type detailContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// DetailView shows the selected movie and its rating widget
type DetailView struct {
	snap    service.DetailSnapshot
	watched *domain.WatchedEntry // set when the movie is already rated
	rating  StarRating

	width      int
	height     int
	offset     int // body scroll offset
	maxVisible int
	focused    bool
}

// NewDetailView creates an empty detail view with a maxStars rating widget
func NewDetailView(maxStars int) DetailView {
	return DetailView{rating: NewStarRating(maxStars)}
}

// SetSnapshot updates the displayed state. Switching to another movie resets
// the rating widget and scroll position.
func (d *DetailView) SetSnapshot(snap service.DetailSnapshot, watched *domain.WatchedEntry) {
	if snap.ID != d.snap.ID {
		d.rating.Reset()
		d.rating.SetSubject(snap.ID)
		d.offset = 0
	}
	d.snap = snap
	d.watched = watched
}

// Snapshot returns the displayed state
func (d DetailView) Snapshot() service.DetailSnapshot {
	return d.snap
}

// Open reports whether anything is selected
func (d DetailView) Open() bool {
	return d.snap.State != service.DetailNone
}

// Rating returns the committed user rating, 0 if none
func (d DetailView) Rating() int {
	return d.rating.Rating()
}

// Stars exposes the rating widget
func (d DetailView) Stars() StarRating {
	return d.rating
}

// Watched returns the existing watched entry for the shown movie
func (d DetailView) Watched() *domain.WatchedEntry {
	return d.watched
}

// CanRate reports whether the rating widget is live
func (d DetailView) CanRate() bool {
	return d.snap.State == service.DetailReady && d.watched == nil
}

// SetSize updates the component dimensions
func (d *DetailView) SetSize(width, height int) {
	d.width = width
	d.height = height
	// Reserve border, scroll indicators, and title line
	d.maxVisible = max(height-BorderHeight-ScrollIndicatorLines-1, 1)
}

// SetFocused toggles the active border
func (d *DetailView) SetFocused(focused bool) {
	d.focused = focused
	if !focused {
		d.rating.HoverOut()
	}
}

// Update routes rating keys to the widget and j/k to body scrolling
func (d DetailView) Update(msg tea.Msg) (DetailView, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !d.focused {
		return d, nil
	}

	switch {
	case key.Matches(keyMsg, ListKeys.Down):
		d.offset++
		return d, nil
	case key.Matches(keyMsg, ListKeys.Up):
		if d.offset > 0 {
			d.offset--
		}
		return d, nil
	}

	if !d.CanRate() {
		return d, nil
	}
	var cmd tea.Cmd
	d.rating, cmd = d.rating.Update(keyMsg)
	return d, cmd
}

// View renders the component
func (d DetailView) View() string {
	style := styles.InactiveBorder
	if d.focused {
		style = styles.ActiveBorder
	}

	// Border takes 2 chars (1 each side), leave 1 char safety margin
	contentWidth := max(d.width-3, 10)
	content := d.renderContent(contentWidth)

	titleLine := styles.AccentStyle.Render(styles.Truncate("Movie", contentWidth))

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := max(d.maxVisible-len(headerLines)-len(footerLines), 1)

	// Clamp body scroll offset
	maxOffset := max(len(bodyLines)-availableForBody, 0)
	offset := min(d.offset, maxOffset)

	end := min(offset+availableForBody, len(bodyLines))
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine}
	parts = append(parts, headerLines...)
	parts = append(parts, up)
	parts = append(parts, visibleBody...)
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	parts = append(parts, footerLines...)

	// Subtract frame (border) size so total rendered size equals d.width x d.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(d.width-frameW, 1)).
		Height(max(d.height-frameH, 1)).
		Render(strings.Join(parts, "\n"))
}

func (d DetailView) renderContent(width int) detailContent {
	switch d.snap.State {
	case service.DetailLoading:
		return detailContent{body: styles.DimStyle.Render("Loading...")}
	case service.DetailError:
		return detailContent{body: styles.ErrorStyle.Render(styles.WordWrap(d.snap.Message, width))}
	case service.DetailReady:
		if d.snap.Detail != nil {
			return detailContent{
				header: renderDetailHeader(*d.snap.Detail, width),
				body:   renderDetailBody(*d.snap.Detail, width),
				footer: d.renderRatingFooter(),
			}
		}
	}
	return detailContent{body: styles.DimStyle.Render("No movie selected")}
}

func renderDetailHeader(m domain.MovieDetail, width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(styles.Truncate(m.Title, width)))
	b.WriteString("\n")

	// Meta line: Released • Runtime
	var metaParts []string
	if m.Released != "" {
		metaParts = append(metaParts, m.Released)
	} else if m.Year != "" {
		metaParts = append(metaParts, m.Year)
	}
	metaParts = append(metaParts, m.FormattedRuntime())
	b.WriteString(styles.DimStyle.Render(strings.Join(metaParts, " · ")))
	b.WriteString("\n")

	if m.Genre != "" {
		b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(m.Genre, width)))
		b.WriteString("\n")
	}

	if m.CriticRating > 0 {
		ratingText := fmt.Sprintf("★ %.1f IMDb rating", m.CriticRating)
		var ratingStyle lipgloss.Style
		switch {
		case m.CriticRating >= 7:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Green)
		case m.CriticRating >= 5:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Gold)
		default:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Red)
		}
		b.WriteString(ratingStyle.Render(ratingText))
	} else {
		b.WriteString(styles.DimStyle.Render("No IMDb rating"))
	}

	return b.String()
}

func renderDetailBody(m domain.MovieDetail, width int) string {
	var b strings.Builder

	if m.Plot != "" {
		b.WriteString(styles.SubtitleStyle.Render(styles.WordWrap(m.Plot, width-2)))
		b.WriteString("\n\n")
	}
	if m.Actors != "" {
		b.WriteString(styles.DimStyle.Render(styles.WordWrap("Starring "+m.Actors, width-2)))
		b.WriteString("\n")
	}
	if m.Director != "" {
		b.WriteString(styles.DimStyle.Render(styles.WordWrap("Directed by "+m.Director, width-2)))
		b.WriteString("\n")
	}
	if m.PosterURL != "" {
		b.WriteString(styles.DimStyle.Render(styles.Truncate("Poster: "+m.PosterURL, width)))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (d DetailView) renderRatingFooter() string {
	if d.watched != nil {
		return styles.AccentStyle.Render(fmt.Sprintf("You rated this movie %d %s", d.watched.UserRating, styles.StarFullChar))
	}

	footer := d.rating.View()
	if d.rating.Rating() > 0 {
		footer += "\n" + styles.RenderHint("a", "add to watched list")
	} else {
		footer += "\n" + styles.DimStyle.Render("←/→ then enter, or 1-9/0 to rate")
	}
	return footer
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
