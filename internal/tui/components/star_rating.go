package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cinelog-app/cinelog/internal/tui/styles"
)

// RatingChangedMsg is emitted whenever the committed rating changes.
// ID is the subject the widget was rating when the change was made.
type RatingChangedMsg struct {
	ID     string
	Rating int
}

// StarRating is a row of stars the user can preview and commit.
// selected is the committed rating (0 = unrated); hover is a transient preview.
type StarRating struct {
	subject  string
	max      int
	selected int
	hover    int
}

// NewStarRating creates an unrated widget with max stars
func NewStarRating(max int) StarRating {
	if max < 1 {
		max = 1
	}
	return StarRating{max: max}
}

// Max returns the number of stars
func (r StarRating) Max() int {
	return r.max
}

// SetSubject names what is being rated; it is echoed in RatingChangedMsg
func (r *StarRating) SetSubject(id string) {
	r.subject = id
}

// Subject returns the id set by SetSubject
func (r StarRating) Subject() string {
	return r.subject
}

// Rating returns the committed rating, 0 if none
func (r StarRating) Rating() int {
	return r.selected
}

// Preview returns what the stars currently show: the hover preview if any,
// otherwise the committed rating
func (r StarRating) Preview() int {
	if r.hover > 0 {
		return r.hover
	}
	return r.selected
}

// Hovering reports whether a preview is active
func (r StarRating) Hovering() bool {
	return r.hover > 0
}

// Click commits star i (0-based) as the rating and clears the preview.
// Returns a command emitting RatingChangedMsg when the rating changed.
func (r *StarRating) Click(i int) tea.Cmd {
	if i < 0 || i >= r.max {
		return nil
	}
	r.hover = 0
	if r.selected == i+1 {
		return nil
	}
	r.selected = i + 1
	msg := RatingChangedMsg{ID: r.subject, Rating: r.selected}
	return func() tea.Msg { return msg }
}

// HoverIn previews star i (0-based) without committing
func (r *StarRating) HoverIn(i int) {
	if i < 0 || i >= r.max {
		return
	}
	r.hover = i + 1
}

// HoverOut clears the preview
func (r *StarRating) HoverOut() {
	r.hover = 0
}

// Reset clears both the rating and the preview without emitting
func (r *StarRating) Reset() {
	r.selected = 0
	r.hover = 0
}

// Update maps keys onto HoverIn/HoverOut/Click
func (r StarRating) Update(msg tea.Msg) (StarRating, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch {
	case key.Matches(keyMsg, RatingKeys.Less):
		next := r.Preview() - 1
		if next < 1 {
			next = 1
		}
		r.HoverIn(next - 1)
		return r, nil

	case key.Matches(keyMsg, RatingKeys.More):
		next := r.Preview() + 1
		if next > r.max {
			next = r.max
		}
		r.HoverIn(next - 1)
		return r, nil

	case key.Matches(keyMsg, RatingKeys.Commit):
		if r.hover == 0 {
			return r, nil
		}
		cmd := r.Click(r.hover - 1)
		return r, cmd
	}

	if digit, ok := digitStar(keyMsg); ok {
		cmd := r.Click(digit - 1)
		return r, cmd
	}
	return r, nil
}

// digitStar maps "1".."9" to that many stars and "0" to ten
func digitStar(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	ch := msg.Runes[0]
	switch {
	case ch == '0':
		return 10, true
	case ch >= '1' && ch <= '9':
		return int(ch - '0'), true
	}
	return 0, false
}

// View renders the stars followed by the previewed number
func (r StarRating) View() string {
	shown := r.Preview()
	style := styles.StarFullStyle
	if r.hover > 0 && r.hover != r.selected {
		style = styles.StarPreviewStyle
	}

	var b strings.Builder
	for i := 1; i <= r.max; i++ {
		if i <= shown {
			b.WriteString(style.Render(styles.StarFullChar))
		} else {
			b.WriteString(styles.StarEmptyStyle.Render(styles.StarEmptyChar))
		}
	}
	if shown > 0 {
		b.WriteString(" ")
		b.WriteString(styles.AccentStyle.Render(fmt.Sprintf("%d", shown)))
	}
	return b.String()
}
