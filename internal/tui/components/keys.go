package components

import "github.com/charmbracelet/bubbles/key"

// ListKeyMap defines key bindings for list navigation
type ListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultListKeyMap returns the default list key bindings
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "half page up"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "half page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
	}
}

// FilterKeyMap defines key bindings for the watched list filter
type FilterKeyMap struct {
	Filter key.Binding
	Accept key.Binding
	Clear  key.Binding
}

// DefaultFilterKeyMap returns the default filter key bindings
func DefaultFilterKeyMap() FilterKeyMap {
	return FilterKeyMap{
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept filter"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
	}
}

// RatingKeyMap defines key bindings for the star rating widget
type RatingKeyMap struct {
	Less   key.Binding
	More   key.Binding
	Commit key.Binding
}

// DefaultRatingKeyMap returns the default rating key bindings
func DefaultRatingKeyMap() RatingKeyMap {
	return RatingKeyMap{
		Less: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "fewer stars"),
		),
		More: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "more stars"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "rate"),
		),
	}
}

// Package-level key map instances
var (
	ListKeys   = DefaultListKeyMap()
	FilterKeys = DefaultFilterKeyMap()
	RatingKeys = DefaultRatingKeyMap()
)
