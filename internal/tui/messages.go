package tui

import (
	"github.com/cinelog-app/cinelog/internal/service"
)

// Message types for the TUI

// SearchOutcomeMsg carries a finished (possibly stale) search
type SearchOutcomeMsg struct {
	Outcome service.SearchOutcome
}

// DetailOutcomeMsg carries a finished (possibly stale) detail fetch
type DetailOutcomeMsg struct {
	Outcome service.DetailOutcome
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message if it is still the one with ID
type ClearStatusMsg struct {
	ID int
}
