package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cinelog-app/cinelog/internal/service"
)

// Command factories for async operations.
// Each runs the directory call off the Update loop; the session drops the
// outcome on Apply if a newer request superseded it.

// SearchCmd executes a search request
func SearchCmd(svc *service.SearchSession, req *service.SearchRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		return SearchOutcomeMsg{Outcome: svc.Execute(req)}
	}
}

// DetailCmd executes a detail request
func DetailCmd(svc *service.DetailSession, req *service.DetailRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		return DetailOutcomeMsg{Outcome: svc.Execute(req)}
	}
}

// ClearStatusCmd clears status message id after a delay
func ClearStatusCmd(id int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
