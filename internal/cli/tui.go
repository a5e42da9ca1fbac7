package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cinelog-app/cinelog/internal/service"
	"github.com/cinelog-app/cinelog/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// runTUI starts the interactive interface, running setup first when no API key
// is configured
func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the interactive interface needs a terminal, see `cinelog --help` for commands")
	}

	if !a.cfg.IsConfigured() {
		if err := a.runSetup(cmd, setupOptions{}); err != nil {
			return err
		}
	}

	dir, err := a.directory()
	if err != nil {
		return err
	}
	watchedSvc, closeFn, err := a.openWatched()
	if err != nil {
		return err
	}
	defer closeFn()

	model := tui.NewModel(
		service.NewSearchSession(dir, a.logger),
		service.NewDetailSession(dir, a.logger),
		watchedSvc,
		a.logger,
	)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	a.logger.Info("starting TUI", "version", a.version)
	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	a.logger.Info("shutting down")
	return nil
}
