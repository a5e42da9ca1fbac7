package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cinelog-app/cinelog/internal/adapter"
	"github.com/cinelog-app/cinelog/internal/adapter/omdb"
	"github.com/cinelog-app/cinelog/internal/domain"
	"github.com/cinelog-app/cinelog/internal/service"
	"github.com/cinelog-app/cinelog/internal/store"
	"github.com/spf13/cobra"
)

// errNotConfigured is returned by commands that need the OMDb API key
var errNotConfigured = fmt.Errorf("no OMDb API key configured, run `%s setup` first", adapter.AppName)

// app holds state shared by all commands of one invocation
type app struct {
	version string
	cfgFile string
	cfg     *adapter.Config
	logger  *slog.Logger

	in io.Reader
}

// NewRootCommand builds the cinelog command tree
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version, in: os.Stdin}
	return a.rootCommand()
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   adapter.AppName,
		Short: "Search movies, rate them, and keep a watched list",
		Long: `cinelog searches the OMDb movie directory, shows movie details, and keeps
a list of the movies you watched with your own star rating.

Run without arguments to open the interactive interface.`,
		Version:           a.version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.initialize,
		RunE:              a.runTUI,
	}
	root.SetVersionTemplate(fmt.Sprintf("%s {{.Version}}\n", adapter.AppName))
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is "+adapter.DefaultConfigFile()+")")

	root.AddCommand(
		a.newSetupCommand(),
		a.newSearchCommand(),
		a.newInfoCommand(),
		a.newWatchedCommand(),
	)
	return root
}

// Execute runs the root command with os.Args and returns the process exit code
func Execute(version string) int {
	root := NewRootCommand(version)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// initialize loads configuration and sets up logging
func (a *app) initialize(cmd *cobra.Command, args []string) error {
	cfg, err := adapter.LoadConfig(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	a.logger = adapter.LoggerOrNull(&cfg.Logging)
	slog.SetDefault(a.logger)
	a.logger.Debug("command started", "command", cmd.CommandPath(), "version", a.version, "config", cfg.Source)
	return nil
}

// directory creates the OMDb client from configuration
func (a *app) directory() (*omdb.Client, error) {
	if !a.cfg.IsConfigured() {
		return nil, errNotConfigured
	}
	return omdb.NewClient(a.cfg.OMDb.BaseURL, a.cfg.OMDb.APIKey, a.logger, omdb.WithTimeout(a.cfg.OMDb.Timeout))
}

// openWatched opens the watched list store. The returned close function must be called.
func (a *app) openWatched() (*service.WatchedService, func(), error) {
	repo, err := store.NewWatchedStore(a.cfg.Storage.Dir)
	if err != nil {
		return nil, nil, err
	}
	svc, err := service.NewWatchedService(repo, a.cfg.UI.MaxStars, a.logger)
	if err != nil {
		repo.Close()
		return nil, nil, err
	}
	closeFn := func() {
		if err := repo.Close(); err != nil {
			a.logger.Error("failed to close watched store", "error", err)
		}
	}
	return svc, closeFn, nil
}

// userError turns directory errors into the message the user sees
func userError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(domain.UserMessage(err))
}
