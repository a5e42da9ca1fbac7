package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cinelog-app/cinelog/internal/adapter"
	"github.com/cinelog-app/cinelog/internal/adapter/omdb"
	"github.com/cinelog-app/cinelog/internal/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// verifyQuery is searched once to check a new API key
const verifyQuery = "batman"

func (a *app) newSetupCommand() *cobra.Command {
	var opts setupOptions

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Configure the OMDb API key",
		Long: `Prompts for an OMDb API key (get one at https://www.omdbapi.com/apikey.aspx),
checks it with a test search and saves it to the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSetup(cmd, opts)
		},
	}
	opts.addFlags(cmd.Flags())
	return cmd
}

func (a *app) runSetup(cmd *cobra.Command, opts setupOptions) error {
	out := cmd.OutOrStdout()

	key := strings.TrimSpace(opts.apiKey)
	if key == "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Welcome to cinelog!")
		fmt.Fprintln(out)
		fmt.Fprint(out, "Enter your OMDb API key: ")

		var err error
		key, err = readSecret(a.in)
		fmt.Fprintln(out)
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
	}
	if key == "" {
		return errors.New("API key cannot be empty")
	}

	if !opts.skipVerify {
		if err := a.verifyKey(cmd.Context(), key); err != nil {
			return err
		}
		fmt.Fprintln(out, "✓ API key works")
	}

	a.cfg.OMDb.APIKey = key
	path := a.configPath()
	if err := adapter.SaveConfig(a.cfg, path); err != nil {
		return err
	}
	a.logger.Info("configuration saved", "path", path)
	fmt.Fprintf(out, "Saved configuration to %s\n", path)
	return nil
}

// verifyKey runs one search with key; a 401 means the key was rejected
func (a *app) verifyKey(ctx context.Context, key string) error {
	client, err := omdb.NewClient(a.cfg.OMDb.BaseURL, key, a.logger, omdb.WithTimeout(a.cfg.OMDb.Timeout))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	_, err = client.SearchByTitle(ctx, verifyQuery)
	var te *domain.TransportError
	switch {
	case err == nil, errors.Is(err, domain.ErrNotFound):
		return nil
	case errors.As(err, &te) && te.StatusCode == 401:
		return errors.New("the OMDb API key was rejected")
	default:
		return fmt.Errorf("could not verify the API key: %w", err)
	}
}

// configPath is where setup writes: the --config file, the file that was
// loaded, or the default location
func (a *app) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	if a.cfg.Source != "" {
		return a.cfg.Source
	}
	return adapter.DefaultConfigFile()
}

// readSecret reads a line without echo when in is a terminal
func readSecret(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
