package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cinelog-app/cinelog/internal/domain"
	"github.com/cinelog-app/cinelog/internal/service"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds parallel detail requests in `info`
const maxConcurrentFetches = 4

func (a *app) newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "search <title...>",
		Short:   "Search movies by title",
		Example: "  cinelog search the dark knight",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.directory()
			if err != nil {
				return err
			}

			session := service.NewSearchSession(dir, a.logger)
			snap := session.Search(cmd.Context(), strings.Join(args, " "))

			switch snap.State {
			case service.SearchIdle:
				return errors.New("search query cannot be empty")
			case service.SearchError:
				return errors.New(snap.Message)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found %d results\n", len(snap.Results))
			for _, r := range snap.Results {
				fmt.Fprintf(out, "%-10s  %-9s  %s\n", r.ID, r.Year, r.Title)
			}
			return nil
		},
	}
}

func (a *app) newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "info <id>...",
		Short:   "Show movie details by IMDb id",
		Example: "  cinelog info tt0372784 tt0468569",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.directory()
			if err != nil {
				return err
			}

			details := make([]*domain.MovieDetail, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxConcurrentFetches)
			for i, id := range args {
				g.Go(func() error {
					d, err := dir.FetchByID(ctx, id)
					if err != nil {
						return fmt.Errorf("%s: %w", id, userError(err))
					}
					details[i] = d
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, d := range details {
				if i > 0 {
					fmt.Fprintln(out)
				}
				printDetail(out, *d)
			}
			return nil
		},
	}
}

func printDetail(w io.Writer, d domain.MovieDetail) {
	fmt.Fprintf(w, "%s (%s)  %s\n", d.Title, d.Year, d.ID)

	meta := []string{}
	if d.Genre != "" {
		meta = append(meta, d.Genre)
	}
	if d.Released != "" {
		meta = append(meta, "released "+d.Released)
	}
	meta = append(meta, d.FormattedRuntime())
	if d.CriticRating > 0 {
		meta = append(meta, fmt.Sprintf("IMDb %.1f", d.CriticRating))
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(meta, " · "))

	if d.Director != "" {
		fmt.Fprintf(w, "  Directed by %s\n", d.Director)
	}
	if d.Actors != "" {
		fmt.Fprintf(w, "  Starring %s\n", d.Actors)
	}
	if d.Plot != "" {
		fmt.Fprintf(w, "  %s\n", d.Plot)
	}
}
