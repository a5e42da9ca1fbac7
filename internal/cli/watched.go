package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/cinelog-app/cinelog/internal/domain"
	"github.com/cinelog-app/cinelog/internal/service"
	"github.com/spf13/cobra"
)

func (a *app) newWatchedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watched",
		Aliases: []string{"w"},
		Short:   "Manage the list of movies you watched",
	}
	cmd.AddCommand(
		a.newWatchedListCommand(),
		a.newWatchedAddCommand(),
		a.newWatchedRemoveCommand(),
		a.newWatchedSummaryCommand(),
	)
	return cmd
}

func (a *app) newWatchedListCommand() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List watched movies",
		Example: `  cinelog watched list --filter dark
  cinelog watched list --where 'userRating >= 8 && runtime < 120'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *service.WatchedFilter
			if opts.where != "" {
				var err error
				if filter, err = service.CompileWatchedFilter(opts.where); err != nil {
					return err
				}
			}

			svc, closeFn, err := a.openWatched()
			if err != nil {
				return err
			}
			defer closeFn()

			entries := svc.Entries()
			if filter != nil {
				if entries, err = filter.Apply(entries); err != nil {
					return err
				}
			}
			entries = service.FuzzyMatchTitles(entries, opts.fuzzy)

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No watched movies")
				return nil
			}
			for _, e := range entries {
				printWatchedRow(out, e)
			}
			return nil
		},
	}
	opts.addFlags(cmd.Flags())
	return cmd
}

func (a *app) newWatchedAddCommand() *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:     "add <id>",
		Short:   "Rate a movie and add it to the watched list",
		Example: "  cinelog watched add tt0372784 --rating 8",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if opts.rating < 1 || opts.rating > a.cfg.UI.MaxStars {
				return fmt.Errorf("%w: rating must be between 1 and %d", domain.ErrInvalidRating, a.cfg.UI.MaxStars)
			}

			dir, err := a.directory()
			if err != nil {
				return err
			}
			svc, closeFn, err := a.openWatched()
			if err != nil {
				return err
			}
			defer closeFn()

			if e, ok := svc.Get(id); ok {
				return fmt.Errorf("%s is already on the watched list with %d stars", e.Title, e.UserRating)
			}

			snap := service.NewDetailSession(dir, a.logger).Fetch(cmd.Context(), id)
			if snap.State != service.DetailReady || snap.Detail == nil {
				return fmt.Errorf("%s: %s", id, snap.Message)
			}

			entry := domain.NewWatchedEntry(*snap.Detail, opts.rating)
			if err := svc.Add(entry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) with %d ★\n", entry.Title, entry.Year, entry.UserRating)
			return nil
		},
	}
	opts.addFlags(cmd.Flags())
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}

func (a *app) newWatchedRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a movie from the watched list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := a.openWatched()
			if err != nil {
				return err
			}
			defer closeFn()

			id := args[0]
			entry, _ := svc.Get(id)
			removed, err := svc.Remove(id)
			if err != nil {
				return err
			}
			if !removed {
				return errors.New(id + " is not on the watched list")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", entry.Title)
			return nil
		},
	}
}

func (a *app) newWatchedSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show averages over the watched list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := a.openWatched()
			if err != nil {
				return err
			}
			defer closeFn()

			s := svc.Summary()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Movies watched:        %d\n", s.Count)
			fmt.Fprintf(out, "Average your rating:   %.2f\n", s.AverageUserRating)
			fmt.Fprintf(out, "Average IMDb rating:   %.2f\n", s.AverageCriticRating)
			fmt.Fprintf(out, "Average runtime:       %.0f min\n", s.AverageRuntime)
			return nil
		},
	}
}

func printWatchedRow(w io.Writer, e domain.WatchedEntry) {
	fmt.Fprintf(w, "%-10s  ★%-2d  %s (%s)  %s\n", e.ID, e.UserRating, e.Title, e.Year, e.FormattedRuntime())
}
