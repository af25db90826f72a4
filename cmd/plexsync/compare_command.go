package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
	"github.com/logictoad/plex-jellyfin-cli/internal/reconcile"
	"github.com/logictoad/plex-jellyfin-cli/internal/titlematch"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var threshold int
	var exact bool

	cmd := &cobra.Command{
		Use:   "compare <movies|tv> <source> <target>",
		Short: "Report source titles missing from the target server",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			library, err := parseLibrary(args[0])
			if err != nil {
				return err
			}
			source, err := ctx.catalogFor(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			target, err := ctx.catalogFor(cmd.Context(), args[2])
			if err != nil {
				return err
			}

			sourceEntries, err := compareEntries(cmd.Context(), source, library)
			if err != nil {
				return err
			}
			targetEntries, err := compareEntries(cmd.Context(), target, library)
			if err != nil {
				return err
			}

			report := reconcile.FindMissing(sourceEntries, targetEntries, reconcile.Options{
				Fuzzy:     !exact,
				Threshold: threshold,
			})

			out := cmd.OutOrStdout()
			if len(report.Missing) == 0 {
				fmt.Fprintf(out, "All %d %s titles on %s are present on %s\n",
					report.SourceTotal, library, source.Name(), target.Name())
				return nil
			}

			rows := make([][]string, 0, len(report.Missing))
			for _, title := range report.Missing {
				rows = append(rows, []string{title})
			}
			fmt.Fprintln(out, renderTable([]string{fmt.Sprintf("Missing on %s", target.Name())}, rows, nil))
			fmt.Fprintf(out, "%d of %d titles missing\n", len(report.Missing), report.SourceTotal)
			return nil
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", titlematch.DefaultThreshold, "Fuzzy match acceptance score (1-100)")
	cmd.Flags().BoolVar(&exact, "exact", false, "Compare by normalized title only, no fuzzy matching")
	return cmd
}

func compareEntries(ctx context.Context, backend catalog.Catalog, library string) ([]reconcile.Entry, error) {
	if library == "movies" {
		movies, err := backend.Movies(ctx, catalog.ListOptions{})
		if err != nil {
			return nil, err
		}
		entries := make([]reconcile.Entry, 0, len(movies))
		for _, movie := range movies {
			entries = append(entries, reconcile.Entry{Title: movie.Title, Year: movie.Year})
		}
		return entries, nil
	}

	shows, err := backend.Shows(ctx, catalog.ListOptions{})
	if err != nil {
		return nil, err
	}
	entries := make([]reconcile.Entry, 0, len(shows))
	for _, show := range shows {
		entries = append(entries, reconcile.Entry{Title: show.Title, Year: show.Year})
	}
	return entries, nil
}
