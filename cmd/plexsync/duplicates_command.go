package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
	"github.com/logictoad/plex-jellyfin-cli/internal/reconcile"
)

func newDuplicatesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates <movies|tv> <plex|jellyfin>",
		Short: "List items backed by more than one media version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			library, err := parseLibrary(args[0])
			if err != nil {
				return err
			}
			backend, err := ctx.catalogFor(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if library == "movies" {
				movies, err := backend.Movies(cmd.Context(), catalog.ListOptions{})
				if err != nil {
					return err
				}
				dupes := reconcile.DuplicateMovies(movies)
				if len(dupes) == 0 {
					fmt.Fprintf(out, "No movies with combined versions on %s\n", backend.Name())
					return nil
				}
				rows := make([][]string, 0, len(dupes))
				for _, dupe := range dupes {
					rows = append(rows, []string{dupe.Title, strconv.Itoa(dupe.Versions)})
				}
				fmt.Fprintln(out, renderTable([]string{"Title", "Versions"}, rows,
					[]columnAlignment{alignLeft, alignRight}))
				return nil
			}

			shows, err := backend.Shows(cmd.Context(), catalog.ListOptions{})
			if err != nil {
				return err
			}
			var rows [][]string
			for _, show := range shows {
				episodes, err := backend.Episodes(cmd.Context(), show.ID, catalog.ListOptions{})
				if err != nil {
					return err
				}
				for _, dupe := range reconcile.DuplicateEpisodes(show.Title, episodes) {
					rows = append(rows, []string{
						dupe.ShowTitle,
						"S" + strconv.Itoa(dupe.Season) + "E" + strconv.Itoa(dupe.Episode),
						dupe.Title,
						strconv.Itoa(dupe.Versions),
					})
				}
			}
			if len(rows) == 0 {
				fmt.Fprintf(out, "No episodes with combined versions on %s\n", backend.Name())
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Show", "Position", "Episode", "Versions"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))
			return nil
		},
	}
}
