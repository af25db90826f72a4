package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <title> <movies|tv> <plex|jellyfin>",
		Short: "Show details for one title",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			library, err := parseLibrary(args[1])
			if err != nil {
				return err
			}
			backend, err := ctx.catalogFor(cmd.Context(), args[2])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if library == "movies" {
				movie, err := backend.MovieByTitle(cmd.Context(), title)
				if err != nil {
					return err
				}
				if movie == nil {
					fmt.Fprintf(out, "No movie titled %q on %s\n", title, backend.Name())
					return nil
				}
				rows := [][]string{
					{"Title", movie.Title},
					{"Year", formatYear(movie.Year)},
					{"Watched", yesNo(movie.Watched)},
					{"Added", formatAddedAt(movie.AddedAt)},
					{"Versions", fmt.Sprintf("%d", movie.Versions)},
				}
				fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))
				return nil
			}

			show, err := backend.ShowByTitle(cmd.Context(), title)
			if err != nil {
				return err
			}
			if show == nil {
				fmt.Fprintf(out, "No show titled %q on %s\n", title, backend.Name())
				return nil
			}
			episodes, err := backend.Episodes(cmd.Context(), show.ID, catalog.ListOptions{})
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(episodes))
			for _, episode := range episodes {
				rows = append(rows, []string{
					fmt.Sprintf("%d", episode.Season),
					fmt.Sprintf("%d", episode.Episode),
					episode.Title,
					yesNo(episode.Watched),
				})
			}
			fmt.Fprintf(out, "%s (%s)\n", show.Title, formatYear(show.Year))
			fmt.Fprintln(out, renderTable(
				[]string{"Season", "Episode", "Title", "Watched"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func formatAddedAt(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format("2006-01-02 15:04")
}
