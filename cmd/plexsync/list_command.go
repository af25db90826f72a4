package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var withPath bool
	var exportPath string

	cmd := &cobra.Command{
		Use:   "list <movies|tv> <plex|jellyfin>",
		Short: "List library titles on one server",
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

			headers, rows, err := listRows(cmd.Context(), backend, library, withPath)
			if err != nil {
				return err
			}

			if exportPath != "" {
				if err := exportCSV(exportPath, headers, rows); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", len(rows), exportPath)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, nil))
			fmt.Fprintf(cmd.OutOrStdout(), "%d titles\n", len(rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withPath, "with-path", false, "Include file paths (show folders for TV)")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write the listing to a CSV file instead of stdout")
	return cmd
}

func listRows(ctx context.Context, backend catalog.Catalog, library string, withPath bool) ([]string, [][]string, error) {
	headers := []string{"Title", "Year"}
	if withPath {
		headers = append(headers, "Path")
	}

	var rows [][]string
	switch library {
	case "movies":
		movies, err := backend.Movies(ctx, catalog.ListOptions{WithPaths: withPath})
		if err != nil {
			return nil, nil, err
		}
		for _, movie := range movies {
			row := []string{movie.Title, formatYear(movie.Year)}
			if withPath {
				row = append(row, movie.Path)
			}
			rows = append(rows, row)
		}
	case "tv":
		shows, err := backend.Shows(ctx, catalog.ListOptions{WithPaths: withPath})
		if err != nil {
			return nil, nil, err
		}
		for _, show := range shows {
			row := []string{show.Title, formatYear(show.Year)}
			if withPath {
				row = append(row, showFolder(ctx, backend, show))
			}
			rows = append(rows, row)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		return strings.ToLower(rows[i][0]) < strings.ToLower(rows[j][0])
	})
	return headers, rows, nil
}

// showFolder derives a show's directory from its first episode's file path.
// Episodes filed under a season directory report the season's parent.
func showFolder(ctx context.Context, backend catalog.Catalog, show catalog.Show) string {
	episodes, err := backend.Episodes(ctx, show.ID, catalog.ListOptions{WithPaths: true})
	if err != nil || len(episodes) == 0 {
		return ""
	}
	for _, episode := range episodes {
		if episode.Path == "" {
			continue
		}
		dir := filepath.Dir(episode.Path)
		if strings.HasPrefix(strings.ToLower(filepath.Base(dir)), "season") {
			dir = filepath.Dir(dir)
		}
		return dir
	}
	return ""
}

func formatYear(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
