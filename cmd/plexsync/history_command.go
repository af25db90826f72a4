package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/logictoad/plex-jellyfin-cli/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var actionsRun string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past sync runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.HistoryDBPath())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			out := cmd.OutOrStdout()

			if actionsRun != "" {
				actions, err := store.RunActions(cmd.Context(), actionsRun)
				if err != nil {
					return err
				}
				if len(actions) == 0 {
					fmt.Fprintf(out, "No actions recorded for run %s\n", actionsRun)
					return nil
				}
				rows := make([][]string, 0, len(actions))
				for _, action := range actions {
					position := ""
					if action.Season > 0 || action.Episode > 0 {
						position = "S" + strconv.Itoa(action.Season) + "E" + strconv.Itoa(action.Episode)
					}
					rows = append(rows, []string{
						action.Action,
						action.Title,
						position,
						formatAddedAt(action.AddedAt),
						yesNo(action.Applied),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Action", "Title", "Position", "Added At", "Applied"}, rows, nil))
				return nil
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No sync runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.StartedAt.Format("2006-01-02 15:04:05"),
					run.Direction,
					run.Library,
					strconv.Itoa(run.Checked),
					strconv.Itoa(run.Unmatched),
					strconv.Itoa(run.Applied),
					strconv.Itoa(run.Skipped),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Direction", "Library", "Checked", "Unmatched", "Applied", "Skipped"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to show (0 for all)")
	cmd.Flags().StringVar(&actionsRun, "actions", "", "Show the recorded actions of one run ID")
	return cmd
}
