package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/logictoad/plex-jellyfin-cli/internal/history"
	"github.com/logictoad/plex-jellyfin-cli/internal/syncer"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync <plex,jellyfin|jellyfin,plex> <movies|tv|all>",
		Short: "Synchronize watched state between servers",
		Long: `Synchronize watched state between servers for one direction per run.
The first server in the pair is the source whose watched flags are propagated.
The jellyfin,plex direction also reconciles movie added-at timestamps, taking
the Jellyfin value when the two servers disagree by more than the configured
window.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, err := syncer.ParseDirection(args[0])
			if err != nil {
				return err
			}
			libraries, err := parseSyncLibraries(args[1])
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			runLock := flock.New(cfg.RunLockPath())
			locked, err := runLock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another sync is already running (lock %s)", cfg.RunLockPath())
			}
			defer func() { _ = runLock.Unlock() }()

			local, err := ctx.catalogFor(cmd.Context(), "plex")
			if err != nil {
				return err
			}
			remote, err := ctx.catalogFor(cmd.Context(), "jellyfin")
			if err != nil {
				return err
			}

			engine := syncer.New(local, remote, logger, syncer.Options{
				Threshold:     cfg.Matching.FuzzyThreshold,
				AddedAtWindow: time.Duration(cfg.Sync.AddedAtWindowHours) * time.Hour,
				DryRun:        dryRun,
			})

			var store *history.Store
			if cfg.Sync.HistoryEnabled && !dryRun {
				store, err = history.Open(cfg.HistoryDBPath())
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
			}

			out := cmd.OutOrStdout()
			for _, library := range libraries {
				started := time.Now().UTC()
				var report *syncer.Report
				if library == "movies" {
					report, err = engine.SyncMovies(cmd.Context(), direction)
				} else {
					report, err = engine.SyncShows(cmd.Context(), direction)
				}
				if err != nil {
					return fmt.Errorf("sync %s: %w", library, err)
				}
				finished := time.Now().UTC()

				if store != nil {
					if _, recordErr := store.RecordRun(cmd.Context(), started, finished, report); recordErr != nil {
						return fmt.Errorf("record sync run: %w", recordErr)
					}
				}
				printSyncReport(out, report)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute and report decisions without writing anything")
	return cmd
}

func parseSyncLibraries(value string) ([]string, error) {
	if value == "all" {
		return []string{"movies", "tv"}, nil
	}
	library, err := parseLibrary(value)
	if err != nil {
		return nil, err
	}
	return []string{library}, nil
}

func printSyncReport(out io.Writer, report *syncer.Report) {
	mode := "sync"
	if report.DryRun {
		mode = "dry-run"
	}
	fmt.Fprintf(out, "%s %s (%s): %d checked, %d unmatched, %d applied, %d skipped\n",
		report.Library, mode, report.Direction,
		report.Checked, len(report.Unmatched), report.Applied(), report.Skipped)

	if len(report.Decisions) == 0 {
		return
	}
	rows := make([][]string, 0, len(report.Decisions))
	for _, decision := range report.Decisions {
		position := ""
		if decision.Season > 0 || decision.Episode > 0 {
			position = "S" + strconv.Itoa(decision.Season) + "E" + strconv.Itoa(decision.Episode)
		}
		detail := ""
		if !decision.AddedAt.IsZero() {
			detail = decision.AddedAt.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			string(decision.Action),
			decision.Title,
			position,
			detail,
			yesNo(decision.Applied),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Action", "Title", "Position", "Added At", "Applied"},
		rows, nil))
}
