package syncer

import (
	"context"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
	"github.com/logictoad/plex-jellyfin-cli/internal/logging"
	"github.com/logictoad/plex-jellyfin-cli/internal/titlematch"
)

// SyncMovies reconciles the movie libraries for one direction. Iteration is
// driven by the local catalog; remote counterparts are resolved by title
// through the matcher.
func (e *Engine) SyncMovies(ctx context.Context, direction Direction) (*Report, error) {
	report := &Report{Direction: direction, Library: "movies", DryRun: e.opts.DryRun}

	localMovies, err := e.local.Movies(ctx, catalog.ListOptions{})
	if err != nil {
		return nil, err
	}
	remoteMovies, err := e.remote.Movies(ctx, catalog.ListOptions{})
	if err != nil {
		return nil, err
	}

	remoteTitles := make([]string, 0, len(remoteMovies))
	remoteByTitle := make(map[string]*catalog.Item, len(remoteMovies))
	for i := range remoteMovies {
		remoteTitles = append(remoteTitles, remoteMovies[i].Title)
		if _, exists := remoteByTitle[remoteMovies[i].Title]; !exists {
			remoteByTitle[remoteMovies[i].Title] = &remoteMovies[i]
		}
	}

	for i := range localMovies {
		local := &localMovies[i]
		report.Checked++

		matched, ok := titlematch.FindBestMatch(local.Title, remoteTitles, titlematch.Options{Threshold: e.opts.Threshold})
		if !ok {
			report.Unmatched = append(report.Unmatched, local.Title)
			e.logger.Info("unable to find movie counterpart",
				logging.Args(logging.String("title", local.Title), logging.String("catalog", e.remote.Name()))...)
			continue
		}
		remote := remoteByTitle[matched]
		e.logger.Debug("checking movie", logging.Args(logging.String("title", local.Title))...)

		if direction == DirectionPull {
			e.reconcileAddedAt(ctx, report, local, remote)
		}
		e.reconcileWatched(ctx, report, direction, local, remote)
	}

	return report, nil
}

// reconcileAddedAt rewrites the local creation time from the remote one when
// they disagree by more than the configured window. The remote catalog's
// value is authoritative. Comparison happens at minute precision; adapters
// already truncate.
func (e *Engine) reconcileAddedAt(ctx context.Context, report *Report, local, remote *catalog.Item) {
	if e.opts.AddedAtWindow <= 0 || local.AddedAt.IsZero() || remote.AddedAt.IsZero() {
		return
	}
	diff := local.AddedAt.Sub(remote.AddedAt)
	if diff < 0 {
		diff = -diff
	}
	if diff <= e.opts.AddedAtWindow {
		return
	}

	decision := Decision{
		Action:  ActionUpdateAddedAt,
		Title:   local.Title,
		ItemID:  local.ID,
		AddedAt: remote.AddedAt,
	}
	e.logger.Info("added-at drift exceeds window",
		logging.Args(
			logging.String("title", local.Title),
			logging.String("local", local.AddedAt.Format("2006-01-02 15:04")),
			logging.String("remote", remote.AddedAt.Format("2006-01-02 15:04")),
			logging.Bool("dry_run", e.opts.DryRun),
		)...)
	if !e.opts.DryRun {
		if err := e.local.UpdateMovieAddedAt(ctx, local.ID, remote.AddedAt); err != nil {
			e.logger.Warn("update added-at failed", logging.Args(logging.String("title", local.Title), logging.Error(err))...)
			report.Skipped++
			report.Decisions = append(report.Decisions, decision)
			return
		}
		decision.Applied = true
	}
	report.Decisions = append(report.Decisions, decision)
}

func (e *Engine) reconcileWatched(ctx context.Context, report *Report, direction Direction, local, remote *catalog.Item) {
	switch direction {
	case DirectionPull:
		if !remote.Watched || local.Watched {
			return
		}
		decision := Decision{Action: ActionMarkWatchedLocal, Title: local.Title, ItemID: local.ID}
		e.logger.Info("remote watched and local unwatched, marking local as played",
			logging.Args(logging.String("title", local.Title), logging.Bool("dry_run", e.opts.DryRun))...)
		if !e.opts.DryRun {
			if err := e.local.MarkMovieWatched(ctx, local.ID); err != nil {
				e.logger.Warn("mark local watched failed", logging.Args(logging.String("title", local.Title), logging.Error(err))...)
				report.Skipped++
				report.Decisions = append(report.Decisions, decision)
				return
			}
			decision.Applied = true
		}
		report.Decisions = append(report.Decisions, decision)
	case DirectionPush:
		if !local.Watched || remote.Watched {
			return
		}
		decision := Decision{Action: ActionMarkWatchedRemote, Title: local.Title, ItemID: remote.ID}
		e.logger.Info("local watched and remote unwatched, marking remote as played",
			logging.Args(logging.String("title", local.Title), logging.Bool("dry_run", e.opts.DryRun))...)
		if !e.opts.DryRun {
			if err := e.remote.MarkMovieWatched(ctx, remote.ID); err != nil {
				e.logger.Warn("mark remote watched failed", logging.Args(logging.String("title", local.Title), logging.Error(err))...)
				report.Skipped++
				report.Decisions = append(report.Decisions, decision)
				return
			}
			decision.Applied = true
		}
		report.Decisions = append(report.Decisions, decision)
	}
}
