package syncer

import (
	"context"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
	"github.com/logictoad/plex-jellyfin-cli/internal/logging"
	"github.com/logictoad/plex-jellyfin-cli/internal/titlematch"
)

// SyncShows reconciles episode watched flags for one direction. Shows are
// paired by title through the matcher; episodes within a matched show pair
// strictly by (season, episode index), never by episode title.
func (e *Engine) SyncShows(ctx context.Context, direction Direction) (*Report, error) {
	report := &Report{Direction: direction, Library: "tv", DryRun: e.opts.DryRun}

	localShows, err := e.local.Shows(ctx, catalog.ListOptions{})
	if err != nil {
		return nil, err
	}
	remoteShows, err := e.remote.Shows(ctx, catalog.ListOptions{})
	if err != nil {
		return nil, err
	}

	remoteTitles := make([]string, 0, len(remoteShows))
	remoteByTitle := make(map[string]*catalog.Show, len(remoteShows))
	for i := range remoteShows {
		remoteTitles = append(remoteTitles, remoteShows[i].Title)
		if _, exists := remoteByTitle[remoteShows[i].Title]; !exists {
			remoteByTitle[remoteShows[i].Title] = &remoteShows[i]
		}
	}

	for i := range localShows {
		localShow := &localShows[i]
		report.Checked++

		matched, ok := titlematch.FindBestMatch(localShow.Title, remoteTitles, titlematch.Options{Threshold: e.opts.Threshold})
		if !ok {
			report.Unmatched = append(report.Unmatched, localShow.Title)
			e.logger.Info("unable to find show counterpart",
				logging.Args(logging.String("title", localShow.Title), logging.String("catalog", e.remote.Name()))...)
			continue
		}
		remoteShow := remoteByTitle[matched]
		e.logger.Debug("checking show", logging.Args(logging.String("title", localShow.Title))...)

		if err := e.syncShowEpisodes(ctx, report, direction, localShow, remoteShow); err != nil {
			// Per-show lookup failures skip the show, never the run.
			e.logger.Warn("skipping show", logging.Args(logging.String("title", localShow.Title), logging.Error(err))...)
			report.Skipped++
		}
	}

	return report, nil
}

func (e *Engine) syncShowEpisodes(ctx context.Context, report *Report, direction Direction, localShow *catalog.Show, remoteShow *catalog.Show) error {
	localEpisodes, err := e.local.Episodes(ctx, localShow.ID, catalog.ListOptions{})
	if err != nil {
		return err
	}
	remoteEpisodes, err := e.remote.Episodes(ctx, remoteShow.ID, catalog.ListOptions{})
	if err != nil {
		return err
	}

	type position struct{ season, episode int }
	remoteByPosition := make(map[position]*catalog.Item, len(remoteEpisodes))
	for i := range remoteEpisodes {
		pos := position{remoteEpisodes[i].Season, remoteEpisodes[i].Episode}
		if _, exists := remoteByPosition[pos]; !exists {
			remoteByPosition[pos] = &remoteEpisodes[i]
		}
	}

	for i := range localEpisodes {
		local := &localEpisodes[i]
		remote, ok := remoteByPosition[position{local.Season, local.Episode}]
		if !ok {
			continue
		}
		e.reconcileEpisodeWatched(ctx, report, direction, localShow.Title, local, remote)
	}
	return nil
}

func (e *Engine) reconcileEpisodeWatched(ctx context.Context, report *Report, direction Direction, showTitle string, local, remote *catalog.Item) {
	switch direction {
	case DirectionPull:
		if !remote.Watched || local.Watched {
			return
		}
		decision := Decision{
			Action:  ActionMarkWatchedLocal,
			Title:   showTitle,
			Season:  local.Season,
			Episode: local.Episode,
			ItemID:  local.ID,
		}
		e.logger.Info("remote watched and local unwatched, marking local episode as played",
			logging.Args(
				logging.String("show", showTitle),
				logging.Int("season", local.Season),
				logging.Int("episode", local.Episode),
				logging.Bool("dry_run", e.opts.DryRun),
			)...)
		if !e.opts.DryRun {
			if err := e.local.MarkEpisodeWatched(ctx, local.ID); err != nil {
				e.logger.Warn("mark local episode watched failed",
					logging.Args(logging.String("show", showTitle), logging.Error(err))...)
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
		decision := Decision{
			Action:  ActionMarkWatchedRemote,
			Title:   showTitle,
			Season:  local.Season,
			Episode: local.Episode,
			ItemID:  remote.ID,
		}
		e.logger.Info("local watched and remote unwatched, marking remote episode as played",
			logging.Args(
				logging.String("show", showTitle),
				logging.Int("season", local.Season),
				logging.Int("episode", local.Episode),
				logging.Bool("dry_run", e.opts.DryRun),
			)...)
		if !e.opts.DryRun {
			if err := e.remote.MarkEpisodeWatched(ctx, remote.ID); err != nil {
				e.logger.Warn("mark remote episode watched failed",
					logging.Args(logging.String("show", showTitle), logging.Error(err))...)
				report.Skipped++
				report.Decisions = append(report.Decisions, decision)
				return
			}
			decision.Applied = true
		}
		report.Decisions = append(report.Decisions, decision)
	}
}
