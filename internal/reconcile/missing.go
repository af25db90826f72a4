package reconcile

import (
	"sort"

	"github.com/logictoad/plex-jellyfin-cli/internal/titlematch"
)

// Entry is the title/year projection of a catalog item or show.
type Entry struct {
	Title string
	Year  int
}

// Options tune the missing-title comparison.
type Options struct {
	// Fuzzy enables matcher-based comparison; when false membership is
	// decided purely by normalized-title equality and years are ignored.
	Fuzzy bool
	// Threshold is the fuzzy acceptance score; zero selects the matcher
	// default.
	Threshold int
}

// MissingReport lists source titles without a counterpart in the target.
type MissingReport struct {
	// SourceTotal counts all source entries before deduplication.
	SourceTotal int
	// Missing holds one entry per distinct normalized title, first-seen
	// original casing, ordered by normalized title.
	Missing []string
}

// FindMissing reports which source titles have no counterpart among the
// target entries.
func FindMissing(source, target []Entry, opts Options) MissingReport {
	targetTitles := make([]string, 0, len(target))
	targetYears := make([]int, 0, len(target))
	targetSet := make(map[string]struct{}, len(target))
	for _, entry := range target {
		targetTitles = append(targetTitles, entry.Title)
		targetYears = append(targetYears, entry.Year)
		targetSet[titlematch.Normalize(entry.Title)] = struct{}{}
	}

	type missingEntry struct {
		key   string
		title string
	}
	var missing []missingEntry
	seen := make(map[string]struct{}, len(source))
	for _, entry := range source {
		key := titlematch.Normalize(entry.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if opts.Fuzzy {
			_, ok := titlematch.FindBestMatch(entry.Title, targetTitles, titlematch.Options{
				Threshold:      opts.Threshold,
				Year:           entry.Year,
				CandidateYears: targetYears,
			})
			if !ok {
				missing = append(missing, missingEntry{key: key, title: entry.Title})
			}
			continue
		}
		if _, ok := targetSet[key]; !ok {
			missing = append(missing, missingEntry{key: key, title: entry.Title})
		}
	}

	sort.Slice(missing, func(i, j int) bool { return missing[i].key < missing[j].key })

	titles := make([]string, 0, len(missing))
	for _, entry := range missing {
		titles = append(titles, entry.title)
	}
	return MissingReport{SourceTotal: len(source), Missing: titles}
}
