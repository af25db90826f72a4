package reconcile

import (
	"sort"
	"strings"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
)

// Duplicate identifies an item backed by more than one media version.
type Duplicate struct {
	Title string
	// ShowTitle is set for episodes.
	ShowTitle string
	Season    int
	Episode   int
	Versions  int
}

// DuplicateMovies returns movies with combined versions, ordered
// case-insensitively by title.
func DuplicateMovies(movies []catalog.Item) []Duplicate {
	var dupes []Duplicate
	for _, movie := range movies {
		if movie.Versions > 1 {
			dupes = append(dupes, Duplicate{Title: movie.Title, Versions: movie.Versions})
		}
	}
	sort.Slice(dupes, func(i, j int) bool {
		return strings.ToLower(dupes[i].Title) < strings.ToLower(dupes[j].Title)
	})
	return dupes
}

// DuplicateEpisodes returns a show's episodes with combined versions, in
// episode order as reported by the catalog.
func DuplicateEpisodes(showTitle string, episodes []catalog.Item) []Duplicate {
	var dupes []Duplicate
	for _, episode := range episodes {
		if episode.Versions > 1 {
			dupes = append(dupes, Duplicate{
				Title:     episode.Title,
				ShowTitle: showTitle,
				Season:    episode.Season,
				Episode:   episode.Episode,
				Versions:  episode.Versions,
			})
		}
	}
	return dupes
}
