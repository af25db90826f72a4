package reconcile

import (
	"testing"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
)

func TestDuplicateMovies(t *testing.T) {
	movies := []catalog.Item{
		{Title: "zodiac", Versions: 2},
		{Title: "The Matrix", Versions: 1},
		{Title: "Blade Runner", Versions: 3},
	}

	dupes := DuplicateMovies(movies)
	if len(dupes) != 2 {
		t.Fatalf("got %d duplicates, want 2", len(dupes))
	}
	if dupes[0].Title != "Blade Runner" || dupes[0].Versions != 3 {
		t.Errorf("dupes[0] = %+v", dupes[0])
	}
	// Case-insensitive ordering puts lowercase "zodiac" after "Blade Runner".
	if dupes[1].Title != "zodiac" || dupes[1].Versions != 2 {
		t.Errorf("dupes[1] = %+v", dupes[1])
	}
}

func TestDuplicateMoviesNone(t *testing.T) {
	movies := []catalog.Item{{Title: "The Matrix", Versions: 1}}
	if dupes := DuplicateMovies(movies); len(dupes) != 0 {
		t.Errorf("got %v, want none", dupes)
	}
}

func TestDuplicateEpisodes(t *testing.T) {
	episodes := []catalog.Item{
		{Title: "Pilot", Season: 1, Episode: 1, Versions: 1},
		{Title: "The Detail", Season: 1, Episode: 2, Versions: 2},
	}

	dupes := DuplicateEpisodes("The Wire", episodes)
	if len(dupes) != 1 {
		t.Fatalf("got %d duplicates, want 1", len(dupes))
	}
	got := dupes[0]
	if got.ShowTitle != "The Wire" || got.Title != "The Detail" || got.Season != 1 || got.Episode != 2 || got.Versions != 2 {
		t.Errorf("duplicate = %+v", got)
	}
}
