package plex

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
)

func newTestServer(t *testing.T, scrobbled *[]string, edits *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := r.Header.Get("X-Plex-Token"); token != "tok-1" {
			t.Fatalf("unexpected token: %q", token)
		}
		switch {
		case r.URL.Path == "/library/sections":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"MediaContainer": map[string]any{
					"Directory": []map[string]any{
						{"key": "1", "title": "Movies"},
						{"key": "2", "title": "TV Shows"},
					},
				},
			})
		case r.URL.Path == "/library/sections/1/all":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"MediaContainer": map[string]any{
					"Metadata": []map[string]any{
						{
							"ratingKey": "101",
							"title":     "The Matrix",
							"year":      1999,
							"viewCount": 2,
							"addedAt":   1682937045,
							"Media": []map[string]any{
								{"Part": []map[string]any{{"file": "/movies/matrix.mkv"}}},
								{"Part": []map[string]any{{"file": "/movies/matrix-4k.mkv"}}},
							},
						},
						{"ratingKey": "102", "title": "Inception", "year": 2010},
					},
				},
			})
		case r.URL.Path == "/library/sections/2/all":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"MediaContainer": map[string]any{
					"Metadata": []map[string]any{
						{"ratingKey": "201", "title": "The Wire", "year": 2002},
					},
				},
			})
		case r.URL.Path == "/library/metadata/201/allLeaves":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"MediaContainer": map[string]any{
					"Metadata": []map[string]any{
						{"ratingKey": "301", "title": "Pilot", "parentIndex": 1, "index": 1, "viewCount": 1},
						{"ratingKey": "302", "title": "The Detail", "parentIndex": 1, "index": 2},
					},
				},
			})
		case r.URL.Path == "/:/scrobble":
			if scrobbled != nil {
				*scrobbled = append(*scrobbled, r.URL.Query().Get("key"))
			}
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/library/metadata/101" && r.Method == http.MethodPut:
			if edits != nil {
				*edits = append(*edits, r.URL.Query().Get("addedAt.value"))
			}
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/identity":
			_ = json.NewEncoder(w).Encode(map[string]any{"MediaContainer": map[string]any{}})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestClientMoviesMapsFields(t *testing.T) {
	server := newTestServer(t, nil, nil)
	defer server.Close()

	client := New(server.URL, "tok-1", "Movies", "TV Shows")
	movies, err := client.Movies(context.Background(), catalog.ListOptions{})
	if err != nil {
		t.Fatalf("Movies returned error: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("got %d movies, want 2", len(movies))
	}

	matrix := movies[0]
	if matrix.ID != "101" || matrix.Year != 1999 || !matrix.Watched {
		t.Errorf("unexpected movie: %+v", matrix)
	}
	if matrix.Versions != 2 {
		t.Errorf("versions = %d, want 2", matrix.Versions)
	}
	if matrix.Path != "/movies/matrix.mkv" {
		t.Errorf("path = %q", matrix.Path)
	}
	if matrix.AddedAt.IsZero() || matrix.AddedAt.Second() != 0 {
		t.Errorf("added at should be minute-truncated, got %v", matrix.AddedAt)
	}

	if movies[1].Watched || !movies[1].AddedAt.IsZero() {
		t.Errorf("absent optional fields should stay zero: %+v", movies[1])
	}
}

func TestClientSectionLookupByName(t *testing.T) {
	server := newTestServer(t, nil, nil)
	defer server.Close()

	client := New(server.URL, "tok-1", "movies", "tv shows")
	if _, err := client.Movies(context.Background(), catalog.ListOptions{}); err != nil {
		t.Fatalf("case-insensitive section lookup failed: %v", err)
	}

	missing := New(server.URL, "tok-1", "Anime", "TV Shows")
	_, err := missing.Movies(context.Background(), catalog.ListOptions{})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound for unknown library", err)
	}
}

func TestClientEpisodes(t *testing.T) {
	server := newTestServer(t, nil, nil)
	defer server.Close()

	client := New(server.URL, "tok-1", "Movies", "TV Shows")
	episodes, err := client.Episodes(context.Background(), "201", catalog.ListOptions{})
	if err != nil {
		t.Fatalf("Episodes returned error: %v", err)
	}
	if len(episodes) != 2 {
		t.Fatalf("got %d episodes, want 2", len(episodes))
	}
	if episodes[0].Season != 1 || episodes[0].Episode != 1 || !episodes[0].Watched {
		t.Errorf("unexpected episode: %+v", episodes[0])
	}
	if episodes[1].ParentID != "201" {
		t.Errorf("parent id = %q, want 201", episodes[1].ParentID)
	}
}

func TestClientMarkMovieWatched(t *testing.T) {
	var scrobbled []string
	server := newTestServer(t, &scrobbled, nil)
	defer server.Close()

	client := New(server.URL, "tok-1", "Movies", "TV Shows")
	if err := client.MarkMovieWatched(context.Background(), "102"); err != nil {
		t.Fatalf("MarkMovieWatched returned error: %v", err)
	}
	if len(scrobbled) != 1 || scrobbled[0] != "102" {
		t.Fatalf("scrobbled = %v, want [102]", scrobbled)
	}
}

func TestClientUpdateMovieAddedAt(t *testing.T) {
	var edits []string
	server := newTestServer(t, nil, &edits)
	defer server.Close()

	client := New(server.URL, "tok-1", "Movies", "TV Shows")
	when := time.Date(2023, 5, 1, 10, 30, 0, 0, time.UTC)
	if err := client.UpdateMovieAddedAt(context.Background(), "101", when); err != nil {
		t.Fatalf("UpdateMovieAddedAt returned error: %v", err)
	}
	if len(edits) != 1 || edits[0] != "1682937000" {
		t.Fatalf("edits = %v, want unix seconds of %v", edits, when)
	}
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestClientConnectFailureClassified(t *testing.T) {
	client := NewWithDoer("http://plex.invalid", "tok", "Movies", "TV Shows", failingDoer{})
	err := client.Connect(context.Background())
	if !errors.Is(err, catalog.ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
}
