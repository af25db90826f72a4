package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// writeTestConfig writes a config pointing both servers at the given base
// URLs, with the history store and lock under a temp data dir.
func writeTestConfig(t *testing.T, plexURL, jellyfinURL string) string {
	t.Helper()
	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[plex]
url = %q
token = "plex-token"

[jellyfin]
url = %q
api_key = "jf-key"
user = "alice"

[paths]
data_dir = %q
`, plexURL, jellyfinURL, filepath.Join(base, "data"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

// newJellyfinServer serves the minimal Jellyfin API surface the CLI touches.
func newJellyfinServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/Users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{{"Name": "Alice", "Id": "user-1"}})
	})
	mux.HandleFunc("/Users/user-1/Items", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("IncludeItemTypes") {
		case "Movie":
			writeJSON(t, w, map[string]any{"Items": []map[string]any{
				{
					"Name": "The Matrix", "Id": "jf-movie-1", "ProductionYear": 1999,
					"DateCreated":  "2023-05-01T10:30:45.000Z",
					"MediaSources": []map[string]any{{}, {}},
				},
				{
					"Name": "Amelie", "Id": "jf-movie-2", "ProductionYear": 2001,
					"MediaSources": []map[string]any{{}},
				},
			}})
		case "Series":
			writeJSON(t, w, map[string]any{"Items": []map[string]any{
				{"Name": "The Wire", "Id": "jf-show-1", "ProductionYear": 2002},
			}})
		case "Episode":
			writeJSON(t, w, map[string]any{"Items": []map[string]any{
				{
					"Name": "Pilot", "Id": "jf-ep-1", "SeriesId": "jf-show-1",
					"ParentIndexNumber": 1, "IndexNumber": 1,
					"Path":         "/media/tv/The Wire/Season 01/S01E01.mkv",
					"MediaSources": []map[string]any{{}},
				},
			}})
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeJSON(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Errorf("encode response: %v", err)
	}
}
