package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Matching.FuzzyThreshold != defaultFuzzyThreshold {
		t.Errorf("threshold = %d, want %d", cfg.Matching.FuzzyThreshold, defaultFuzzyThreshold)
	}
	if cfg.Plex.MoviesLibrary != defaultMoviesLibrary {
		t.Errorf("movies library = %q", cfg.Plex.MoviesLibrary)
	}
	if !cfg.Sync.HistoryEnabled {
		t.Error("history should default to enabled")
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[plex]
url = "http://plex.local:32400/"
token = "abc"

[jellyfin]
url = "http://jf.local:8096"
api_key = "key"
user = "alice"

[matching]
fuzzy_threshold = 70
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Plex.URL != "http://plex.local:32400" {
		t.Errorf("trailing slash not trimmed: %q", cfg.Plex.URL)
	}
	if cfg.Matching.FuzzyThreshold != 70 {
		t.Errorf("threshold = %d, want 70", cfg.Matching.FuzzyThreshold)
	}
	if err := cfg.ValidatePlex(); err != nil {
		t.Errorf("ValidatePlex: %v", err)
	}
	if err := cfg.ValidateJellyfin(); err != nil {
		t.Errorf("ValidateJellyfin: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PLEX_TOKEN", "env-token")
	t.Setenv("JELLYFIN_USER", "env-user")

	cfg, _, _, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Plex.Token != "env-token" {
		t.Errorf("plex token = %q, want env override", cfg.Plex.Token)
	}
	if cfg.Jellyfin.User != "env-user" {
		t.Errorf("jellyfin user = %q, want env override", cfg.Jellyfin.User)
	}
}

func TestValidateRejectsBadThreshold(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	cfg.Matching.FuzzyThreshold = 150
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for threshold out of range")
	}
}

func TestValidateRejectsBadURLScheme(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	cfg.Plex.URL = "ftp://plex.local"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-http scheme")
	}
}

func TestValidateCredentialsMissing(t *testing.T) {
	cfg := Default()
	if err := cfg.ValidatePlex(); err == nil {
		t.Fatal("expected error without plex credentials")
	}
	if err := cfg.ValidateJellyfin(); err == nil {
		t.Fatal("expected error without jellyfin credentials")
	}
}

func TestSampleConfigMentionsSections(t *testing.T) {
	sample := SampleConfig()
	for _, section := range []string{"[plex]", "[jellyfin]", "[matching]", "[sync]", "[logging]"} {
		if !strings.Contains(sample, section) {
			t.Errorf("sample config missing %s", section)
		}
	}
}
