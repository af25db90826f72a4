package config

import (
	"os"
	"strings"
)

// Environment variables that override file-based credentials.
const (
	envPlexURL        = "PLEX_URL"
	envPlexToken      = "PLEX_TOKEN"
	envJellyfinURL    = "JELLYFIN_URL"
	envJellyfinAPIKey = "JELLYFIN_APIKEY"
	envJellyfinUser   = "JELLYFIN_USER"
)

// normalize applies environment overrides, trims string fields, fills zero
// tunables from defaults, and expands path fields.
func (c *Config) normalize() error {
	applyEnvOverride(&c.Plex.URL, envPlexURL)
	applyEnvOverride(&c.Plex.Token, envPlexToken)
	applyEnvOverride(&c.Jellyfin.URL, envJellyfinURL)
	applyEnvOverride(&c.Jellyfin.APIKey, envJellyfinAPIKey)
	applyEnvOverride(&c.Jellyfin.User, envJellyfinUser)

	c.Plex.URL = strings.TrimRight(strings.TrimSpace(c.Plex.URL), "/")
	c.Plex.Token = strings.TrimSpace(c.Plex.Token)
	c.Plex.MoviesLibrary = strings.TrimSpace(c.Plex.MoviesLibrary)
	c.Plex.TVLibrary = strings.TrimSpace(c.Plex.TVLibrary)
	c.Jellyfin.URL = strings.TrimRight(strings.TrimSpace(c.Jellyfin.URL), "/")
	c.Jellyfin.APIKey = strings.TrimSpace(c.Jellyfin.APIKey)
	c.Jellyfin.User = strings.TrimSpace(c.Jellyfin.User)

	if c.Plex.MoviesLibrary == "" {
		c.Plex.MoviesLibrary = defaultMoviesLibrary
	}
	if c.Plex.TVLibrary == "" {
		c.Plex.TVLibrary = defaultTVLibrary
	}
	if c.Matching.FuzzyThreshold == 0 {
		c.Matching.FuzzyThreshold = defaultFuzzyThreshold
	}
	if c.Sync.AddedAtWindowHours == 0 {
		c.Sync.AddedAtWindowHours = defaultAddedAtWindowHours
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}

	expanded, err := ExpandPath(c.Paths.DataDir)
	if err != nil {
		return err
	}
	c.Paths.DataDir = expanded
	return nil
}

func applyEnvOverride(target *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	}
}
