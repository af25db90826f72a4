package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if c.Matching.FuzzyThreshold < 1 || c.Matching.FuzzyThreshold > 100 {
		return fmt.Errorf("matching.fuzzy_threshold must be between 1 and 100, got %d", c.Matching.FuzzyThreshold)
	}
	if c.Sync.AddedAtWindowHours < 1 {
		return fmt.Errorf("sync.added_at_window_hours must be positive, got %d", c.Sync.AddedAtWindowHours)
	}
	if err := validateServerURL("plex.url", c.Plex.URL); err != nil {
		return err
	}
	if err := validateServerURL("jellyfin.url", c.Jellyfin.URL); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

// ValidatePlex checks that Plex connection settings are present. Called by
// commands that talk to Plex, so a config without credentials still loads for
// config-only commands.
func (c *Config) ValidatePlex() error {
	if c.Plex.URL == "" {
		return fmt.Errorf("plex.url is required (or set %s)", envPlexURL)
	}
	if c.Plex.Token == "" {
		return fmt.Errorf("plex.token is required (or set %s)", envPlexToken)
	}
	return nil
}

// ValidateJellyfin checks that Jellyfin connection settings are present.
func (c *Config) ValidateJellyfin() error {
	if c.Jellyfin.URL == "" {
		return fmt.Errorf("jellyfin.url is required (or set %s)", envJellyfinURL)
	}
	if c.Jellyfin.APIKey == "" {
		return fmt.Errorf("jellyfin.api_key is required (or set %s)", envJellyfinAPIKey)
	}
	if c.Jellyfin.User == "" {
		return fmt.Errorf("jellyfin.user is required (or set %s)", envJellyfinUser)
	}
	return nil
}

func validateServerURL(field, value string) error {
	if value == "" {
		return nil
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", field, value)
	}
	return nil
}
