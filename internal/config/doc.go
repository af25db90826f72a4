// Package config loads and validates the plexsync configuration file.
//
// Configuration is TOML, read from --config, ~/.config/plexsync/config.toml,
// or ./plexsync.toml in that order. Server credentials may also come from
// environment variables, which override file values. All path fields are
// expanded and normalized before the config is handed out.
package config
