package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
	"github.com/logictoad/plex-jellyfin-cli/internal/config"
	"github.com/logictoad/plex-jellyfin-cli/internal/logging"
	"github.com/logictoad/plex-jellyfin-cli/internal/services/jellyfin"
	"github.com/logictoad/plex-jellyfin-cli/internal/services/plex"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		level := cfg.Logging.Level
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			level = *c.logLevelFlag
		}
		format := cfg.Logging.Format
		if c.logFormatFlag != nil && strings.TrimSpace(*c.logFormatFlag) != "" {
			format = *c.logFormatFlag
		}
		c.logger, c.loggerErr = logging.New(logging.Options{Level: level, Format: format})
	})
	return c.logger, c.loggerErr
}

// catalogFor constructs and pings the adapter for one server name. A failed
// ping is fatal for the command: nothing useful can run against an
// unreachable server.
func (c *commandContext) catalogFor(ctx context.Context, server string) (catalog.Catalog, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	type connectable interface {
		catalog.Catalog
		Connect(ctx context.Context) error
	}

	var backend connectable
	switch strings.ToLower(strings.TrimSpace(server)) {
	case "plex":
		if err := cfg.ValidatePlex(); err != nil {
			return nil, err
		}
		backend = plex.New(cfg.Plex.URL, cfg.Plex.Token, cfg.Plex.MoviesLibrary, cfg.Plex.TVLibrary)
	case "jellyfin":
		if err := cfg.ValidateJellyfin(); err != nil {
			return nil, err
		}
		backend = jellyfin.New(cfg.Jellyfin.URL, cfg.Jellyfin.APIKey, cfg.Jellyfin.User)
	default:
		return nil, fmt.Errorf("unknown server %q: use \"plex\" or \"jellyfin\"", server)
	}

	if err := backend.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", backend.Name(), err)
	}
	return backend, nil
}

func parseLibrary(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "movies", "movie":
		return "movies", nil
	case "tv", "shows", "series":
		return "tv", nil
	default:
		return "", fmt.Errorf("unknown library %q: use \"movies\" or \"tv\"", value)
	}
}
