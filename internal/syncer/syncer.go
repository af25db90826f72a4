package syncer

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/logictoad/plex-jellyfin-cli/internal/catalog"
	"github.com/logictoad/plex-jellyfin-cli/internal/logging"
)

// Direction selects which catalog's watched flags are authoritative for one
// pass.
type Direction string

const (
	// DirectionPull propagates remote watched state onto the local catalog,
	// and for movies also reconciles added-at timestamps from the remote.
	DirectionPull Direction = "pull"
	// DirectionPush propagates local watched state onto the remote catalog.
	DirectionPush Direction = "push"
)

// ParseDirection maps the CLI's "source,target" notation onto a Direction
// for an engine whose local catalog is Plex and remote catalog is Jellyfin.
func ParseDirection(value string) (Direction, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "") {
	case "jellyfin,plex":
		return DirectionPull, nil
	case "plex,jellyfin":
		return DirectionPush, nil
	default:
		return "", fmt.Errorf("unknown sync direction %q: use \"plex,jellyfin\" or \"jellyfin,plex\"", value)
	}
}

// Options tune an Engine.
type Options struct {
	// Threshold is the fuzzy matching score for pairing titles; zero selects
	// the matcher default.
	Threshold int
	// AddedAtWindow is how far local and remote added-at timestamps may
	// drift before the local one is rewritten. Zero disables timestamp
	// reconciliation.
	AddedAtWindow time.Duration
	// DryRun reports decisions without issuing any write call.
	DryRun bool
}

// Engine reconciles state between a local and a remote catalog.
type Engine struct {
	local  catalog.Catalog
	remote catalog.Catalog
	logger *slog.Logger
	opts   Options
}

// New constructs an Engine. A nil logger falls back to a no-op logger.
func New(local, remote catalog.Catalog, logger *slog.Logger, opts Options) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{local: local, remote: remote, logger: logger, opts: opts}
}
