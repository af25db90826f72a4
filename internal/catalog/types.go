package catalog

import (
	"context"
	"time"
)

// Item is one playable unit (movie or episode) as reported by a catalog.
// Optional fields use zero values for absence: Year 0, AddedAt zero time,
// empty Path and ParentID.
type Item struct {
	Title    string
	Year     int
	ID       string
	Watched  bool
	AddedAt  time.Time
	Path     string
	ParentID string
	Season   int
	Episode  int
	// Versions counts the media versions/files backing this item. More than
	// one indicates combined duplicate versions.
	Versions int
}

// Show is a TV series container. Episodes are fetched separately by show ID.
type Show struct {
	Title string
	Year  int
	ID    string
}

// ListOptions tune list calls.
type ListOptions struct {
	// WithPaths asks the catalog to include file paths where it can.
	WithPaths bool
}

// Catalog is the uniform contract a media-server backend implements. Every
// call is blocking with a bounded request timeout; transport failures come
// back wrapped with ErrUnavailable and lookups that find nothing return
// (nil, nil) rather than an error.
type Catalog interface {
	// Name identifies the backend in logs and reports ("plex", "jellyfin").
	Name() string

	Movies(ctx context.Context, opts ListOptions) ([]Item, error)
	Shows(ctx context.Context, opts ListOptions) ([]Show, error)
	Episodes(ctx context.Context, showID string, opts ListOptions) ([]Item, error)

	MovieByTitle(ctx context.Context, title string) (*Item, error)
	ShowByTitle(ctx context.Context, title string) (*Show, error)

	MarkMovieWatched(ctx context.Context, id string) error
	MarkEpisodeWatched(ctx context.Context, id string) error
	UpdateMovieAddedAt(ctx context.Context, id string, addedAt time.Time) error
}
