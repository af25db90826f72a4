// Package logging builds the slog loggers used across the CLI.
//
// Two output formats exist: a compact console handler for interactive use and
// plain JSON for machine consumption. Attribute helpers mirror the slog
// constructors so call sites stay terse.
package logging
