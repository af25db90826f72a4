// Package plex implements the catalog contract against the Plex Media Server
// HTTP API.
//
// Library sections are discovered by name once per client and cached for the
// lifetime of the run; item listings themselves are always fetched fresh.
package plex
