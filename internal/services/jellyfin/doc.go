// Package jellyfin implements the catalog contract against the Jellyfin
// HTTP API.
//
// All item queries run as the configured user so watched flags reflect that
// user's playback state. The user ID is resolved once per client and cached
// for the lifetime of the run.
package jellyfin
