// plexsync reconciles movie and TV libraries between a Plex server and a
// Jellyfin server: listing, comparing, duplicate detection, and watched-state
// synchronization in either direction.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
