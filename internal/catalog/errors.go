package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable tags transport-level failures: timeouts, refused
	// connections, non-2xx responses. Callers log, skip the item, continue.
	ErrUnavailable = errors.New("catalog unavailable")
	// ErrNotFound tags lookups whose subject does not exist. Expected and
	// non-fatal.
	ErrNotFound = errors.New("not found")
	// ErrMalformed tags responses missing fields the caller cannot proceed
	// without, such as an absent identifier.
	ErrMalformed = errors.New("malformed catalog data")
)

// Wrap tags err with the given marker and a backend/operation prefix so the
// failure classifies cleanly with errors.Is further up.
func Wrap(marker error, backend, operation string, err error) error {
	detail := buildDetail(backend, operation)
	if marker == nil {
		marker = ErrUnavailable
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(backend, operation string) string {
	parts := make([]string, 0, 2)
	if backend = strings.TrimSpace(backend); backend != "" {
		parts = append(parts, backend)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if len(parts) == 0 {
		return "catalog failure"
	}
	return strings.Join(parts, ": ")
}
