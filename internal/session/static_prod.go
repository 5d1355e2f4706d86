//go:build !dev

package session

import (
	"fmt"

	"simple-notes-server/internal/config"
)

// Production builds carry no static strategy; selecting it is a
// configuration error, not a fallback.
func newBuildTagResolver(cfg config.AuthConfig) (Resolver, error) {
	return nil, fmt.Errorf("unknown auth strategy %q", cfg.Strategy)
}
