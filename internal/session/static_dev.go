//go:build dev

package session

import (
	"fmt"
	"net/http"

	"simple-notes-server/internal/config"
)

// StaticResolver returns a fixed identity for every request. It exists for
// local development only and is excluded from production binaries at build
// time; runtime gating alone is not enough to keep it out of shipped code.
type StaticResolver struct {
	userID string
}

func (s *StaticResolver) Resolve(r *http.Request) string { return s.userID }

func (s *StaticResolver) Name() string { return "static" }

func newBuildTagResolver(cfg config.AuthConfig) (Resolver, error) {
	if cfg.Strategy != "static" {
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.Strategy)
	}
	if cfg.StaticUserID == "" {
		return nil, fmt.Errorf("static strategy requires DEV_USER_ID")
	}
	return &StaticResolver{userID: cfg.StaticUserID}, nil
}
