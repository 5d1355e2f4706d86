//go:build dev

package session

import (
	"testing"

	"simple-notes-server/internal/config"
)

func TestStaticResolver(t *testing.T) {
	resolver, err := NewResolver(config.AuthConfig{
		Strategy:     "static",
		StaticUserID: "dev-user-1",
	}, nil)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	if got := resolver.Resolve(newRequest()); got != "dev-user-1" {
		t.Errorf("Resolve() = %q, want dev-user-1", got)
	}
	if resolver.Name() != "static" {
		t.Errorf("Name() = %q, want static", resolver.Name())
	}
}

func TestStaticResolverRequiresUserID(t *testing.T) {
	if _, err := NewResolver(config.AuthConfig{Strategy: "static"}, nil); err == nil {
		t.Fatal("NewResolver() expected error without DEV_USER_ID")
	}
}
