// Package session resolves the identity behind an inbound request. One
// strategy is active per deployment; all of them return Anonymous when no
// valid credential is present — absent or unverifiable sessions are an
// expected condition, not an error.
package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"simple-notes-server/internal/config"
	"simple-notes-server/internal/identity"
)

// Anonymous is the resolved state meaning no valid identity for this request.
const Anonymous = ""

// UserIDHeader carries the resolved identity between in-process stages. It
// must never be trusted off the wire; the route guard strips inbound copies.
const UserIDHeader = "X-User-ID"

type Resolver interface {
	// Resolve returns the authenticated identity or Anonymous.
	Resolve(r *http.Request) string
	// Name identifies the strategy for logs and metrics.
	Name() string
}

// NewResolver selects the active strategy from configuration. The static
// strategy only exists in dev-tagged builds.
func NewResolver(cfg config.AuthConfig, provider *identity.Client) (Resolver, error) {
	switch cfg.Strategy {
	case "delegated":
		if provider == nil {
			return nil, fmt.Errorf("delegated strategy requires an identity provider")
		}
		return &DelegatedResolver{provider: provider, cookieName: cfg.CookieName}, nil
	case "local":
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("local strategy requires JWT_SECRET")
		}
		return &LocalResolver{secret: cfg.JWTSecret, issuer: cfg.JWTIssuer, cookieName: cfg.CookieName}, nil
	case "header":
		return &HeaderResolver{}, nil
	default:
		return newBuildTagResolver(cfg)
	}
}

// credentialFromRequest extracts the access token carried by a request,
// preferring an Authorization bearer header over the session cookie.
func credentialFromRequest(r *http.Request, cookieName string) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	cookie := SessionCookie(r, cookieName)
	if cookie == nil {
		return ""
	}
	return accessTokenFromCookie(cookie.Value)
}

// SessionCookie locates the session cookie either by its configured name or
// by the provider's naming convention (sb-<ref>-auth-token).
func SessionCookie(r *http.Request, name string) *http.Cookie {
	if name != "" {
		cookie, err := r.Cookie(name)
		if err != nil {
			return nil
		}
		return cookie
	}

	for _, cookie := range r.Cookies() {
		if strings.HasPrefix(cookie.Name, "sb-") && strings.HasSuffix(cookie.Name, "-auth-token") {
			return cookie
		}
	}
	return nil
}

// accessTokenFromCookie peels the provider's cookie envelope, a base64
// encoded JSON array whose first element is the access token. Cookies that
// already hold a bare compact token pass through unchanged.
func accessTokenFromCookie(value string) string {
	if decoded, ok := decodeBase64(value); ok {
		var envelope []json.RawMessage
		if err := json.Unmarshal(decoded, &envelope); err == nil && len(envelope) >= 1 {
			var accessToken string
			if err := json.Unmarshal(envelope[0], &accessToken); err == nil {
				return accessToken
			}
		}
	}

	if strings.Count(value, ".") == 2 {
		return value
	}
	return ""
}

func decodeBase64(value string) ([]byte, bool) {
	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.RawURLEncoding,
	}
	for _, enc := range encodings {
		if decoded, err := enc.DecodeString(value); err == nil {
			return decoded, true
		}
	}
	return nil, false
}
