package middleware

import (
	"context"
	"net/http"
	"strings"

	"simple-notes-server/internal/metrics"
	"simple-notes-server/internal/session"
	"simple-notes-server/pkg/response"
)

const (
	loginPath         = "/login"
	defaultAuthedPath = "/notes"
)

// Path prefixes that require an authenticated identity. Everything else
// (login, landing, health, metrics, auth endpoints) is public.
var protectedPrefixes = []string{"/notes", "/api/notes"}

// RouteGuard is the single structural enforcement point for path-level
// authentication. It runs before every handler: anonymous requests to
// protected page paths are redirected to the login page, anonymous API
// requests get a structured 401, and authenticated visits to the login page
// bounce to the notes listing. Handlers still enforce record-level ownership
// themselves; the guard only gates paths.
func RouteGuard(resolver session.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// CORS preflights carry no credentials.
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			// The identity header is an in-process channel only. A copy
			// arriving from the client is discarded before resolution.
			r.Header.Del(session.UserIDHeader)

			userID := resolver.Resolve(r)
			metrics.ObserveResolution(resolver.Name(), userID != session.Anonymous)

			if r.URL.Path == loginPath && userID != session.Anonymous {
				http.Redirect(w, r, defaultAuthedPath, http.StatusFound)
				return
			}

			if isProtected(r.URL.Path) && userID == session.Anonymous {
				if isAPIPath(r.URL.Path) {
					response.Unauthorized(w, "Unauthorized")
				} else {
					http.Redirect(w, r, loginPath, http.StatusFound)
				}
				return
			}

			if userID != session.Anonymous {
				r.Header.Set(session.UserIDHeader, userID)
				r = r.WithContext(context.WithValue(r.Context(), UserIDKey, userID))
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isProtected(path string) bool {
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}
